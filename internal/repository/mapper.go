package repository

import (
	"fmt"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

func mapMoneyToDomain(amount decimal.Decimal, code string) (domain.Money, error) {
	parsedCurrency, err := currency.ParseISO(code)
	if err != nil {
		return domain.Money{}, fmt.Errorf("currency[%s] is not valid: %w", code, err)
	}

	return domain.NewMoney(amount, parsedCurrency), nil
}
