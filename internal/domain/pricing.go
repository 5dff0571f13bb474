package domain

import (
	"github.com/shopspring/decimal"
)

// PricingPolicy derives tax and shipping from an order subtotal.
type PricingPolicy struct {
	TaxRate decimal.Decimal
	// shipping is free when the subtotal is strictly greater than the threshold
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

var DefaultPricing = PricingPolicy{
	TaxRate:               decimal.RequireFromString("0.10"),
	FreeShippingThreshold: decimal.NewFromInt(100),
	FlatShippingFee:       decimal.NewFromInt(10),
}

// Tax is rounded half away from zero to cents.
func (p PricingPolicy) Tax(subTotal Money) Money {
	return Money{
		Amount:   subTotal.Amount.Mul(p.TaxRate).Round(2),
		Currency: subTotal.Currency,
	}
}

func (p PricingPolicy) Shipping(subTotal Money) Money {
	if subTotal.Amount.GreaterThan(p.FreeShippingThreshold) {
		return ZeroMoney(subTotal.Currency)
	}

	return Money{Amount: p.FlatShippingFee, Currency: subTotal.Currency}
}

type Totals struct {
	SubTotal Money
	Tax      Money
	Shipping Money
	Total    Money
}

// Totals sums line items and applies tax and shipping.
// Items must be non-empty and share one currency.
func (p PricingPolicy) Totals(items []OrderItem) (Totals, error) {
	var t Totals

	if len(items) == 0 {
		return t, ErrEmptyOrder
	}

	subTotal := ZeroMoney(items[0].UnitPrice.Currency)
	for _, item := range items {
		var err error
		subTotal, err = subTotal.Add(item.LineTotal())
		if err != nil {
			return t, err
		}
	}

	tax := p.Tax(subTotal)
	shipping := p.Shipping(subTotal)

	return Totals{
		SubTotal: subTotal,
		Tax:      tax,
		Shipping: shipping,
		Total: Money{
			Amount:   subTotal.Amount.Add(tax.Amount).Add(shipping.Amount),
			Currency: subTotal.Currency,
		},
	}, nil
}
