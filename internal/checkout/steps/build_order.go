package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
)

// BuildOrder turns the cart snapshot prices into an order, totals are computed here once.
type BuildOrder struct {
	pricing domain.PricingPolicy
}

func NewBuildOrder(pricing domain.PricingPolicy) (BuildOrder, error) {
	var s BuildOrder

	if pricing.TaxRate.IsNegative() {
		return s, errors.New("tax rate is negative")
	}
	if pricing.FlatShippingFee.IsNegative() {
		return s, errors.New("flat shipping fee is negative")
	}

	return BuildOrder{pricing: pricing}, nil
}

func (s BuildOrder) Name() string {
	return "build_order"
}

func (s BuildOrder) Run(_ context.Context, _ port.Repositories, state *State) error {
	if state.Cart == nil {
		return errors.New("cart is not loaded")
	}

	items, err := domain.OrderItemsFromCart(state.Cart)
	if err != nil {
		return fmt.Errorf("domain.OrderItemsFromCart: %w", err)
	}

	order, err := s.pricing.NewOrder(state.UserID, state.ShippingAddress, state.BillingAddress, items)
	if err != nil {
		return fmt.Errorf("pricing.NewOrder: %w", err)
	}

	state.Order = order

	return nil
}
