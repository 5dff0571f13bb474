package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopcart/internal/port"
)

// ClearCart empties the checked out cart. The cart entity itself is kept.
type ClearCart struct{}

func NewClearCart() ClearCart {
	return ClearCart{}
}

func (s ClearCart) Name() string {
	return "clear_cart"
}

func (s ClearCart) Run(ctx context.Context, repos port.Repositories, state *State) error {
	if state.Cart == nil {
		return errors.New("cart is not loaded")
	}

	state.Cart.Clear()

	if err := repos.Carts.SaveCart(ctx, state.Cart); err != nil {
		return fmt.Errorf("repos.Carts.SaveCart: %w", err)
	}

	return nil
}
