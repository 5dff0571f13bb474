package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
)

type LoadCart struct{}

func NewLoadCart() LoadCart {
	return LoadCart{}
}

func (s LoadCart) Name() string {
	return "load_cart"
}

func (s LoadCart) Run(ctx context.Context, repos port.Repositories, state *State) error {
	cart, err := repos.Carts.GetCart(ctx, state.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.ErrEmptyOrder
	}
	if err != nil {
		return fmt.Errorf("repos.Carts.GetCart: %w", err)
	}

	if cart.IsEmpty() {
		return domain.ErrEmptyOrder
	}

	state.Cart = cart

	return nil
}
