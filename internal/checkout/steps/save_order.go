package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopcart/internal/port"
)

type SaveOrder struct{}

func NewSaveOrder() SaveOrder {
	return SaveOrder{}
}

func (s SaveOrder) Name() string {
	return "save_order"
}

func (s SaveOrder) Run(ctx context.Context, repos port.Repositories, state *State) error {
	if state.Order == nil {
		return errors.New("order is not built")
	}

	if err := repos.Orders.InsertOrder(ctx, state.Order); err != nil {
		return fmt.Errorf("repos.Orders.InsertOrder: %w", err)
	}

	return nil
}
