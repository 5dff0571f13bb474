package steps

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
)

type Step interface {
	Name() string
	Run(ctx context.Context, repos port.Repositories, state *State) error
}

// State is shared by the steps of one checkout run.
type State struct {
	UserID          string
	ShippingAddress domain.Address
	BillingAddress  domain.Address

	Cart  *domain.Cart
	Order *domain.Order
}
