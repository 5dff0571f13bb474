package steps

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
)

// DeductStock re-checks availability of every ordered product and deducts the ordered quantity.
// The version-checked product update fails the run if another checkout touched the product meanwhile.
type DeductStock struct{}

func NewDeductStock() DeductStock {
	return DeductStock{}
}

func (s DeductStock) Name() string {
	return "deduct_stock"
}

func (s DeductStock) Run(ctx context.Context, repos port.Repositories, state *State) error {
	if state.Order == nil {
		return errors.New("order is not built")
	}

	for _, item := range state.Order.Items() {
		var product *domain.Product

		p, err := repos.Products.GetProduct(ctx, item.ProductID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
		case err != nil:
			return fmt.Errorf("repos.Products.GetProduct: %w", err)
		default:
			product = &p
		}

		if err := domain.CheckAvailability(product, item.ProductID, item.Quantity); err != nil {
			return err
		}

		if err := product.DeductStock(item.Quantity); err != nil {
			return err
		}

		if err := repos.Products.UpdateProduct(ctx, *product); err != nil {
			return fmt.Errorf("repos.Products.UpdateProduct: %w", err)
		}
	}

	return nil
}
