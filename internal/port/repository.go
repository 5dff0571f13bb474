package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
)

type ProductRepository interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (domain.Product, error)

	InsertProduct(ctx context.Context, product domain.Product) error

	// UpdateProduct stores product if its Version still matches the stored one.
	UpdateProduct(ctx context.Context, product domain.Product) error
}

type CartRepository interface {
	GetCart(ctx context.Context, userID string) (*domain.Cart, error)

	// SaveCart inserts a never persisted cart or replaces the stored one,
	// provided the stored version equals cart.Version().
	SaveCart(ctx context.Context, cart *domain.Cart) error
}

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID uuid.UUID) (*domain.Order, error)

	// ListOrdersByUser returns the user's orders, newest first.
	ListOrdersByUser(ctx context.Context, userID string) ([]*domain.Order, error)

	InsertOrder(ctx context.Context, order *domain.Order) error

	UpdateOrderStatus(ctx context.Context, order *domain.Order) error
}

// Repositories groups repositories bound to the same transaction.
type Repositories struct {
	Products ProductRepository
	Carts    CartRepository
	Orders   OrderRepository
}

// UnitOfWork runs fn atomically: its writes are committed when fn returns nil
// and rolled back otherwise.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(repos Repositories) error) error
}
