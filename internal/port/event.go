package port

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
)

type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
	PublishOrderStatusChanged(ctx context.Context, order *domain.Order, previous domain.OrderStatus) error
}
