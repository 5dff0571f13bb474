package event

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
)

// Noop drops events, it is used when no Kafka brokers are configured.
type Noop struct{}

func (Noop) PublishOrderPlaced(context.Context, *domain.Order) error {
	return nil
}

func (Noop) PublishOrderStatusChanged(context.Context, *domain.Order, domain.OrderStatus) error {
	return nil
}
