package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/checkout"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
)

type cartRefresher interface {
	RefreshCache(ctx context.Context, userID string)
}

type OrderService struct {
	pipeline  checkout.Pipeline
	orders    port.OrderRepository
	carts     cartRefresher
	publisher port.EventPublisher
	logger    *slog.Logger
}

func NewOrderService(
	pipeline checkout.Pipeline,
	orders port.OrderRepository,
	carts cartRefresher,
	publisher port.EventPublisher,
	logger *slog.Logger,
) (*OrderService, error) {
	if orders == nil {
		return nil, errors.New("orders is nil")
	}
	if carts == nil {
		return nil, errors.New("carts is nil")
	}
	if publisher == nil {
		return nil, errors.New("publisher is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	return &OrderService{
		pipeline:  pipeline,
		orders:    orders,
		carts:     carts,
		publisher: publisher,
		logger:    logger,
	}, nil
}

// Checkout places an order from the user's cart. Events are published after the commit,
// a failed publish is logged and does not fail the checkout.
func (s *OrderService) Checkout(ctx context.Context, req checkout.Request) (*domain.Order, error) {
	order, err := s.pipeline.Run(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("pipeline.Run: %w", err)
	}

	s.carts.RefreshCache(ctx, req.UserID)

	s.logger.Info("order placed", "order_id", order.ID(), "user_id", order.UserID(),
		"total", order.TotalAmount().String(), "items", order.TotalItems())

	if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
		s.logger.Error("publish order placed failed", "order_id", order.ID(), "error", err)
	}

	return order, nil
}

// GetOrder reports orders of other users as not found.
func (s *OrderService) GetOrder(ctx context.Context, userID string, orderID uuid.UUID) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders.GetOrder: %w", err)
	}

	if order.UserID() != userID {
		return nil, fmt.Errorf("order[%s]: %w", orderID, repository.ErrNotFound)
	}

	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]*domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}

	orders, err := s.orders.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("orders.ListOrdersByUser: %w", err)
	}

	return orders, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders.GetOrder: %w", err)
	}

	previous := order.Status()

	if err := order.UpdateStatus(status); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateOrderStatus(ctx, order); err != nil {
		return nil, fmt.Errorf("orders.UpdateOrderStatus: %w", err)
	}

	s.logger.Info("order status changed", "order_id", orderID, "from", previous, "to", status)

	if err := s.publisher.PublishOrderStatusChanged(ctx, order, previous); err != nil {
		s.logger.Error("publish order status changed failed", "order_id", orderID, "error", err)
	}

	updated, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("orders.GetOrder: %w", err)
	}

	return updated, nil
}
