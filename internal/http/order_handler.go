package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nikolayk812/shopcart/internal/checkout"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/service"
	"github.com/samber/lo"
)

type OrderHandler struct {
	orders  *service.OrderService
	logger  *slog.Logger
	timeout time.Duration
}

func NewOrderHandler(orders *service.OrderService, logger *slog.Logger, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		logger:  logger,
		timeout: timeout,
	}
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.orders.Checkout(ctx, checkout.Request{
		UserID:          getUserID(r.Context()),
		ShippingAddress: mapAddressToDomain(req.ShippingAddress),
		BillingAddress:  mapAddressToDomain(req.BillingAddress),
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/orders/"+order.ID().String())
	respondJSON(w, http.StatusCreated, mapOrderToDTO(order))
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orders, err := h.orders.ListOrders(ctx, getUserID(r.Context()))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, lo.Map(orders, func(o *domain.Order, _ int) OrderDTO {
		return mapOrderToDTO(o)
	}))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(ctx, getUserID(r.Context()), id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapOrderToDTO(order))
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	status, err := domain.ToOrderStatus(req.Status)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	order, err := h.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapOrderToDTO(order))
}
