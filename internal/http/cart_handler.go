package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/nikolayk812/shopcart/internal/service"
)

type CartHandler struct {
	carts   *service.CartService
	logger  *slog.Logger
	timeout time.Duration
}

func NewCartHandler(carts *service.CartService, logger *slog.Logger, timeout time.Duration) *CartHandler {
	return &CartHandler{
		carts:   carts,
		logger:  logger,
		timeout: timeout,
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cart, err := h.carts.GetCart(ctx, getUserID(r.Context()))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapCartToDTO(cart))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddToCartRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.carts.AddItem(ctx, getUserID(r.Context()), req.ProductID, req.Quantity)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, AddToCartResponse{
		Success:     true,
		Message:     "Item added to cart",
		TotalItems:  result.TotalItems,
		TotalAmount: result.Total.Amount.StringFixed(2),
	})
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := uuidParam(w, r, "productId")
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.carts.UpdateItemQuantity(ctx, getUserID(r.Context()), productID, req.Quantity); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	productID, ok := uuidParam(w, r, "productId")
	if !ok {
		return
	}

	if err := h.carts.RemoveItem(ctx, getUserID(r.Context()), productID); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.carts.Clear(ctx, getUserID(r.Context())); err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
