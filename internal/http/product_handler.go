package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nikolayk812/shopcart/internal/service"
)

type ProductHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
	timeout time.Duration
}

func NewProductHandler(catalog *service.CatalogService, logger *slog.Logger, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		catalog: catalog,
		logger:  logger,
		timeout: timeout,
	}
}

func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateProductRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	price, err := mapMoneyToDomain(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	product, err := h.catalog.CreateProduct(ctx, service.CreateProduct{
		Name:          req.Name,
		Description:   req.Description,
		Price:         price,
		SKU:           req.SKU,
		StockQuantity: req.StockQuantity,
	})
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	w.Header().Set("Location", "/api/products/"+product.ID.String())
	respondJSON(w, http.StatusCreated, mapProductToDTO(product))
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	product, err := h.catalog.GetProduct(ctx, id)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapProductToDTO(product))
}

func (h *ProductHandler) GetProductBySKU(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	product, err := h.catalog.GetProductBySKU(ctx, chi.URLParam(r, "sku"))
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapProductToDTO(product))
}

func (h *ProductHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdatePriceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	price, err := mapMoneyToDomain(req.Price)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_argument", err.Error())
		return
	}

	product, err := h.catalog.UpdatePrice(ctx, id, price)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapProductToDTO(product))
}

func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req UpdateStockRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.catalog.UpdateStock(ctx, id, req.StockQuantity)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapProductToDTO(product))
}

func (h *ProductHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req SetActiveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	product, err := h.catalog.SetActive(ctx, id, req.IsActive)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, mapProductToDTO(product))
}
