package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/repository"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	Available *int   `json:"available,omitempty"`
}

var validationErrors = []error{
	domain.ErrEmptyUserID,
	domain.ErrEmptyProductID,
	domain.ErrEmptyName,
	domain.ErrEmptySKU,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidPrice,
	domain.ErrNegativePrice,
	domain.ErrPricePrecision,
	domain.ErrQuantityTooLarge,
	domain.ErrNegativeStock,
	domain.ErrEmptyOrder,
	domain.ErrCurrencyMismatch,
	domain.ErrInvalidStatus,
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   code,
		Details: details,
	})
}

// handleError maps service errors to responses, unknown errors are logged and hidden.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var availErr *domain.AvailabilityError
	if errors.As(err, &availErr) {
		respondAvailabilityError(w, availErr)
		return
	}

	var transitionErr *domain.TransitionError
	if errors.As(err, &transitionErr) {
		respondError(w, http.StatusConflict, "invalid_transition", transitionErr.Error())
		return
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			respondError(w, http.StatusBadRequest, "invalid_argument", target.Error())
			return
		}
	}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", "resource not found")
	case errors.Is(err, repository.ErrAlreadyExists):
		respondError(w, http.StatusConflict, "already_exists", err.Error())
	case errors.Is(err, repository.ErrConcurrentUpdate):
		respondError(w, http.StatusConflict, "concurrent_update", repository.ErrConcurrentUpdate.Error())
	default:
		logger.Error("request failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func respondAvailabilityError(w http.ResponseWriter, err *domain.AvailabilityError) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "Product not found")
	case errors.Is(err, domain.ErrProductInactive):
		respondError(w, http.StatusConflict, "product_not_available", "Product is not available")
	default:
		available := err.Available
		respondJSON(w, http.StatusConflict, ErrorResponse{
			Error:     "insufficient_stock",
			Details:   fmt.Sprintf("Only %d items available", err.Available),
			Available: &available,
		})
	}
}
