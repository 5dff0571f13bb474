package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// validation failures
var (
	ErrEmptyUserID      = errors.New("user id is empty")
	ErrEmptyProductID   = errors.New("product id is empty")
	ErrEmptyName        = errors.New("name is empty")
	ErrEmptySKU         = errors.New("sku is empty")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrNegativePrice    = errors.New("price is negative")
	ErrPricePrecision   = errors.New("price has more than two decimal places")
	ErrQuantityTooLarge = errors.New("quantity is too large")
	ErrNegativeStock    = errors.New("stock quantity is negative")
	ErrEmptyOrder       = errors.New("order must contain at least one item")
	ErrCurrencyMismatch = errors.New("currency mismatch")
	ErrDuplicateItem    = errors.New("duplicate item for product")
	ErrInvalidStatus    = errors.New("invalid order status")
)

// domain conflicts, carried as AvailabilityError reasons
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrProductInactive   = errors.New("product is not available")
	ErrInsufficientStock = errors.New("insufficient stock")
)

var ErrInvalidTransition = errors.New("invalid order status transition")

// AvailabilityError reports why a product cannot be sold in the requested quantity.
// Reason is one of ErrProductNotFound, ErrProductInactive, ErrInsufficientStock.
type AvailabilityError struct {
	ProductID uuid.UUID
	Reason    error
	Available int
	Requested int
}

func (e *AvailabilityError) Error() string {
	if errors.Is(e.Reason, ErrInsufficientStock) {
		return fmt.Sprintf("product[%s]: %s: only %d items available, requested %d",
			e.ProductID, e.Reason, e.Available, e.Requested)
	}

	return fmt.Sprintf("product[%s]: %s", e.ProductID, e.Reason)
}

func (e *AvailabilityError) Unwrap() error {
	return e.Reason
}

type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}
