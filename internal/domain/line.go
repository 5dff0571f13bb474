package domain

import (
	"fmt"
	"math"

	"github.com/google/uuid"
)

// MaxItemQuantity is the largest quantity of a cart or order line, it fits an int4 column.
const MaxItemQuantity = math.MaxInt32

// validateLine holds the rules shared by cart and order lines.
// A zero unit price is a valid line, catalog prices are kept positive by Product.
func validateLine(productID uuid.UUID, quantity int, unitPrice Money) error {
	if productID == uuid.Nil {
		return ErrEmptyProductID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if quantity > MaxItemQuantity {
		return fmt.Errorf("quantity[%d]: %w", quantity, ErrQuantityTooLarge)
	}
	if unitPrice.IsNegative() {
		return ErrNegativePrice
	}

	return nil
}
