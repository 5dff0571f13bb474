package domain

func IsInStock(stockQuantity int) bool {
	return stockQuantity > 0
}

// DeductStock returns the stock left after selling requested units.
// It never deducts partially: on error the caller keeps stockQuantity as is.
func DeductStock(stockQuantity, requested int) (int, error) {
	if requested <= 0 {
		return stockQuantity, ErrInvalidQuantity
	}

	if requested > stockQuantity {
		return stockQuantity, &AvailabilityError{
			Reason:    ErrInsufficientStock,
			Available: stockQuantity,
			Requested: requested,
		}
	}

	return stockQuantity - requested, nil
}
