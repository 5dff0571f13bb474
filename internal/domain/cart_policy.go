package domain

import (
	"github.com/google/uuid"
)

// AddToCart adds quantity units of product to the cart after checking the product can be sold.
// A nil product means the catalog has no product with productID.
// The product's current price and name become the item snapshot, they are not looked up again later.
// On any error the cart is left unchanged.
func AddToCart(cart *Cart, product *Product, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	if err := CheckAvailability(product, productID, quantity); err != nil {
		return err
	}

	return cart.AddItem(product.ID, quantity, product.Price, product.Name)
}

// CheckAvailability returns an *AvailabilityError when product cannot be sold in the requested quantity.
func CheckAvailability(product *Product, productID uuid.UUID, requested int) error {
	if product == nil {
		return &AvailabilityError{ProductID: productID, Reason: ErrProductNotFound, Requested: requested}
	}

	if !product.IsActive {
		return &AvailabilityError{ProductID: product.ID, Reason: ErrProductInactive, Requested: requested}
	}

	if product.StockQuantity < requested {
		return &AvailabilityError{
			ProductID: product.ID,
			Reason:    ErrInsufficientStock,
			Available: product.StockQuantity,
			Requested: requested,
		}
	}

	return nil
}
