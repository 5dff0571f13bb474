package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Carts and orders only keep snapshots of its name and price.
type Product struct {
	ID            uuid.UUID
	Name          string
	Description   string
	Price         Money
	SKU           string
	StockQuantity int
	IsActive      bool

	// Version is the optimistic concurrency token, 0 means never persisted.
	Version int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewProduct(name, description string, price Money, sku string, stockQuantity int) (Product, error) {
	var p Product

	if strings.TrimSpace(name) == "" {
		return p, ErrEmptyName
	}
	if strings.TrimSpace(sku) == "" {
		return p, ErrEmptySKU
	}
	if err := validatePrice(price); err != nil {
		return p, err
	}
	if err := validateStock(stockQuantity); err != nil {
		return p, err
	}

	now := time.Now().UTC()

	return Product{
		ID:            uuid.New(),
		Name:          name,
		Description:   description,
		Price:         price,
		SKU:           sku,
		StockQuantity: stockQuantity,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (p *Product) UpdatePrice(price Money) error {
	if err := validatePrice(price); err != nil {
		return err
	}

	p.Price = price
	p.UpdatedAt = time.Now().UTC()

	return nil
}

func (p *Product) UpdateStock(quantity int) error {
	if err := validateStock(quantity); err != nil {
		return err
	}

	p.StockQuantity = quantity
	p.UpdatedAt = time.Now().UTC()

	return nil
}

func (p *Product) DeductStock(quantity int) error {
	left, err := DeductStock(p.StockQuantity, quantity)
	if err != nil {
		var availErr *AvailabilityError
		if errors.As(err, &availErr) {
			availErr.ProductID = p.ID
		}
		return fmt.Errorf("DeductStock: %w", err)
	}

	p.StockQuantity = left
	p.UpdatedAt = time.Now().UTC()

	return nil
}

func (p *Product) SetActive(active bool) {
	p.IsActive = active
	p.UpdatedAt = time.Now().UTC()
}

func (p Product) IsInStock() bool {
	return IsInStock(p.StockQuantity)
}

// IsStockAvailable reports whether the requested quantity could be sold right now.
func (p Product) IsStockAvailable(requested int) bool {
	return p.IsActive && p.StockQuantity >= requested
}

// validatePrice keeps catalog prices positive and in whole cents.
func validatePrice(price Money) error {
	if !price.IsPositive() {
		return ErrInvalidPrice
	}
	if price.HasSubCents() {
		return fmt.Errorf("price[%s]: %w", price.Amount, ErrPricePrecision)
	}

	return nil
}

func validateStock(quantity int) error {
	if quantity < 0 {
		return ErrNegativeStock
	}
	if quantity > MaxItemQuantity {
		return fmt.Errorf("stock[%d]: %w", quantity, ErrQuantityTooLarge)
	}

	return nil
}
