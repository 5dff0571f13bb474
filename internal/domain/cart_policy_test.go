package domain_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToCart(t *testing.T) {
	tests := []struct {
		name          string
		productFunc   func(t *testing.T) *domain.Product
		quantity      int
		wantError     error
		wantAvailable int
	}{
		{
			name: "active product in stock: ok",
			productFunc: func(t *testing.T) *domain.Product {
				p := randomProduct(t, 10)
				return &p
			},
			quantity: 2,
		},
		{
			name: "missing product: not found",
			productFunc: func(*testing.T) *domain.Product {
				return nil
			},
			quantity:  1,
			wantError: domain.ErrProductNotFound,
		},
		{
			name: "inactive product: not available",
			productFunc: func(t *testing.T) *domain.Product {
				p := randomProduct(t, 10)
				p.SetActive(false)
				return &p
			},
			quantity:  1,
			wantError: domain.ErrProductInactive,
		},
		{
			name: "stock 3 requested 5: insufficient stock",
			productFunc: func(t *testing.T) *domain.Product {
				p := randomProduct(t, 3)
				return &p
			},
			quantity:      5,
			wantError:     domain.ErrInsufficientStock,
			wantAvailable: 3,
		},
		{
			name: "zero quantity: error",
			productFunc: func(t *testing.T) *domain.Product {
				p := randomProduct(t, 3)
				return &p
			},
			quantity:  0,
			wantError: domain.ErrInvalidQuantity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cart := newCart(t)
			require.NoError(t, cart.AddItem(uuid.New(), 1, usd("1"), "existing"))
			before := cart.State()

			product := tt.productFunc(t)
			productID := uuid.New()
			if product != nil {
				productID = product.ID
			}

			err := domain.AddToCart(cart, product, productID, tt.quantity)
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				assertCartState(t, before, cart.State())

				var availErr *domain.AvailabilityError
				if errors.As(err, &availErr) {
					assert.Equal(t, productID, availErr.ProductID)
					assert.Equal(t, tt.wantAvailable, availErr.Available)
					assert.Equal(t, tt.quantity, availErr.Requested)
				}
				return
			}
			require.NoError(t, err)

			item, ok := cart.Item(product.ID)
			require.True(t, ok)
			assert.Equal(t, tt.quantity, item.Quantity)
			assertMoney(t, product.Price, item.UnitPrice)
			assert.Equal(t, product.Name, item.ProductName)
		})
	}
}

func TestAddToCart_PriceSnapshot(t *testing.T) {
	cart := newCart(t)
	product := randomProduct(t, 10)

	require.NoError(t, domain.AddToCart(cart, &product, product.ID, 1))
	require.NoError(t, product.UpdatePrice(usd("99")))

	item, _ := cart.Item(product.ID)
	assertMoney(t, usd("12.50"), item.UnitPrice)

	items, err := domain.OrderItemsFromCart(cart)
	require.NoError(t, err)
	assertMoney(t, usd("12.50"), items[0].UnitPrice)
}

func TestAvailabilityError_Message(t *testing.T) {
	id := uuid.New()
	err := &domain.AvailabilityError{ProductID: id, Reason: domain.ErrInsufficientStock, Available: 3, Requested: 5}

	assert.EqualError(t, err, "product["+id.String()+"]: insufficient stock: only 3 items available, requested 5")
}
