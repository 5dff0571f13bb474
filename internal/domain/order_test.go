package domain_test

import (
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

func TestNewOrder_Totals(t *testing.T) {
	tests := []struct {
		name         string
		items        []domain.OrderItem
		wantSubTotal string
		wantTax      string
		wantShipping string
		wantTotal    string
	}{
		{
			name: "above free shipping threshold",
			items: []domain.OrderItem{
				orderItem(t, 2, "30"),
				orderItem(t, 1, "50"),
			},
			wantSubTotal: "110",
			wantTax:      "11.0",
			wantShipping: "0",
			wantTotal:    "121.0",
		},
		{
			name: "below threshold pays flat fee",
			items: []domain.OrderItem{
				orderItem(t, 5, "10"),
			},
			wantSubTotal: "50",
			wantTax:      "5",
			wantShipping: "10",
			wantTotal:    "65",
		},
		{
			name: "exactly at threshold pays flat fee",
			items: []domain.OrderItem{
				orderItem(t, 4, "25"),
			},
			wantSubTotal: "100",
			wantTax:      "10",
			wantShipping: "10",
			wantTotal:    "120",
		},
		{
			name: "tax rounded to cents",
			items: []domain.OrderItem{
				orderItem(t, 3, "0.35"),
			},
			wantSubTotal: "1.05",
			wantTax:      "0.11",
			wantShipping: "10",
			wantTotal:    "11.16",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := domain.NewOrder(gofakeit.UUID(), randomAddress(), randomAddress(), tt.items)
			require.NoError(t, err)

			assertMoney(t, usd(tt.wantSubTotal), order.SubTotal())
			assertMoney(t, usd(tt.wantTax), order.TaxAmount())
			assertMoney(t, usd(tt.wantShipping), order.ShippingAmount())
			assertMoney(t, usd(tt.wantTotal), order.TotalAmount())
			assert.Equal(t, domain.OrderStatusPending, order.Status())
			assert.Equal(t, tt.items, order.Items())
		})
	}
}

func TestNewOrder_Rejected(t *testing.T) {
	tests := []struct {
		name      string
		userID    string
		items     []domain.OrderItem
		wantError error
	}{
		{
			name:      "no items: error",
			userID:    gofakeit.UUID(),
			items:     nil,
			wantError: domain.ErrEmptyOrder,
		},
		{
			name:      "empty user: error",
			userID:    "",
			items:     []domain.OrderItem{orderItem(t, 1, "1")},
			wantError: domain.ErrEmptyUserID,
		},
		{
			name:   "mixed currencies: error",
			userID: gofakeit.UUID(),
			items: []domain.OrderItem{
				orderItem(t, 1, "1"),
				{
					ID:        uuid.New(),
					ProductID: uuid.New(),
					Quantity:  1,
					UnitPrice: domain.NewMoney(decimal.NewFromInt(1), currency.EUR),
				},
			},
			wantError: domain.ErrCurrencyMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := domain.NewOrder(tt.userID, randomAddress(), randomAddress(), tt.items)
			require.ErrorIs(t, err, tt.wantError)
			assert.Nil(t, order)
		})
	}
}

func TestNewOrder_ItemsFrozen(t *testing.T) {
	items := []domain.OrderItem{orderItem(t, 2, "30"), orderItem(t, 1, "50")}

	order, err := domain.NewOrder(gofakeit.UUID(), randomAddress(), randomAddress(), items)
	require.NoError(t, err)

	// caller slice and returned copies cannot reach into the order
	items[0].Quantity = 99
	returned := order.Items()
	returned[1].UnitPrice = usd("1000")

	assert.Equal(t, 2, order.Items()[0].Quantity)
	assertMoney(t, usd("50"), order.Items()[1].UnitPrice)
	assertMoney(t, usd("110"), order.SubTotal())
	assert.Equal(t, 3, order.TotalItems())
}

func TestNewOrderItem(t *testing.T) {
	tests := []struct {
		name      string
		productID uuid.UUID
		quantity  int
		price     domain.Money
		wantError error
	}{
		{
			name:      "valid item: ok",
			productID: uuid.New(),
			quantity:  1,
			price:     usd("9.99"),
		},
		{
			name:      "zero quantity: error",
			productID: uuid.New(),
			quantity:  0,
			price:     usd("9.99"),
			wantError: domain.ErrInvalidQuantity,
		},
		{
			name:      "zero price: ok",
			productID: uuid.New(),
			quantity:  1,
			price:     usd("0"),
		},
		{
			name:      "negative price: error",
			productID: uuid.New(),
			quantity:  1,
			price:     usd("-1"),
			wantError: domain.ErrNegativePrice,
		},
		{
			name:      "quantity above int4: error",
			productID: uuid.New(),
			quantity:  domain.MaxItemQuantity + 1,
			price:     usd("1"),
			wantError: domain.ErrQuantityTooLarge,
		},
		{
			name:      "nil product: error",
			productID: uuid.Nil,
			quantity:  1,
			price:     usd("1"),
			wantError: domain.ErrEmptyProductID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := domain.NewOrderItem(tt.productID, tt.quantity, tt.price, "Thing")
			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, item.ID)
			assert.Equal(t, tt.productID, item.ProductID)
		})
	}
}

func TestOrderItemsFromCart(t *testing.T) {
	cart := newCart(t)
	a, b := uuid.New(), uuid.New()
	require.NoError(t, cart.AddItem(a, 2, usd("30"), "A"))
	require.NoError(t, cart.AddItem(b, 1, usd("50"), "B"))

	items, err := domain.OrderItemsFromCart(cart)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, a, items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)
	assertMoney(t, usd("30"), items[0].UnitPrice)
	assert.Equal(t, "B", items[1].ProductName)

	_, err = domain.OrderItemsFromCart(newCart(t))
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func TestOrderItemsFromCart_ZeroPrice(t *testing.T) {
	cart := newCart(t)
	require.NoError(t, cart.AddItem(uuid.New(), 1, usd("0"), "Gift"))
	require.NoError(t, cart.AddItem(uuid.New(), 2, usd("5"), "Mug"))

	items, err := domain.OrderItemsFromCart(cart)
	require.NoError(t, err)

	order, err := domain.NewOrder(gofakeit.UUID(), randomAddress(), randomAddress(), items)
	require.NoError(t, err)
	assertMoney(t, usd("10"), order.SubTotal())
	assert.Equal(t, 3, order.TotalItems())
}

func TestOrder_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		path      []domain.OrderStatus
		wantError error
	}{
		{
			name: "happy path: ok",
			path: []domain.OrderStatus{
				domain.OrderStatusProcessing,
				domain.OrderStatusShipped,
				domain.OrderStatusDelivered,
			},
		},
		{
			name: "cancel pending: ok",
			path: []domain.OrderStatus{domain.OrderStatusCancelled},
		},
		{
			name: "refund processing: ok",
			path: []domain.OrderStatus{domain.OrderStatusProcessing, domain.OrderStatusRefunded},
		},
		{
			name:      "skip to delivered: error",
			path:      []domain.OrderStatus{domain.OrderStatusDelivered},
			wantError: domain.ErrInvalidTransition,
		},
		{
			name: "cancel shipped: error",
			path: []domain.OrderStatus{
				domain.OrderStatusProcessing,
				domain.OrderStatusShipped,
				domain.OrderStatusCancelled,
			},
			wantError: domain.ErrInvalidTransition,
		},
		{
			name:      "back to pending: error",
			path:      []domain.OrderStatus{domain.OrderStatusProcessing, domain.OrderStatusPending},
			wantError: domain.ErrInvalidTransition,
		},
		{
			name:      "unknown status: error",
			path:      []domain.OrderStatus{"lost"},
			wantError: domain.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := randomOrder(t)
			subTotal := order.SubTotal()
			total := order.TotalAmount()

			var err error
			for _, next := range tt.path {
				before := order.Status()
				if err = order.UpdateStatus(next); err != nil {
					assert.Equal(t, before, order.Status())
					break
				}
				assert.Equal(t, next, order.Status())
			}

			if tt.wantError != nil {
				require.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
			}

			assertMoney(t, subTotal, order.SubTotal())
			assertMoney(t, total, order.TotalAmount())
		})
	}
}

func TestOrder_UpdateStatus_TransitionError(t *testing.T) {
	order := randomOrder(t)

	err := order.UpdateStatus(domain.OrderStatusShipped)

	var transitionErr *domain.TransitionError
	require.True(t, errors.As(err, &transitionErr))
	assert.Equal(t, domain.OrderStatusPending, transitionErr.From)
	assert.Equal(t, domain.OrderStatusShipped, transitionErr.To)
	assert.EqualError(t, err, "invalid order status transition: pending -> shipped")
}

func TestRestoreOrder(t *testing.T) {
	order := randomOrder(t)
	require.NoError(t, order.UpdateStatus(domain.OrderStatusProcessing))

	restored, err := domain.RestoreOrder(order.State())
	require.NoError(t, err)
	assert.Equal(t, order.State(), restored.State())

	state := order.State()
	state.Status = "lost"
	_, err = domain.RestoreOrder(state)
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	state = order.State()
	state.Items = nil
	_, err = domain.RestoreOrder(state)
	require.ErrorIs(t, err, domain.ErrEmptyOrder)
}

func randomOrder(t *testing.T) *domain.Order {
	t.Helper()

	n := gofakeit.Number(1, 3)
	items := make([]domain.OrderItem, 0, n)
	for range n {
		items = append(items, orderItem(t, gofakeit.Number(1, 5), decimal.NewFromFloat(gofakeit.Price(1, 100)).String()))
	}

	order, err := domain.NewOrder(gofakeit.UUID(), randomAddress(), randomAddress(), items)
	require.NoError(t, err)

	return order
}

func orderItem(t *testing.T, quantity int, price string) domain.OrderItem {
	t.Helper()

	item, err := domain.NewOrderItem(uuid.New(), quantity, usd(price), gofakeit.ProductName())
	require.NoError(t, err)

	return item
}

func randomAddress() domain.Address {
	a := gofakeit.Address()
	return domain.NewAddress(a.Street, a.City, a.State, a.Zip, a.Country)
}
