package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	TypeOrderPlaced        = "order.placed"
	TypeOrderStatusChanged = "order.status_changed"
)

type OrderPlaced struct {
	EventID    uuid.UUID         `json:"event_id"`
	OrderID    uuid.UUID         `json:"order_id"`
	UserID     string            `json:"user_id"`
	Status     string            `json:"status"`
	Items      []OrderPlacedItem `json:"items"`
	Currency   string            `json:"currency"`
	SubTotal   decimal.Decimal   `json:"sub_total"`
	Tax        decimal.Decimal   `json:"tax"`
	Shipping   decimal.Decimal   `json:"shipping"`
	Total      decimal.Decimal   `json:"total"`
	OccurredAt time.Time         `json:"occurred_at"`
}

type OrderPlacedItem struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type OrderStatusChanged struct {
	EventID    uuid.UUID `json:"event_id"`
	OrderID    uuid.UUID `json:"order_id"`
	UserID     string    `json:"user_id"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewOrderPlaced(order *domain.Order) OrderPlaced {
	items := order.Items()

	placed := OrderPlaced{
		EventID:    uuid.New(),
		OrderID:    order.ID(),
		UserID:     order.UserID(),
		Status:     string(order.Status()),
		Items:      make([]OrderPlacedItem, 0, len(items)),
		Currency:   order.TotalAmount().Currency.String(),
		SubTotal:   order.SubTotal().Amount,
		Tax:        order.TaxAmount().Amount,
		Shipping:   order.ShippingAmount().Amount,
		Total:      order.TotalAmount().Amount,
		OccurredAt: order.CreatedAt(),
	}

	for _, item := range items {
		placed.Items = append(placed.Items, OrderPlacedItem{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.Amount,
		})
	}

	return placed
}

func NewOrderStatusChanged(order *domain.Order, previous domain.OrderStatus) OrderStatusChanged {
	return OrderStatusChanged{
		EventID:    uuid.New(),
		OrderID:    order.ID(),
		UserID:     order.UserID(),
		From:       string(previous),
		To:         string(order.Status()),
		OccurredAt: order.UpdatedAt(),
	}
}
