package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// OrderItem is a frozen snapshot of a purchased line.
type OrderItem struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	Quantity    int
	UnitPrice   Money
	ProductName string
}

func NewOrderItem(productID uuid.UUID, quantity int, unitPrice Money, productName string) (OrderItem, error) {
	if err := validateLine(productID, quantity, unitPrice); err != nil {
		return OrderItem{}, err
	}

	return OrderItem{
		ID:          uuid.New(),
		ProductID:   productID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		ProductName: productName,
	}, nil
}

func (i OrderItem) LineTotal() Money {
	return i.UnitPrice.Times(i.Quantity)
}

// OrderItemsFromCart snapshots cart items with the prices captured when they were added.
func OrderItemsFromCart(cart *Cart) ([]OrderItem, error) {
	cartItems := cart.Items()
	if len(cartItems) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]OrderItem, 0, len(cartItems))
	for _, ci := range cartItems {
		item, err := NewOrderItem(ci.ProductID, ci.Quantity, ci.UnitPrice, ci.ProductName)
		if err != nil {
			return nil, fmt.Errorf("NewOrderItem[%s]: %w", ci.ProductID, err)
		}
		items = append(items, item)
	}

	return items, nil
}

// Order is the checkout aggregate. Items and money totals are fixed at creation,
// only the status changes afterwards.
type Order struct {
	id              uuid.UUID
	userID          string
	status          OrderStatus
	shippingAddress Address
	billingAddress  Address
	items           []OrderItem

	subTotal       Money
	taxAmount      Money
	shippingAmount Money
	totalAmount    Money

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// OrderState is a plain copy of an order used to persist and restore it.
type OrderState struct {
	ID              uuid.UUID
	UserID          string
	Status          OrderStatus
	ShippingAddress Address
	BillingAddress  Address
	Items           []OrderItem

	SubTotal       Money
	TaxAmount      Money
	ShippingAmount Money
	TotalAmount    Money

	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewOrder(userID string, shipping, billing Address, items []OrderItem) (*Order, error) {
	return DefaultPricing.NewOrder(userID, shipping, billing, items)
}

// NewOrder creates a pending order, computing its totals once with the policy.
func (p PricingPolicy) NewOrder(userID string, shipping, billing Address, items []OrderItem) (*Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	totals, err := p.Totals(items)
	if err != nil {
		return nil, fmt.Errorf("p.Totals: %w", err)
	}

	now := time.Now().UTC()

	return &Order{
		id:              uuid.New(),
		userID:          userID,
		status:          OrderStatusPending,
		shippingAddress: shipping,
		billingAddress:  billing,
		items:           slices.Clone(items),
		subTotal:        totals.SubTotal,
		taxAmount:       totals.Tax,
		shippingAmount:  totals.Shipping,
		totalAmount:     totals.Total,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// RestoreOrder rebuilds a persisted order as is, totals are not recomputed.
func RestoreOrder(s OrderState) (*Order, error) {
	if s.ID == uuid.Nil {
		return nil, fmt.Errorf("order id is empty")
	}
	if strings.TrimSpace(s.UserID) == "" {
		return nil, ErrEmptyUserID
	}
	if len(s.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("status[%s]: %w", s.Status, ErrInvalidStatus)
	}

	return &Order{
		id:              s.ID,
		userID:          s.UserID,
		status:          s.Status,
		shippingAddress: s.ShippingAddress,
		billingAddress:  s.BillingAddress,
		items:           slices.Clone(s.Items),
		subTotal:        s.SubTotal,
		taxAmount:       s.TaxAmount,
		shippingAmount:  s.ShippingAmount,
		totalAmount:     s.TotalAmount,
		version:         s.Version,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
	}, nil
}

func (o *Order) ID() uuid.UUID            { return o.id }
func (o *Order) UserID() string           { return o.userID }
func (o *Order) Status() OrderStatus      { return o.status }
func (o *Order) ShippingAddress() Address { return o.shippingAddress }
func (o *Order) BillingAddress() Address  { return o.billingAddress }
func (o *Order) SubTotal() Money          { return o.subTotal }
func (o *Order) TaxAmount() Money         { return o.taxAmount }
func (o *Order) ShippingAmount() Money    { return o.shippingAmount }
func (o *Order) TotalAmount() Money       { return o.totalAmount }
func (o *Order) Version() int64           { return o.version }
func (o *Order) CreatedAt() time.Time     { return o.createdAt }
func (o *Order) UpdatedAt() time.Time     { return o.updatedAt }

// Items returns a copy, the order's own items never change.
func (o *Order) Items() []OrderItem {
	return slices.Clone(o.items)
}

func (o *Order) TotalItems() int {
	return lo.SumBy(o.items, func(item OrderItem) int {
		return item.Quantity
	})
}

// UpdateStatus moves the order to next if the transition table allows it.
// Totals and inventory are not touched.
func (o *Order) UpdateStatus(next OrderStatus) error {
	if !next.IsValid() {
		return fmt.Errorf("status[%s]: %w", next, ErrInvalidStatus)
	}

	if !o.status.CanTransitionTo(next) {
		return &TransitionError{From: o.status, To: next}
	}

	o.status = next
	o.updatedAt = time.Now().UTC()

	return nil
}

func (o *Order) State() OrderState {
	return OrderState{
		ID:              o.id,
		UserID:          o.userID,
		Status:          o.status,
		ShippingAddress: o.shippingAddress,
		BillingAddress:  o.billingAddress,
		Items:           o.Items(),
		SubTotal:        o.subTotal,
		TaxAmount:       o.taxAmount,
		ShippingAmount:  o.shippingAmount,
		TotalAmount:     o.totalAmount,
		Version:         o.version,
		CreatedAt:       o.createdAt,
		UpdatedAt:       o.updatedAt,
	}
}
