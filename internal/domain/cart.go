package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"golang.org/x/text/currency"
)

type CartItem struct {
	ProductID   uuid.UUID
	Quantity    int
	UnitPrice   Money
	ProductName string
	AddedAt     time.Time
}

func (i CartItem) LineTotal() Money {
	return i.UnitPrice.Times(i.Quantity)
}

// Cart is the shopping cart aggregate of a single user.
// It owns its items exclusively, there is at most one item per product
// and every item has a positive quantity.
type Cart struct {
	id      uuid.UUID
	userID  string
	items   map[uuid.UUID]CartItem
	order   []uuid.UUID // insertion order of items
	version int64

	createdAt time.Time
	updatedAt time.Time
}

// CartState is a plain copy of a cart used to persist and restore it.
type CartState struct {
	ID        uuid.UUID
	UserID    string
	Items     []CartItem
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCart(userID string) (*Cart, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrEmptyUserID
	}

	now := time.Now().UTC()

	return &Cart{
		id:        uuid.New(),
		userID:    userID,
		items:     make(map[uuid.UUID]CartItem),
		createdAt: now,
		updatedAt: now,
	}, nil
}

// RestoreCart rebuilds a cart from persisted state, re-checking the aggregate rules.
func RestoreCart(s CartState) (*Cart, error) {
	if s.ID == uuid.Nil {
		return nil, fmt.Errorf("cart id is empty")
	}
	if strings.TrimSpace(s.UserID) == "" {
		return nil, ErrEmptyUserID
	}

	c := &Cart{
		id:        s.ID,
		userID:    s.UserID,
		items:     make(map[uuid.UUID]CartItem, len(s.Items)),
		order:     make([]uuid.UUID, 0, len(s.Items)),
		version:   s.Version,
		createdAt: s.CreatedAt,
		updatedAt: s.UpdatedAt,
	}

	for _, item := range s.Items {
		if err := c.validateItem(item.ProductID, item.Quantity, item.UnitPrice); err != nil {
			return nil, fmt.Errorf("item[%s]: %w", item.ProductID, err)
		}
		if _, ok := c.items[item.ProductID]; ok {
			return nil, fmt.Errorf("item[%s]: %w", item.ProductID, ErrDuplicateItem)
		}

		c.items[item.ProductID] = item
		c.order = append(c.order, item.ProductID)
	}

	return c, nil
}

func (c *Cart) ID() uuid.UUID        { return c.id }
func (c *Cart) UserID() string       { return c.userID }
func (c *Cart) Version() int64       { return c.version }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }

// Items returns a copy of the items in the order they were first added.
func (c *Cart) Items() []CartItem {
	return lo.Map(c.order, func(id uuid.UUID, _ int) CartItem {
		return c.items[id]
	})
}

func (c *Cart) Item(productID uuid.UUID) (CartItem, bool) {
	item, ok := c.items[productID]
	return item, ok
}

func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// Currency is the currency of the cart items, XXX for an empty cart.
func (c *Cart) Currency() currency.Unit {
	if len(c.order) == 0 {
		return currency.XXX
	}
	return c.items[c.order[0]].UnitPrice.Currency
}

func (c *Cart) State() CartState {
	return CartState{
		ID:        c.id,
		UserID:    c.userID,
		Items:     c.Items(),
		Version:   c.version,
		CreatedAt: c.createdAt,
		UpdatedAt: c.updatedAt,
	}
}

// AddItem merges quantity into the existing item of the product, keeping its price snapshot,
// or appends a new item. On error the cart is left unchanged.
func (c *Cart) AddItem(productID uuid.UUID, quantity int, unitPrice Money, productName string) error {
	if err := c.validateItem(productID, quantity, unitPrice); err != nil {
		return err
	}

	now := time.Now().UTC()

	if existing, ok := c.items[productID]; ok {
		if existing.Quantity > MaxItemQuantity-quantity {
			return fmt.Errorf("item[%s] quantity[%d+%d]: %w", productID, existing.Quantity, quantity, ErrQuantityTooLarge)
		}
		existing.Quantity += quantity
		c.items[productID] = existing
		c.updatedAt = now
		return nil
	}

	c.items[productID] = CartItem{
		ProductID:   productID,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		ProductName: productName,
		AddedAt:     now,
	}
	c.order = append(c.order, productID)
	c.updatedAt = now

	return nil
}

// RemoveItem is a no-op when the product is not in the cart.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	if _, ok := c.items[productID]; !ok {
		return
	}

	delete(c.items, productID)
	c.order = lo.Without(c.order, productID)
	c.updatedAt = time.Now().UTC()
}

// UpdateItemQuantity replaces the quantity of an existing item, quantity <= 0 removes it.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, quantity int) error {
	item, ok := c.items[productID]
	if !ok {
		return nil
	}

	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}
	if quantity > MaxItemQuantity {
		return fmt.Errorf("quantity[%d]: %w", quantity, ErrQuantityTooLarge)
	}

	item.Quantity = quantity
	c.items[productID] = item
	c.updatedAt = time.Now().UTC()

	return nil
}

func (c *Cart) Clear() {
	c.items = make(map[uuid.UUID]CartItem)
	c.order = nil
	c.updatedAt = time.Now().UTC()
}

func (c *Cart) Total() Money {
	total := ZeroMoney(c.Currency())
	for _, item := range c.items {
		// all items share the cart currency, AddItem guarantees it
		total.Amount = total.Amount.Add(item.LineTotal().Amount)
	}
	return total
}

func (c *Cart) TotalItems() int {
	return lo.SumBy(lo.Values(c.items), func(item CartItem) int {
		return item.Quantity
	})
}

func (c *Cart) validateItem(productID uuid.UUID, quantity int, unitPrice Money) error {
	if err := validateLine(productID, quantity, unitPrice); err != nil {
		return err
	}
	if len(c.order) > 0 && c.Currency() != unitPrice.Currency {
		return fmt.Errorf("cart[%s] item[%s]: %w", c.Currency(), unitPrice.Currency, ErrCurrencyMismatch)
	}

	return nil
}
