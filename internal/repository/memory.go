package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/samber/lo"
)

// MemoryStore keeps products, carts and orders in process memory.
// It follows the Postgres repositories: versions start at 1, stale versions are
// rejected with ErrConcurrentUpdate, and Do commits or discards all writes of fn at once.
type MemoryStore struct {
	mu   sync.Mutex
	data memoryData
}

type memoryData struct {
	products map[uuid.UUID]domain.Product
	carts    map[string]domain.CartState // by user id
	orders   map[uuid.UUID]domain.OrderState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: memoryData{
			products: make(map[uuid.UUID]domain.Product),
			carts:    make(map[string]domain.CartState),
			orders:   make(map[uuid.UUID]domain.OrderState),
		},
	}
}

func (s *MemoryStore) Products() port.ProductRepository {
	return &memoryRepository{lock: &s.mu, data: &s.data}
}

func (s *MemoryStore) Carts() port.CartRepository {
	return &memoryRepository{lock: &s.mu, data: &s.data}
}

func (s *MemoryStore) Orders() port.OrderRepository {
	return &memoryRepository{lock: &s.mu, data: &s.data}
}

func (s *MemoryStore) Repositories() port.Repositories {
	return port.Repositories{
		Products: s.Products(),
		Carts:    s.Carts(),
		Orders:   s.Orders(),
	}
}

// Do runs fn against a working copy under the store lock and swaps it in if fn succeeds.
func (s *MemoryStore) Do(ctx context.Context, fn func(repos port.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	work := memoryData{
		products: maps.Clone(s.data.products),
		carts:    maps.Clone(s.data.carts),
		orders:   maps.Clone(s.data.orders),
	}

	repo := &memoryRepository{lock: noLock{}, data: &work}
	if err := fn(port.Repositories{Products: repo, Carts: repo, Orders: repo}); err != nil {
		return err
	}

	s.data = work

	return nil
}

type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

type memoryRepository struct {
	lock sync.Locker
	data *memoryData
}

func (r *memoryRepository) GetProduct(_ context.Context, productID uuid.UUID) (domain.Product, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	p, ok := r.data.products[productID]
	if !ok {
		return domain.Product{}, fmt.Errorf("GetProduct: %w", ErrNotFound)
	}

	return p, nil
}

func (r *memoryRepository) GetProductBySKU(_ context.Context, sku string) (domain.Product, error) {
	if sku == "" {
		return domain.Product{}, fmt.Errorf("sku is empty")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	for _, p := range r.data.products {
		if p.SKU == sku {
			return p, nil
		}
	}

	return domain.Product{}, fmt.Errorf("GetProductBySKU: %w", ErrNotFound)
}

func (r *memoryRepository) InsertProduct(_ context.Context, product domain.Product) error {
	if product.ID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	_, idTaken := r.data.products[product.ID]
	skuTaken := lo.SomeBy(lo.Values(r.data.products), func(p domain.Product) bool {
		return p.SKU == product.SKU
	})
	if idTaken || skuTaken {
		return fmt.Errorf("InsertProduct: %w", ErrAlreadyExists)
	}

	product.Version = 1
	r.data.products[product.ID] = product

	return nil
}

func (r *memoryRepository) UpdateProduct(_ context.Context, product domain.Product) error {
	if product.ID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	stored, ok := r.data.products[product.ID]
	if !ok {
		return fmt.Errorf("UpdateProduct: %w", ErrNotFound)
	}
	if stored.Version != product.Version {
		return fmt.Errorf("UpdateProduct: %w", ErrConcurrentUpdate)
	}

	product.SKU = stored.SKU
	product.CreatedAt = stored.CreatedAt
	product.Version = stored.Version + 1
	r.data.products[product.ID] = product

	return nil
}

func (r *memoryRepository) GetCart(_ context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	r.lock.Lock()
	state, ok := r.data.carts[userID]
	r.lock.Unlock()

	if !ok {
		return nil, fmt.Errorf("GetCart: %w", ErrNotFound)
	}

	cart, err := domain.RestoreCart(state)
	if err != nil {
		return nil, fmt.Errorf("domain.RestoreCart: %w", err)
	}

	return cart, nil
}

func (r *memoryRepository) SaveCart(_ context.Context, cart *domain.Cart) error {
	if cart == nil {
		return fmt.Errorf("cart is nil")
	}

	state := cart.State()

	r.lock.Lock()
	defer r.lock.Unlock()

	stored, exists := r.data.carts[state.UserID]

	switch {
	case state.Version == 0 && exists:
		return fmt.Errorf("SaveCart: %w", ErrConcurrentUpdate)
	case state.Version == 0:
		state.Version = 1
	case !exists || stored.ID != state.ID:
		return fmt.Errorf("SaveCart: %w", ErrNotFound)
	case stored.Version != state.Version:
		return fmt.Errorf("SaveCart: %w", ErrConcurrentUpdate)
	default:
		state.CreatedAt = stored.CreatedAt
		state.Version = stored.Version + 1
	}

	r.data.carts[state.UserID] = state

	return nil
}

func (r *memoryRepository) GetOrder(_ context.Context, orderID uuid.UUID) (*domain.Order, error) {
	if orderID == uuid.Nil {
		return nil, fmt.Errorf("orderID is empty")
	}

	r.lock.Lock()
	state, ok := r.data.orders[orderID]
	r.lock.Unlock()

	if !ok {
		return nil, fmt.Errorf("GetOrder: %w", ErrNotFound)
	}

	order, err := domain.RestoreOrder(state)
	if err != nil {
		return nil, fmt.Errorf("domain.RestoreOrder: %w", err)
	}

	return order, nil
}

func (r *memoryRepository) ListOrdersByUser(_ context.Context, userID string) ([]*domain.Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	r.lock.Lock()
	states := lo.Filter(lo.Values(r.data.orders), func(s domain.OrderState, _ int) bool {
		return s.UserID == userID
	})
	r.lock.Unlock()

	slices.SortFunc(states, func(a, b domain.OrderState) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})

	orders := make([]*domain.Order, 0, len(states))
	for _, state := range states {
		order, err := domain.RestoreOrder(state)
		if err != nil {
			return nil, fmt.Errorf("domain.RestoreOrder: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *memoryRepository) InsertOrder(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	state := order.State()
	if len(state.Items) == 0 {
		return fmt.Errorf("no items in order")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if _, exists := r.data.orders[state.ID]; exists {
		return fmt.Errorf("InsertOrder: %w", ErrAlreadyExists)
	}

	state.Version = 1
	r.data.orders[state.ID] = state

	return nil
}

func (r *memoryRepository) UpdateOrderStatus(_ context.Context, order *domain.Order) error {
	if order == nil {
		return fmt.Errorf("order is nil")
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	stored, ok := r.data.orders[order.ID()]
	if !ok {
		return fmt.Errorf("UpdateOrderStatus: %w", ErrNotFound)
	}
	if stored.Version != order.Version() {
		return fmt.Errorf("UpdateOrderStatus: %w", ErrConcurrentUpdate)
	}

	stored.Status = order.Status()
	stored.UpdatedAt = lo.Ternary(order.UpdatedAt().IsZero(), time.Now().UTC(), order.UpdatedAt())
	stored.Version++
	r.data.orders[order.ID()] = stored

	return nil
}
