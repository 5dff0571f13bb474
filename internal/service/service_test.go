package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/checkout"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
	"github.com/nikolayk812/shopcart/internal/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

type fakeCache struct {
	mu     sync.Mutex
	carts  map[string]domain.CartState
	gets   int
	hits   int
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{carts: make(map[string]domain.CartState)}
}

func (c *fakeCache) Get(_ context.Context, userID string) (*domain.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	if c.getErr != nil {
		return nil, c.getErr
	}

	state, ok := c.carts[userID]
	if !ok {
		return nil, port.ErrCacheMiss
	}
	c.hits++

	return domain.RestoreCart(state)
}

// Set keeps a cached cart with a higher version, like RedisCache.
func (c *fakeCache) Set(_ context.Context, cart *domain.Cart) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.carts[cart.UserID()]; ok && cached.Version > cart.Version() {
		return nil
	}
	c.carts[cart.UserID()] = cart.State()
	return nil
}

func (c *fakeCache) Delete(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.carts, userID)
	return nil
}

func (c *fakeCache) cached(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.carts[userID]
	return ok
}

// cachedVersion is 0 when nothing is cached.
func (c *fakeCache) cachedVersion(userID string) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.carts[userID].Version
}

// gatedCarts pauses the first GetCart after arm, once the cart has been read,
// until release is closed. It then reports a cancelled ctx like pgx would.
type gatedCarts struct {
	port.CartRepository

	armed   atomic.Bool
	read    chan struct{}
	release chan struct{}
}

func newGatedCarts(carts port.CartRepository) *gatedCarts {
	return &gatedCarts{
		CartRepository: carts,
		read:           make(chan struct{}),
		release:        make(chan struct{}),
	}
}

func (g *gatedCarts) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := g.CartRepository.GetCart(ctx, userID)

	if g.armed.CompareAndSwap(true, false) {
		close(g.read)
		<-g.release

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
	}

	return cart, err
}

func newCartService(t *testing.T, s services, carts port.CartRepository) *service.CartService {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc, err := service.NewCartService(carts, s.store.Products(), s.cache, logger)
	require.NoError(t, err)

	return svc
}

type publishedStatus struct {
	orderID  uuid.UUID
	from, to domain.OrderStatus
}

type fakePublisher struct {
	mu      sync.Mutex
	placed  []uuid.UUID
	changed []publishedStatus
	err     error
}

func (p *fakePublisher) PublishOrderPlaced(_ context.Context, order *domain.Order) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.placed = append(p.placed, order.ID())
	return nil
}

func (p *fakePublisher) PublishOrderStatusChanged(_ context.Context, order *domain.Order, previous domain.OrderStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.err != nil {
		return p.err
	}
	p.changed = append(p.changed, publishedStatus{orderID: order.ID(), from: previous, to: order.Status()})
	return nil
}

type services struct {
	store     *repository.MemoryStore
	cache     *fakeCache
	publisher *fakePublisher
	catalog   *service.CatalogService
	carts     *service.CartService
	orders    *service.OrderService
}

func newServices(t *testing.T) services {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := repository.NewMemoryStore()
	cache := newFakeCache()
	publisher := &fakePublisher{}

	catalog, err := service.NewCatalogService(store.Products(), logger)
	require.NoError(t, err)

	carts, err := service.NewCartService(store.Carts(), store.Products(), cache, logger)
	require.NoError(t, err)

	pipeline, err := checkout.NewPipeline(store, domain.DefaultPricing)
	require.NoError(t, err)

	orders, err := service.NewOrderService(pipeline, store.Orders(), carts, publisher, logger)
	require.NoError(t, err)

	return services{
		store:     store,
		cache:     cache,
		publisher: publisher,
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
	}
}

func usd(amount string) domain.Money {
	return domain.NewMoney(decimal.RequireFromString(amount), currency.USD)
}

func createProduct(t *testing.T, catalog *service.CatalogService, price string, stock int) domain.Product {
	t.Helper()

	p, err := catalog.CreateProduct(t.Context(), service.CreateProduct{
		Name:          gofakeit.ProductName(),
		Description:   gofakeit.ProductDescription(),
		Price:         usd(price),
		SKU:           gofakeit.UUID(),
		StockQuantity: stock,
	})
	require.NoError(t, err)

	return p
}
