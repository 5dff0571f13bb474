package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
	"golang.org/x/sync/singleflight"
)

const (
	cacheFillTimeout    = 5 * time.Second
	cacheRefreshTimeout = time.Second
)

type AddItemResult struct {
	TotalItems int
	Total      domain.Money
}

// CartService reads carts through the cache and writes them to the repository.
// Writes always start from the repository copy, the saved cart is then written through
// to the cache. The cache never goes back to a lower cart version.
type CartService struct {
	carts    port.CartRepository
	products port.ProductRepository
	cache    port.CartCache
	logger   *slog.Logger

	sfg singleflight.Group
}

func NewCartService(carts port.CartRepository, products port.ProductRepository, cache port.CartCache, logger *slog.Logger) (*CartService, error) {
	if carts == nil {
		return nil, errors.New("carts is nil")
	}
	if products == nil {
		return nil, errors.New("products is nil")
	}
	if cache == nil {
		return nil, errors.New("cache is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	return &CartService{
		carts:    carts,
		products: products,
		cache:    cache,
		logger:   logger,
	}, nil
}

// GetCart returns an empty, not persisted cart when the user has none yet.
func (s *CartService) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, domain.ErrEmptyUserID
	}

	v, err, _ := s.sfg.Do(userID, func() (any, error) {
		// shared by every caller of the flight, not bound to the first caller's cancellation
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheFillTimeout)
		defer cancel()

		cart, err := s.cache.Get(ctx, userID)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, port.ErrCacheMiss) {
			s.logger.Warn("cache get failed", "user_id", userID, "error", err)
		}

		cart, err = s.loadCart(ctx, userID)
		if err != nil {
			return nil, err
		}

		if cart.Version() > 0 {
			if err := s.cache.Set(ctx, cart); err != nil {
				s.logger.Warn("cache set failed", "user_id", userID, "error", err)
			}
		}

		return cart, nil
	})
	if err != nil {
		return nil, err
	}

	// callers sharing one flight must not share the aggregate
	cart, err := domain.RestoreCart(v.(*domain.Cart).State())
	if err != nil {
		return nil, fmt.Errorf("domain.RestoreCart: %w", err)
	}

	return cart, nil
}

func (s *CartService) AddItem(ctx context.Context, userID string, productID uuid.UUID, quantity int) (AddItemResult, error) {
	var result AddItemResult

	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return result, err
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return result, err
	}

	if err := domain.AddToCart(cart, product, productID, quantity); err != nil {
		return result, err
	}

	if err := s.save(ctx, cart); err != nil {
		return result, err
	}

	s.logger.Info("item added to cart", "user_id", userID, "product_id", productID, "quantity", quantity)

	return AddItemResult{
		TotalItems: cart.TotalItems(),
		Total:      cart.Total(),
	}, nil
}

// UpdateItemQuantity sets the quantity of a cart item, a quantity ≤ 0 removes it.
// A new positive quantity is checked against the product's current stock.
func (s *CartService) UpdateItemQuantity(ctx context.Context, userID string, productID uuid.UUID, quantity int) error {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return err
	}

	if _, ok := cart.Item(productID); !ok {
		return nil
	}

	if quantity > 0 {
		product, err := s.findProduct(ctx, productID)
		if err != nil {
			return err
		}

		if err := domain.CheckAvailability(product, productID, quantity); err != nil {
			return err
		}
	}

	if err := cart.UpdateItemQuantity(productID, quantity); err != nil {
		return err
	}

	if err := s.save(ctx, cart); err != nil {
		return err
	}

	s.logger.Info("cart item updated", "user_id", userID, "product_id", productID, "quantity", quantity)

	return nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID string, productID uuid.UUID) error {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return err
	}

	if _, ok := cart.Item(productID); !ok {
		return nil
	}

	cart.RemoveItem(productID)

	if err := s.save(ctx, cart); err != nil {
		return err
	}

	s.logger.Info("cart item removed", "user_id", userID, "product_id", productID)

	return nil
}

func (s *CartService) Clear(ctx context.Context, userID string) error {
	cart, err := s.loadCart(ctx, userID)
	if err != nil {
		return err
	}

	if cart.Version() == 0 {
		return nil
	}

	cart.Clear()

	if err := s.save(ctx, cart); err != nil {
		return err
	}

	s.logger.Info("cart cleared", "user_id", userID)

	return nil
}

// RefreshCache writes the stored cart of the user to the cache.
// When that fails the cached cart is dropped, failures are only logged.
func (s *CartService) RefreshCache(ctx context.Context, userID string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheRefreshTimeout)
	defer cancel()

	err := s.writeThrough(ctx, userID)
	if err == nil {
		return
	}
	s.logger.Warn("cache refresh failed", "user_id", userID, "error", err)

	if err := s.cache.Delete(ctx, userID); err != nil {
		s.logger.Warn("cache delete failed", "user_id", userID, "error", err)
	}
}

func (s *CartService) writeThrough(ctx context.Context, userID string) error {
	cart, err := s.carts.GetCart(ctx, userID)
	if err != nil {
		return fmt.Errorf("carts.GetCart: %w", err)
	}

	if err := s.cache.Set(ctx, cart); err != nil {
		return fmt.Errorf("cache.Set: %w", err)
	}

	return nil
}

func (s *CartService) loadCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewCart(userID)
	}
	if err != nil {
		return nil, fmt.Errorf("carts.GetCart: %w", err)
	}

	return cart, nil
}

// findProduct returns nil when the catalog has no such product.
func (s *CartService) findProduct(ctx context.Context, productID uuid.UUID) (*domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("products.GetProduct: %w", err)
	}

	return &product, nil
}

func (s *CartService) save(ctx context.Context, cart *domain.Cart) error {
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return fmt.Errorf("carts.SaveCart: %w", err)
	}

	s.RefreshCache(ctx, cart.UserID())

	return nil
}
