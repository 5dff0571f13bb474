package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

const DefaultTTL = 15 * time.Minute

const (
	fieldVersion = "version"
	fieldData    = "data"
)

// setIfNotOlder writes the snapshot unless the cached one has a higher version.
// KEYS[1] cart key, ARGV version, snapshot, ttl in milliseconds.
var setIfNotOlder = redis.NewScript(`
local cached = redis.call('HGET', KEYS[1], 'version')
if cached and tonumber(cached) > tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'data', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// RedisCache stores cart snapshots as JSON in a cart:<userID> hash next to the cart version.
// Entries expire after the base TTL plus up to a quarter of it, so carts cached
// together do not expire together.
type RedisCache struct {
	client  redis.Cmdable
	baseTTL time.Duration
}

func NewRedisCache(client redis.Cmdable, baseTTL time.Duration) (*RedisCache, error) {
	if client == nil {
		return nil, errors.New("client is nil")
	}
	if baseTTL <= 0 {
		return nil, fmt.Errorf("baseTTL must be positive: %s", baseTTL)
	}

	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}, nil
}

func (r *RedisCache) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	data, err := r.client.HGet(ctx, cacheKey(userID), fieldData).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, port.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("client.HGet: %w", err)
	}

	var dto cartDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("json.Unmarshal: %w", err)
	}

	cart, err := mapDTOToCart(dto)
	if err != nil {
		return nil, fmt.Errorf("mapDTOToCart: %w", err)
	}

	return cart, nil
}

// Set keeps an already cached cart with a higher version and reports no error in that case.
func (r *RedisCache) Set(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return errors.New("cart is nil")
	}

	data, err := json.Marshal(mapCartToDTO(cart.State()))
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	keys := []string{cacheKey(cart.UserID())}
	if err := setIfNotOlder.Run(ctx, r.client, keys, cart.Version(), data, r.ttl().Milliseconds()).Err(); err != nil {
		return fmt.Errorf("setIfNotOlder.Run: %w", err)
	}

	return nil
}

func (r *RedisCache) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("client.Del: %w", err)
	}

	return nil
}

func (r *RedisCache) ttl() time.Duration {
	maxJitter := r.baseTTL / 4
	if maxJitter <= 0 {
		return r.baseTTL
	}

	return r.baseTTL + rand.N(maxJitter)
}

func cacheKey(userID string) string {
	return fmt.Sprintf("cart:%s", userID)
}

type cartDTO struct {
	ID        uuid.UUID     `json:"id"`
	UserID    string        `json:"user_id"`
	Items     []cartItemDTO `json:"items"`
	Version   int64         `json:"version"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type cartItemDTO struct {
	ProductID   uuid.UUID       `json:"product_id"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	ProductName string          `json:"product_name"`
	AddedAt     time.Time       `json:"added_at"`
}

func mapCartToDTO(s domain.CartState) cartDTO {
	items := make([]cartItemDTO, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, cartItemDTO{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			Price:       item.UnitPrice.Amount,
			Currency:    item.UnitPrice.Currency.String(),
			ProductName: item.ProductName,
			AddedAt:     item.AddedAt,
		})
	}

	return cartDTO{
		ID:        s.ID,
		UserID:    s.UserID,
		Items:     items,
		Version:   s.Version,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func mapDTOToCart(dto cartDTO) (*domain.Cart, error) {
	items := make([]domain.CartItem, 0, len(dto.Items))
	for _, item := range dto.Items {
		unit, err := currency.ParseISO(item.Currency)
		if err != nil {
			return nil, fmt.Errorf("currency[%s] is not valid: %w", item.Currency, err)
		}

		items = append(items, domain.CartItem{
			ProductID:   item.ProductID,
			Quantity:    item.Quantity,
			UnitPrice:   domain.NewMoney(item.Price, unit),
			ProductName: item.ProductName,
			AddedAt:     item.AddedAt,
		})
	}

	return domain.RestoreCart(domain.CartState{
		ID:        dto.ID,
		UserID:    dto.UserID,
		Items:     items,
		Version:   dto.Version,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}
