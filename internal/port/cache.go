package port

import (
	"context"
	"errors"

	"github.com/nikolayk812/shopcart/internal/domain"
)

var ErrCacheMiss = errors.New("cache miss")

type CartCache interface {
	// Get returns ErrCacheMiss when nothing is cached for the user.
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	Set(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, userID string) error
}
