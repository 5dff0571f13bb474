package cache

import (
	"context"

	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
)

// Noop is used when no Redis address is configured, every Get misses.
type Noop struct{}

func (Noop) Get(context.Context, string) (*domain.Cart, error) {
	return nil, port.ErrCacheMiss
}

func (Noop) Set(context.Context, *domain.Cart) error {
	return nil
}

func (Noop) Delete(context.Context, string) error {
	return nil
}
