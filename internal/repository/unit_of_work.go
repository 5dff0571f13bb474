package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/port"
)

type unitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) port.UnitOfWork {
	return &unitOfWork{pool: pool}
}

func (u *unitOfWork) Do(ctx context.Context, fn func(repos port.Repositories) error) error {
	_, err := inTx(ctx, u.pool, func(tx pgx.Tx) (struct{}, error) {
		return struct{}{}, fn(port.Repositories{
			Products: NewProductWithTx(tx),
			Carts:    NewCartWithTx(tx),
			Orders:   NewOrderWithTx(tx),
		})
	})

	return err
}
