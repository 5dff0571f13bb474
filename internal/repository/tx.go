package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/nikolayk812/shopcart/internal/db"
)

type txBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// withTx runs fn with queries bound to a transaction: the one dbtx already is,
// or a new one begun on dbtx and committed when fn succeeds.
func withTx[T any](ctx context.Context, dbtx db.DBTX, fn func(q *db.Queries) (T, error)) (T, error) {
	return inTx(ctx, dbtx, func(tx pgx.Tx) (T, error) {
		return fn(db.New(tx))
	})
}

func inTx[T any](ctx context.Context, dbtx db.DBTX, fn func(tx pgx.Tx) (T, error)) (_ T, txErr error) {
	var zero T

	// nested call, the outer owner commits
	if tx, ok := dbtx.(pgx.Tx); ok {
		return fn(tx)
	}

	beginner, ok := dbtx.(txBeginner)
	if !ok {
		return zero, fmt.Errorf("dbtx can neither begin a transaction nor is one: %T", dbtx)
	}

	tx, err := beginner.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}
