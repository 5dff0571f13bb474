package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/db"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
)

type cartRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *cartRepository) GetCart(ctx context.Context, userID string) (*domain.Cart, error) {
	if userID == "" {
		return nil, fmt.Errorf("userID is empty")
	}

	cart, err := withTx(ctx, r.dbtx, func(q *db.Queries) (*domain.Cart, error) {
		dbCart, err := q.GetCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("q.GetCartByUser: %w", ErrNotFound)
			}
			return nil, fmt.Errorf("q.GetCartByUser: %w", err)
		}

		dbCartItems, err := q.GetCartItems(ctx, dbCart.ID)
		if err != nil {
			return nil, fmt.Errorf("q.GetCartItems: %w", err)
		}

		cart, err := mapCartToDomain(dbCart, dbCartItems)
		if err != nil {
			return nil, fmt.Errorf("mapCartToDomain: %w", err)
		}

		return cart, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withTx: %w", err)
	}

	return cart, nil
}

func (r *cartRepository) SaveCart(ctx context.Context, cart *domain.Cart) error {
	if cart == nil {
		return fmt.Errorf("cart is nil")
	}

	state := cart.State()

	_, err := withTx(ctx, r.dbtx, func(q *db.Queries) (struct{}, error) {
		var none struct{}

		if state.Version == 0 {
			err := q.InsertCart(ctx, db.InsertCartParams{
				ID:        state.ID,
				UserID:    state.UserID,
				CreatedAt: state.CreatedAt,
				UpdatedAt: state.UpdatedAt,
			})
			if err != nil {
				// another request created the user's cart first
				if isUniqueViolation(err) {
					return none, fmt.Errorf("q.InsertCart: %w", ErrConcurrentUpdate)
				}
				return none, fmt.Errorf("q.InsertCart: %w", err)
			}
		} else {
			rowsAffected, err := q.UpdateCart(ctx, db.UpdateCartParams{
				ID:        state.ID,
				UpdatedAt: state.UpdatedAt,
				Version:   state.Version,
			})
			if err != nil {
				return none, fmt.Errorf("q.UpdateCart: %w", err)
			}

			if rowsAffected == 0 {
				exists, err := q.CartExists(ctx, state.ID)
				if err != nil {
					return none, fmt.Errorf("q.CartExists: %w", err)
				}
				if !exists {
					return none, fmt.Errorf("q.UpdateCart: %w", ErrNotFound)
				}
				return none, fmt.Errorf("q.UpdateCart: %w", ErrConcurrentUpdate)
			}

			if err := q.DeleteCartItems(ctx, state.ID); err != nil {
				return none, fmt.Errorf("q.DeleteCartItems: %w", err)
			}
		}

		for i, item := range state.Items {
			arg := db.InsertCartItemParams{
				CartID:        state.ID,
				ProductID:     item.ProductID,
				Position:      int32(i),
				Quantity:      int32(item.Quantity),
				PriceAmount:   item.UnitPrice.Amount,
				PriceCurrency: item.UnitPrice.Currency.String(),
				ProductName:   item.ProductName,
				AddedAt:       item.AddedAt,
			}
			if err := q.InsertCartItem(ctx, arg); err != nil {
				return none, fmt.Errorf("q.InsertCartItem: %w", err)
			}
		}

		return none, nil
	})
	if err != nil {
		return fmt.Errorf("withTx: %w", err)
	}

	return nil
}

func mapCartItemToDomain(row db.CartItem) (domain.CartItem, error) {
	price, err := mapMoneyToDomain(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, err
	}

	return domain.CartItem{
		ProductID:   row.ProductID,
		Quantity:    int(row.Quantity),
		UnitPrice:   price,
		ProductName: row.ProductName,
		AddedAt:     row.AddedAt,
	}, nil
}

func mapCartToDomain(dbCart db.Cart, rows []db.CartItem) (*domain.Cart, error) {
	items := make([]domain.CartItem, 0, len(rows))

	for _, row := range rows {
		item, err := mapCartItemToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapCartItemToDomain: %w", err)
		}

		items = append(items, item)
	}

	cart, err := domain.RestoreCart(domain.CartState{
		ID:        dbCart.ID,
		UserID:    dbCart.UserID,
		Items:     items,
		Version:   dbCart.Version,
		CreatedAt: dbCart.CreatedAt,
		UpdatedAt: dbCart.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("domain.RestoreCart: %w", err)
	}

	return cart, nil
}
