package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/db"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
)

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q: db.New(pool),
	}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{
		q: db.New(tx),
	}
}

func (r *productRepository) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	var p domain.Product

	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetProduct: %w", ErrNotFound)
		}
		return p, fmt.Errorf("q.GetProduct: %w", err)
	}

	p, err = mapProductToDomain(dbProduct)
	if err != nil {
		return p, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return p, nil
}

func (r *productRepository) GetProductBySKU(ctx context.Context, sku string) (domain.Product, error) {
	var p domain.Product

	if sku == "" {
		return p, fmt.Errorf("sku is empty")
	}

	dbProduct, err := r.q.GetProductBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return p, fmt.Errorf("q.GetProductBySKU: %w", ErrNotFound)
		}
		return p, fmt.Errorf("q.GetProductBySKU: %w", err)
	}

	p, err = mapProductToDomain(dbProduct)
	if err != nil {
		return p, fmt.Errorf("mapProductToDomain: %w", err)
	}

	return p, nil
}

func (r *productRepository) InsertProduct(ctx context.Context, product domain.Product) error {
	if product.ID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}

	err := r.q.InsertProduct(ctx, db.InsertProductParams{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Sku:           product.SKU,
		StockQuantity: int32(product.StockQuantity),
		IsActive:      product.IsActive,
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("q.InsertProduct: %w", ErrAlreadyExists)
		}
		return fmt.Errorf("q.InsertProduct: %w", err)
	}

	return nil
}

func (r *productRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	if product.ID == uuid.Nil {
		return fmt.Errorf("productID is empty")
	}

	rowsAffected, err := r.q.UpdateProduct(ctx, db.UpdateProductParams{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		StockQuantity: int32(product.StockQuantity),
		IsActive:      product.IsActive,
		UpdatedAt:     product.UpdatedAt,
		Version:       product.Version,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateProduct: %w", err)
	}

	if rowsAffected == 0 {
		exists, err := r.q.ProductExists(ctx, product.ID)
		if err != nil {
			return fmt.Errorf("q.ProductExists: %w", err)
		}
		if !exists {
			return fmt.Errorf("q.UpdateProduct: %w", ErrNotFound)
		}
		return fmt.Errorf("q.UpdateProduct: %w", ErrConcurrentUpdate)
	}

	return nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	price, err := mapMoneyToDomain(row.PriceAmount, row.PriceCurrency)
	if err != nil {
		return domain.Product{}, fmt.Errorf("price: %w", err)
	}

	return domain.Product{
		ID:            row.ID,
		Name:          row.Name,
		Description:   row.Description,
		Price:         price,
		SKU:           row.Sku,
		StockQuantity: int(row.StockQuantity),
		IsActive:      row.IsActive,
		Version:       row.Version,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
}
