package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
)

type CreateProduct struct {
	Name          string
	Description   string
	Price         domain.Money
	SKU           string
	StockQuantity int
}

type CatalogService struct {
	products port.ProductRepository
	logger   *slog.Logger
}

func NewCatalogService(products port.ProductRepository, logger *slog.Logger) (*CatalogService, error) {
	if products == nil {
		return nil, errors.New("products is nil")
	}
	if logger == nil {
		return nil, errors.New("logger is nil")
	}

	return &CatalogService{
		products: products,
		logger:   logger,
	}, nil
}

// CreateProduct fails with repository.ErrAlreadyExists when the SKU is taken.
func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProduct) (domain.Product, error) {
	product, err := domain.NewProduct(in.Name, in.Description, in.Price, in.SKU, in.StockQuantity)
	if err != nil {
		return domain.Product{}, fmt.Errorf("domain.NewProduct: %w", err)
	}

	_, err = s.products.GetProductBySKU(ctx, product.SKU)
	switch {
	case err == nil:
		return domain.Product{}, fmt.Errorf("sku[%s]: %w", product.SKU, repository.ErrAlreadyExists)
	case !errors.Is(err, repository.ErrNotFound):
		return domain.Product{}, fmt.Errorf("products.GetProductBySKU: %w", err)
	}

	if err := s.products.InsertProduct(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("products.InsertProduct: %w", err)
	}

	s.logger.Info("product created", "product_id", product.ID, "sku", product.SKU)

	return s.GetProduct(ctx, product.ID)
}

func (s *CatalogService) GetProduct(ctx context.Context, productID uuid.UUID) (domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	return product, nil
}

func (s *CatalogService) GetProductBySKU(ctx context.Context, sku string) (domain.Product, error) {
	product, err := s.products.GetProductBySKU(ctx, sku)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProductBySKU: %w", err)
	}

	return product, nil
}

func (s *CatalogService) UpdatePrice(ctx context.Context, productID uuid.UUID, price domain.Money) (domain.Product, error) {
	return s.update(ctx, productID, func(p *domain.Product) error {
		return p.UpdatePrice(price)
	})
}

func (s *CatalogService) UpdateStock(ctx context.Context, productID uuid.UUID, quantity int) (domain.Product, error) {
	return s.update(ctx, productID, func(p *domain.Product) error {
		return p.UpdateStock(quantity)
	})
}

func (s *CatalogService) SetActive(ctx context.Context, productID uuid.UUID, active bool) (domain.Product, error) {
	return s.update(ctx, productID, func(p *domain.Product) error {
		p.SetActive(active)
		return nil
	})
}

func (s *CatalogService) update(ctx context.Context, productID uuid.UUID, fn func(p *domain.Product) error) (domain.Product, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("products.GetProduct: %w", err)
	}

	if err := fn(&product); err != nil {
		return domain.Product{}, err
	}

	if err := s.products.UpdateProduct(ctx, product); err != nil {
		return domain.Product{}, fmt.Errorf("products.UpdateProduct: %w", err)
	}

	s.logger.Info("product updated", "product_id", product.ID,
		"price", product.Price.String(), "stock", product.StockQuantity, "active", product.IsActive)

	return s.GetProduct(ctx, productID)
}
