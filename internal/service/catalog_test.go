package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/repository"
	"github.com/nikolayk812/shopcart/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_CreateProduct(t *testing.T) {
	s := newServices(t)
	ctx := t.Context()

	created := createProduct(t, s.catalog, "9.99", 3)
	assert.Equal(t, int64(1), created.Version)
	assert.True(t, created.IsActive)

	bySKU, err := s.catalog.GetProductBySKU(ctx, created.SKU)
	require.NoError(t, err)
	assert.Equal(t, created.ID, bySKU.ID)

	_, err = s.catalog.CreateProduct(ctx, service.CreateProduct{
		Name:  "other",
		Price: usd("1"),
		SKU:   created.SKU,
	})
	require.ErrorIs(t, err, repository.ErrAlreadyExists)
	require.EqualError(t, err, "sku["+created.SKU+"]: already exists")

	_, err = s.catalog.CreateProduct(ctx, service.CreateProduct{Name: "free", Price: usd("0"), SKU: "FREE"})
	require.ErrorIs(t, err, domain.ErrInvalidPrice)
}

func TestCatalogService_Updates(t *testing.T) {
	s := newServices(t)
	ctx := t.Context()
	p := createProduct(t, s.catalog, "10", 3)

	updated, err := s.catalog.UpdatePrice(ctx, p.ID, usd("12.5"))
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(usd("12.50")))
	assert.Equal(t, int64(2), updated.Version)

	updated, err = s.catalog.UpdateStock(ctx, p.ID, 0)
	require.NoError(t, err)
	assert.False(t, updated.IsInStock())

	updated, err = s.catalog.SetActive(ctx, p.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Equal(t, int64(4), updated.Version)

	_, err = s.catalog.UpdateStock(ctx, p.ID, -1)
	require.ErrorIs(t, err, domain.ErrNegativeStock)

	_, err = s.catalog.UpdatePrice(ctx, uuid.New(), usd("1"))
	require.ErrorIs(t, err, repository.ErrNotFound)
}
