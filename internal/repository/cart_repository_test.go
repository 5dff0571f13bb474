package repository_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/nikolayk812/shopcart/internal/port"
	"github.com/nikolayk812/shopcart/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
)

type cartRepositorySuite struct {
	suite.Suite

	pool      *pgxpool.Pool
	repo      port.CartRepository
	container testcontainers.Container
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	defer verifyNoLeaks(t)

	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	var (
		connStr string
		err     error
	)

	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewCart(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	ctx := suite.T().Context()

	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(ctx))
	}
}

func (suite *cartRepositorySuite) TestSaveCart_New() {
	tests := []struct {
		name      string
		itemCount int
	}{
		{
			name:      "empty cart: ok",
			itemCount: 0,
		},
		{
			name:      "single item: ok",
			itemCount: 1,
		},
		{
			name:      "several items keep their order: ok",
			itemCount: 5,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			cart := randomCart(t, gofakeit.UUID(), tt.itemCount)

			err := suite.repo.SaveCart(ctx, cart)
			require.NoError(t, err)

			actual, err := suite.repo.GetCart(ctx, cart.UserID())
			require.NoError(t, err)

			assertCartState(t, cart.State(), actual.State())
			assert.Equal(t, int64(1), actual.Version())
		})
	}
}

func (suite *cartRepositorySuite) TestSaveCart_Update() {
	t := suite.T()
	ctx := t.Context()

	cart := randomCart(t, gofakeit.UUID(), 3)
	require.NoError(t, suite.repo.SaveCart(ctx, cart))

	stored, err := suite.repo.GetCart(ctx, cart.UserID())
	require.NoError(t, err)

	items := stored.Items()
	require.NoError(t, stored.UpdateItemQuantity(items[0].ProductID, 10))
	stored.RemoveItem(items[1].ProductID)
	require.NoError(t, stored.AddItem(uuid.New(), 2, items[2].UnitPrice, "extra"))

	require.NoError(t, suite.repo.SaveCart(ctx, stored))

	actual, err := suite.repo.GetCart(ctx, cart.UserID())
	require.NoError(t, err)

	assertCartState(t, stored.State(), actual.State())
	assert.Equal(t, int64(2), actual.Version())
	assert.Equal(t, stored.TotalItems(), actual.TotalItems())
	assert.True(t, stored.Total().Equal(actual.Total()))

	// clear keeps the cart row
	actual.Clear()
	require.NoError(t, suite.repo.SaveCart(ctx, actual))

	cleared, err := suite.repo.GetCart(ctx, cart.UserID())
	require.NoError(t, err)
	assert.True(t, cleared.IsEmpty())
	assert.Equal(t, cart.ID(), cleared.ID())
}

func (suite *cartRepositorySuite) TestSaveCart_Conflicts() {
	t := suite.T()
	ctx := t.Context()

	userID := gofakeit.UUID()
	cart := randomCart(t, userID, 1)
	require.NoError(t, suite.repo.SaveCart(ctx, cart))

	// a second fresh cart for the same user lost the creation race
	err := suite.repo.SaveCart(ctx, randomCart(t, userID, 1))
	require.ErrorIs(t, err, repository.ErrConcurrentUpdate)

	first, err := suite.repo.GetCart(ctx, userID)
	require.NoError(t, err)
	second, err := suite.repo.GetCart(ctx, userID)
	require.NoError(t, err)

	first.Clear()
	require.NoError(t, suite.repo.SaveCart(ctx, first))

	second.Clear()
	err = suite.repo.SaveCart(ctx, second)
	require.ErrorIs(t, err, repository.ErrConcurrentUpdate)
}

func (suite *cartRepositorySuite) TestGetCart_NotFound() {
	t := suite.T()
	ctx := t.Context()

	_, err := suite.repo.GetCart(ctx, gofakeit.UUID())
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.EqualError(t, err, "withTx: q.GetCartByUser: not found")

	_, err = suite.repo.GetCart(ctx, "")
	require.EqualError(t, err, "userID is empty")
}

func (suite *cartRepositorySuite) TestSaveCart_UnknownCart() {
	t := suite.T()
	ctx := t.Context()

	cart := randomCart(t, gofakeit.UUID(), 2)
	require.NoError(t, suite.repo.SaveCart(ctx, cart))

	stored, err := suite.repo.GetCart(ctx, cart.UserID())
	require.NoError(t, err)

	// persisted version but an id the database does not know
	foreign, err := domain.RestoreCart(domain.CartState{
		ID:      uuid.New(),
		UserID:  stored.UserID(),
		Version: stored.Version(),
	})
	require.NoError(t, err)

	err = suite.repo.SaveCart(ctx, foreign)
	require.ErrorIs(t, err, repository.ErrNotFound)

	actual, err := suite.repo.GetCart(ctx, cart.UserID())
	require.NoError(t, err)
	assertCartState(t, stored.State(), actual.State())
}
