package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcart/internal/db"
	"github.com/nikolayk812/shopcart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/goleak"
	"golang.org/x/text/currency"
)

// startPostgres starts a disposable Postgres with the schema migrated.
func startPostgres(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("shop"),
		postgres.WithUsername("shop"),
		postgres.WithPassword("shop"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return container, "", fmt.Errorf("container.ConnectionString: %w", err)
	}

	if err := db.Migrate(connStr); err != nil {
		return container, "", fmt.Errorf("db.Migrate: %w", err)
	}

	return container, connStr, nil
}

// verifyNoLeaks skips idle keep-alive connections of the docker client.
func verifyNoLeaks(t *testing.T) {
	goleak.VerifyNone(t,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
	)
}

func randomCurrency() currency.Unit {
	var (
		result currency.Unit
		err    error
	)

	for {
		// some short codes are not recognized currencies
		result, err = currency.ParseISO(gofakeit.CurrencyShort())
		if err == nil {
			break
		}
	}

	return result
}

func randomMoney(unit currency.Unit) domain.Money {
	return domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2), unit)
}

func randomProduct(t *testing.T) domain.Product {
	t.Helper()

	p, err := domain.NewProduct(
		gofakeit.ProductName(),
		gofakeit.ProductDescription(),
		randomMoney(randomCurrency()),
		gofakeit.UUID(),
		gofakeit.Number(0, 100),
	)
	require.NoError(t, err)

	return p
}

func randomCart(t *testing.T, userID string, itemCount int) *domain.Cart {
	t.Helper()

	cart, err := domain.NewCart(userID)
	require.NoError(t, err)

	unit := randomCurrency()
	for i := 0; i < itemCount; i++ {
		err := cart.AddItem(uuid.New(), gofakeit.Number(1, 5), randomMoney(unit), gofakeit.ProductName())
		require.NoError(t, err)
	}

	return cart
}

func randomOrder(t *testing.T, userID string) *domain.Order {
	t.Helper()

	items, err := domain.OrderItemsFromCart(randomCart(t, userID, gofakeit.Number(1, 4)))
	require.NoError(t, err)

	order, err := domain.NewOrder(userID, randomAddress(), randomAddress(), items)
	require.NoError(t, err)

	return order
}

func randomAddress() domain.Address {
	a := gofakeit.Address()
	return domain.NewAddress(a.Street, a.City, a.State, a.Zip, a.Country)
}

var stateOpts = cmp.Options{
	cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	}),
	cmp.Comparer(func(x, y decimal.Decimal) bool {
		return x.Equal(y)
	}),
	// Postgres keeps microseconds and returns local time
	cmpopts.EquateApproxTime(time.Millisecond),
	cmpopts.EquateEmpty(),
	cmpopts.IgnoreFields(domain.CartState{}, "Version"),
	cmpopts.IgnoreFields(domain.OrderState{}, "Version"),
	cmpopts.IgnoreFields(domain.Product{}, "Version"),
}

func assertCartState(t *testing.T, expected, actual domain.CartState) {
	t.Helper()

	diff := cmp.Diff(expected, actual, stateOpts)
	assert.Empty(t, diff)
}

func assertOrderState(t *testing.T, expected, actual domain.OrderState) {
	t.Helper()

	diff := cmp.Diff(expected, actual, stateOpts)
	assert.Empty(t, diff)
}

func assertProduct(t *testing.T, expected, actual domain.Product) {
	t.Helper()

	diff := cmp.Diff(expected, actual, stateOpts)
	assert.Empty(t, diff)
}
