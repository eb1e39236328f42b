package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/01_products.up.sql",
			"../migrations/02_carts.up.sql",
			"../migrations/03_orders.up.sql",
			"../migrations/04_contact_messages.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

func randomProduct() domain.Product {
	return domain.Product{
		ID:          uuid.New(),
		Title:       gofakeit.ProductName(),
		Description: gofakeit.ProductDescription(),
		Price:       randomMoney(),
		Image:       gofakeit.URL(),
		Category:    gofakeit.ProductCategory(),
		Available:   true,
	}
}

func randomMoney() domain.Money {
	return domain.Money{
		Amount:   decimal.NewFromFloat(gofakeit.Price(1, 500)).Round(2),
		Currency: currency.INR,
	}
}

func randomShippingAddress() domain.ShippingAddress {
	addr := gofakeit.Address()
	return domain.ShippingAddress{
		House:   addr.Street,
		City:    addr.City,
		State:   addr.State,
		Country: addr.Country,
		PinCode: addr.Zip,
		Contact: gofakeit.Phone(),
	}
}

var currencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

func requireNoDiff(t *testing.T, expected, actual any, opts ...cmp.Option) {
	t.Helper()

	opts = append(opts, currencyComparer)
	diff := cmp.Diff(expected, actual, opts...)
	require.Empty(t, diff)
}
