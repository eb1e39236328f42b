package repository_test

import (
	"sync"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/text/currency"
)

type cartRepositorySuite struct {
	suite.Suite

	repo     port.CartRepository
	products port.ProductRepository
	pool     *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(cartRepositorySuite))
}

// before all tests in the suite
func (suite *cartRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewCart(suite.pool, currency.INR)
	suite.products = repository.NewProduct(suite.pool)
}

// after all tests in the suite
func (suite *cartRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *cartRepositorySuite) TestGetCart() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		ownerID   string
		setup     bool
		wantErr   error
		wantError string
	}{
		{
			name:    "get existing empty cart: ok",
			ownerID: gofakeit.UUID(),
			setup:   true,
		},
		{
			name:    "get missing cart: not found",
			ownerID: gofakeit.UUID(),
			wantErr: domain.ErrCartNotFound,
		},
		{
			name:      "get cart with empty owner ID: error",
			ownerID:   "",
			wantError: "ownerID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			if tt.setup {
				_, err := suite.repo.GetOrCreateCart(ctx, tt.ownerID)
				require.NoError(t, err)
			}

			cart, err := suite.repo.GetCart(ctx, tt.ownerID)
			switch {
			case tt.wantErr != nil:
				require.ErrorIs(t, err, tt.wantErr)
				return
			case tt.wantError != "":
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.ownerID, cart.OwnerID)
			assert.Empty(t, cart.Items)
			assert.True(t, cart.TotalAmount.Amount.IsZero())
			assert.Equal(t, "INR", cart.TotalAmount.Currency.String())
		})
	}
}

func (suite *cartRepositorySuite) TestGetOrCreateCartIsStable() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	first, err := suite.repo.GetOrCreateCart(ctx, ownerID)
	require.NoError(t, err)

	second, err := suite.repo.GetOrCreateCart(ctx, ownerID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
}

func (suite *cartRepositorySuite) TestMutateCart() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	burger := suite.createProduct("199")
	fries := suite.createProduct("99.50")

	_, err := suite.repo.GetOrCreateCart(ctx, ownerID)
	require.NoError(t, err)

	cart, err := suite.repo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
		if _, err := c.AddItem(burger, 2); err != nil {
			return err
		}
		_, err := c.AddItem(fries, 1)
		return err
	})
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, burger.ID, cart.Items[0].ProductID)
	assert.Equal(t, burger.Title, cart.Items[0].Title)
	assert.Equal(t, burger.Image, cart.Items[0].Image)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.True(t, decimal.RequireFromString("497.50").Equal(cart.TotalAmount.Amount), cart.TotalAmount.String())

	// merging the same product keeps one line
	cart, err = suite.repo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
		_, err := c.AddItem(burger, 1)
		return err
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	fetched, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	requireNoDiff(t, cart, fetched,
		cmpopts.IgnoreFields(domain.Cart{}, "CreatedAt", "UpdatedAt"),
		cmpopts.IgnoreFields(domain.CartItem{}, "CreatedAt"),
	)

	friesLine := cart.Items[1].ID
	cart, err = suite.repo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
		return c.RemoveItem(friesLine)
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.True(t, decimal.RequireFromString("597").Equal(cart.TotalAmount.Amount))

	cart, err = suite.repo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.Amount.IsZero())
}

func (suite *cartRepositorySuite) TestMutateCartRollsBackOnError() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	product := suite.createProduct("150")

	_, err := suite.repo.GetOrCreateCart(ctx, ownerID)
	require.NoError(t, err)

	_, err = suite.repo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
		if _, err := c.AddItem(product, 1); err != nil {
			return err
		}
		return domain.ErrCartItemNotFound
	})
	require.ErrorIs(t, err, domain.ErrCartItemNotFound)

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func (suite *cartRepositorySuite) TestMutateCartWithoutCart() {
	defer suite.deleteAll()

	t := suite.T()

	_, err := suite.repo.MutateCart(t.Context(), gofakeit.UUID(), func(*domain.Cart) error { return nil })
	require.ErrorIs(t, err, domain.ErrCartNotFound)

	_, err = suite.repo.MutateCart(t.Context(), "", func(*domain.Cart) error { return nil })
	require.EqualError(t, err, "ownerID is empty")
}

func (suite *cartRepositorySuite) TestConcurrentMutationsAreSerialized() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	product := suite.createProduct("10")

	_, err := suite.repo.GetOrCreateCart(ctx, ownerID)
	require.NoError(t, err)

	const workers = 10

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.repo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
				_, err := c.AddItem(product, 1)
				return err
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, workers, cart.Items[0].Quantity)
	assert.True(t, decimal.NewFromInt(10*workers).Equal(cart.TotalAmount.Amount))
}

func (suite *cartRepositorySuite) TestMutateCartWithUnknownProduct() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()

	_, err := suite.repo.GetOrCreateCart(ctx, ownerID)
	require.NoError(t, err)

	unsaved := randomProduct()
	_, err = suite.repo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
		_, err := c.AddItem(unsaved, 1)
		return err
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	cart, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.TotalAmount.Amount.IsZero())
}

func (suite *cartRepositorySuite) TestDeleteProductDropsCartLines() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	alice := gofakeit.UUID()
	bob := gofakeit.UUID()

	burger := suite.createProduct("199")
	fries := suite.createProduct("99.50")

	for _, ownerID := range []string{alice, bob} {
		_, err := suite.repo.GetOrCreateCart(ctx, ownerID)
		require.NoError(t, err)
	}

	_, err := suite.repo.MutateCart(ctx, alice, func(c *domain.Cart) error {
		if _, err := c.AddItem(burger, 2); err != nil {
			return err
		}
		_, err := c.AddItem(fries, 1)
		return err
	})
	require.NoError(t, err)

	_, err = suite.repo.MutateCart(ctx, bob, func(c *domain.Cart) error {
		_, err := c.AddItem(burger, 1)
		return err
	})
	require.NoError(t, err)

	require.NoError(t, suite.products.DeleteProduct(ctx, burger.ID))

	aliceCart, err := suite.repo.GetCart(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceCart.Items, 1)
	assert.Equal(t, fries.ID, aliceCart.Items[0].ProductID)
	assert.True(t, decimal.RequireFromString("99.50").Equal(aliceCart.TotalAmount.Amount), aliceCart.TotalAmount.String())

	bobCart, err := suite.repo.GetCart(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobCart.Items)
	assert.True(t, bobCart.TotalAmount.Amount.IsZero())

	_, err = suite.products.GetProduct(ctx, burger.ID)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	err = suite.products.DeleteProduct(ctx, burger.ID)
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func (suite *cartRepositorySuite) TestNewCartWithTxRollsBack() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := t.Context()
	ownerID := gofakeit.UUID()
	burger := suite.createProduct("199")

	_, err := suite.repo.GetOrCreateCart(ctx, ownerID)
	require.NoError(t, err)

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	txRepo := repository.NewCartWithTx(tx, currency.INR)

	cart, err := txRepo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
		_, err := c.AddItem(burger, 3)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 3, cart.Count())

	// the savepoint of a failed mutation is rolled back, the outer tx survives
	_, err = txRepo.MutateCart(ctx, ownerID, func(c *domain.Cart) error {
		c.Clear()
		return domain.ErrCartItemNotFound
	})
	require.ErrorIs(t, err, domain.ErrCartItemNotFound)

	inTx, err := txRepo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Equal(t, 3, inTx.Count())

	require.NoError(t, tx.Rollback(ctx))

	stored, err := suite.repo.GetCart(ctx, ownerID)
	require.NoError(t, err)
	assert.Empty(t, stored.Items)
}

func (suite *cartRepositorySuite) createProduct(price string) domain.Product {
	product := randomProduct()
	product.Price = domain.NewMoney(decimal.RequireFromString(price), currency.INR)

	created, err := suite.products.CreateProduct(suite.T().Context(), product)
	suite.Require().NoError(err)

	return created
}

func (suite *cartRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE carts, cart_items, products CASCADE")
	suite.NoError(err)
}
