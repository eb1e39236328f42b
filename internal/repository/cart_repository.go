package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

type cartRepository struct {
	q        *db.Queries
	tx       txBeginner
	currency currency.Unit
}

// NewCart stores carts in Postgres, newly created carts use unit as their currency.
func NewCart(pool *pgxpool.Pool, unit currency.Unit) port.CartRepository {
	return &cartRepository{
		q:        db.New(pool),
		tx:       pool,
		currency: unit,
	}
}

func NewCartWithTx(tx pgx.Tx, unit currency.Unit) port.CartRepository {
	return &cartRepository{
		q:        db.New(tx),
		tx:       tx, // nested transactions become savepoints
		currency: unit,
	}
}

func (r *cartRepository) GetCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	dbCart, err := r.q.GetCartByOwner(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCartByOwner: %w", err)
	}

	return loadCart(ctx, r.q, dbCart)
}

func (r *cartRepository) GetOrCreateCart(ctx context.Context, ownerID string) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	dbCart, err := r.q.UpsertCart(ctx, db.UpsertCartParams{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		TotalCurrency: r.currency.String(),
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.UpsertCart: %w", err)
	}

	return loadCart(ctx, r.q, dbCart)
}

func (r *cartRepository) MutateCart(ctx context.Context, ownerID string, fn func(cart *domain.Cart) error) (domain.Cart, error) {
	if ownerID == "" {
		return domain.Cart{}, fmt.Errorf("ownerID is empty")
	}

	return withTx(ctx, r.tx, func(q *db.Queries) (domain.Cart, error) {
		dbCart, err := q.GetCartByOwnerForUpdate(ctx, ownerID)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Cart{}, domain.ErrCartNotFound
		}
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.GetCartByOwnerForUpdate: %w", err)
		}

		cart, err := loadCart(ctx, q, dbCart)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("loadCart: %w", err)
		}

		if err := fn(&cart); err != nil {
			return domain.Cart{}, err
		}

		if err := saveCart(ctx, q, cart); err != nil {
			return domain.Cart{}, fmt.Errorf("saveCart: %w", err)
		}

		dbCart, err = q.GetCartByOwner(ctx, ownerID)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("q.GetCartByOwner: %w", err)
		}

		return loadCart(ctx, q, dbCart)
	})
}

// saveCart replaces the stored lines with the aggregate's lines and writes the
// total recomputed by the aggregate, under the row lock taken by the caller.
func saveCart(ctx context.Context, q *db.Queries, cart domain.Cart) error {
	if _, err := q.DeleteCartItems(ctx, cart.ID); err != nil {
		return fmt.Errorf("q.DeleteCartItems: %w", err)
	}

	now := time.Now().UTC()
	for _, item := range cart.Items {
		createdAt := item.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}

		err := q.InsertCartItem(ctx, db.InsertCartItemParams{
			ID:            item.ID,
			CartID:        cart.ID,
			ProductID:     item.ProductID,
			Quantity:      int32(item.Quantity),
			PriceAmount:   item.Price.Amount,
			PriceCurrency: item.Price.Currency.String(),
			CreatedAt:     createdAt,
		})
		if isForeignKeyViolation(err, "cart_items_product_id_fkey") {
			return fmt.Errorf("product %s: %w", item.ProductID, domain.ErrProductNotFound)
		}
		if err != nil {
			return fmt.Errorf("q.InsertCartItem: %w", err)
		}
	}

	err := q.UpdateCartTotal(ctx, db.UpdateCartTotalParams{
		ID:          cart.ID,
		TotalAmount: cart.TotalAmount.Amount,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateCartTotal: %w", err)
	}

	return nil
}

func loadCart(ctx context.Context, q *db.Queries, dbCart db.Cart) (domain.Cart, error) {
	rows, err := q.GetCartItems(ctx, dbCart.ID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("q.GetCartItems: %w", err)
	}

	items, err := mapGetCartItemsRowsToDomain(rows)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("mapGetCartItemsRowsToDomain: %w", err)
	}

	unit, err := domain.ParseCurrency(dbCart.TotalCurrency)
	if err != nil {
		return domain.Cart{}, err
	}

	return domain.Cart{
		ID:          dbCart.ID,
		OwnerID:     dbCart.OwnerID,
		Items:       items,
		TotalAmount: domain.NewMoney(dbCart.TotalAmount, unit),
		CreatedAt:   dbCart.CreatedAt,
		UpdatedAt:   dbCart.UpdatedAt,
	}, nil
}

func mapGetCartItemsRowToDomain(row db.GetCartItemsRow) (domain.CartItem, error) {
	parsedCurrency, err := domain.ParseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.CartItem{}, err
	}

	return domain.CartItem{
		ID:        row.ID,
		ProductID: row.ProductID,
		Quantity:  int(row.Quantity),
		Price:     domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Title:     row.Title,
		Image:     row.Image,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapGetCartItemsRowsToDomain(rows []db.GetCartItemsRow) ([]domain.CartItem, error) {
	var items []domain.CartItem

	for _, row := range rows {
		item, err := mapGetCartItemsRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapGetCartItemsRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
