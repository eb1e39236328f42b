package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type productRepository struct {
	q  *db.Queries
	tx txBeginner
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{
		q:  db.New(pool),
		tx: pool,
	}
}

func (r *productRepository) GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	result := make(map[uuid.UUID]domain.Product, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	rows, err := r.q.GetProductsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.GetProductsByIDs: %w", err)
	}

	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		result[product.ID] = product
	}

	return result, nil
}

func (r *productRepository) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	params := db.ListProductsParams{Available: filter.Available}
	if filter.Category != "" {
		params.Category = &filter.Category
	}

	rows, err := r.q.ListProducts(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}

	row, err := r.q.CreateProduct(ctx, db.CreateProductParams{
		ID:            product.ID,
		Title:         product.Title,
		Description:   product.Description,
		PriceAmount:   product.Price.Amount,
		PriceCurrency: product.Price.Currency.String(),
		Image:         product.Image,
		Category:      product.Category,
		Available:     product.Available,
	})
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.CreateProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) MutateProduct(ctx context.Context, id uuid.UUID, fn func(product *domain.Product) error) (domain.Product, error) {
	return withTx(ctx, r.tx, func(q *db.Queries) (domain.Product, error) {
		row, err := q.GetProductForUpdate(ctx, id)
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		if err != nil {
			return domain.Product{}, fmt.Errorf("q.GetProductForUpdate: %w", err)
		}

		product, err := mapProductToDomain(row)
		if err != nil {
			return domain.Product{}, fmt.Errorf("mapProductToDomain: %w", err)
		}

		if err := fn(&product); err != nil {
			return domain.Product{}, err
		}

		row, err = q.UpdateProduct(ctx, db.UpdateProductParams{
			ID:          product.ID,
			Title:       product.Title,
			Description: product.Description,
			PriceAmount: product.Price.Amount,
			Image:       product.Image,
			Category:    product.Category,
			Available:   product.Available,
		})
		if err != nil {
			return domain.Product{}, fmt.Errorf("q.UpdateProduct: %w", err)
		}

		return mapProductToDomain(row)
	})
}

func (r *productRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	_, err := withTx(ctx, r.tx, func(q *db.Queries) (struct{}, error) {
		cartIDs, err := q.LockCartsByProduct(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("q.LockCartsByProduct: %w", err)
		}

		if _, err := q.DeleteCartItemsByProduct(ctx, id); err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteCartItemsByProduct: %w", err)
		}

		for _, cartID := range cartIDs {
			if err := q.RecalculateCartTotal(ctx, cartID); err != nil {
				return struct{}{}, fmt.Errorf("q.RecalculateCartTotal: %w", err)
			}
		}

		deleted, err := q.DeleteProduct(ctx, id)
		if err != nil {
			return struct{}{}, fmt.Errorf("q.DeleteProduct: %w", err)
		}
		if deleted == 0 {
			return struct{}{}, domain.ErrProductNotFound
		}

		return struct{}{}, nil
	})

	return err
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	parsedCurrency, err := domain.ParseCurrency(row.PriceCurrency)
	if err != nil {
		return domain.Product{}, err
	}

	return domain.Product{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Price:       domain.Money{Amount: row.PriceAmount, Currency: parsedCurrency},
		Image:       row.Image,
		Category:    row.Category,
		Available:   row.Available,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}, nil
}
