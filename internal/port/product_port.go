package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

// ProductReader is the catalog as seen by the cart and order core.
type ProductReader interface {
	GetProduct(ctx context.Context, id uuid.UUID) (domain.Product, error)
	// GetProducts omits unknown ids from the result.
	GetProducts(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error)
}

type ProductRepository interface {
	ProductReader
	ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	MutateProduct(ctx context.Context, id uuid.UUID, fn func(product *domain.Product) error) (domain.Product, error)
	// DeleteProduct also drops the product from every cart and recomputes their totals.
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}
