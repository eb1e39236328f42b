package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderRepository interface {
	// CreateOrder returns domain.ErrOrderNumberTaken when the order number collides.
	CreateOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (domain.Order, error)
	ListOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)
	MutateOrder(ctx context.Context, id uuid.UUID, fn func(order *domain.Order) error) (domain.Order, error)
}

// IdempotencyStore remembers keys for a limited time.
type IdempotencyStore interface {
	// Acquire returns false when the key was already taken.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
