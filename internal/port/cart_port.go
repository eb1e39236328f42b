package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type CartRepository interface {
	// GetCart returns domain.ErrCartNotFound when the owner has no cart yet.
	GetCart(ctx context.Context, ownerID string) (domain.Cart, error)
	// GetOrCreateCart relies on the unique owner constraint, concurrent calls converge on one cart.
	GetOrCreateCart(ctx context.Context, ownerID string) (domain.Cart, error)
	// MutateCart locks the owner's cart, applies fn and persists lines and total in one transaction.
	MutateCart(ctx context.Context, ownerID string, fn func(cart *domain.Cart) error) (domain.Cart, error)
}
