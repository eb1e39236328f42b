package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type ContactRepository interface {
	CreateMessage(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error)
	ListMessages(ctx context.Context) ([]domain.ContactMessage, error)
}
