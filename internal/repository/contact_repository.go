package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type contactRepository struct {
	q *db.Queries
}

func NewContact(pool *pgxpool.Pool) port.ContactRepository {
	return &contactRepository{q: db.New(pool)}
}

func (r *contactRepository) CreateMessage(ctx context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	row, err := r.q.CreateContactMessage(ctx, db.CreateContactMessageParams{
		ID:      uuid.New(),
		Name:    msg.Name,
		Email:   msg.Email,
		Message: msg.Message,
	})
	if err != nil {
		return domain.ContactMessage{}, fmt.Errorf("q.CreateContactMessage: %w", err)
	}

	return mapContactMessageToDomain(row), nil
}

func (r *contactRepository) ListMessages(ctx context.Context) ([]domain.ContactMessage, error) {
	rows, err := r.q.ListContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListContactMessages: %w", err)
	}

	messages := make([]domain.ContactMessage, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, mapContactMessageToDomain(row))
	}

	return messages, nil
}

func mapContactMessageToDomain(row db.ContactMessage) domain.ContactMessage {
	return domain.ContactMessage{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Message:   row.Message,
		CreatedAt: row.CreatedAt,
	}
}
