package service

import (
	"context"
	"strings"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	log "github.com/sirupsen/logrus"
)

type ContactService struct {
	messages port.ContactRepository
	log      log.FieldLogger
}

func NewContactService(messages port.ContactRepository, logger log.FieldLogger) *ContactService {
	return &ContactService{
		messages: messages,
		log:      logger.WithField("component", "contact"),
	}
}

func (s *ContactService) Submit(ctx context.Context, name, email, message string) (domain.ContactMessage, error) {
	msg := domain.ContactMessage{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}
	if err := msg.Validate(); err != nil {
		return domain.ContactMessage{}, err
	}

	created, err := s.messages.CreateMessage(ctx, msg)
	if err != nil {
		return domain.ContactMessage{}, err
	}

	s.log.WithField("message", created.ID).Info("contact message received")

	return created, nil
}

func (s *ContactService) List(ctx context.Context, caller domain.Caller) ([]domain.ContactMessage, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrAdminOnly
	}

	return s.messages.ListMessages(ctx)
}
