package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ContactMessage struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Message string

	CreatedAt time.Time
}

func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" || strings.TrimSpace(m.Email) == "" || strings.TrimSpace(m.Message) == "" {
		return Errorf(KindValidation, "name, email, and message are required")
	}
	if !strings.Contains(m.Email, "@") {
		return Errorf(KindValidation, "email is not valid")
	}
	return nil
}
