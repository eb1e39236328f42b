package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uuid.UUID
	Title       string
	Description string
	Price       Money
	Image       string
	Category    string
	Available   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ProductFilter struct {
	Category  string
	Available *bool
}

// ProductPatch carries the fields an administrator changes; nil means unchanged.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *decimal.Decimal
	Image       *string
	Category    *string
	Available   *bool
}

func (p Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Title) == "":
		return Errorf(KindValidation, "product title is required")
	case strings.TrimSpace(p.Image) == "":
		return Errorf(KindValidation, "product image is required")
	case !p.Price.Amount.IsPositive():
		return Errorf(KindValidation, "product price must be positive")
	case !p.Price.Amount.Equal(p.Price.Amount.Round(2)):
		return Errorf(KindValidation, "product price must have at most 2 decimal places")
	}
	return nil
}

func (p *Product) Apply(patch ProductPatch) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price.Amount = *patch.Price
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Available != nil {
		p.Available = *patch.Available
	}
}
