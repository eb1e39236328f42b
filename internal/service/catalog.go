package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

type NewProduct struct {
	Title       string
	Description string
	Price       domain.Money
	Image       string
	Category    string
	Available   bool
}

type CatalogService struct {
	products port.ProductRepository
	currency currency.Unit
	log      log.FieldLogger
}

func NewCatalogService(products port.ProductRepository, unit currency.Unit, logger log.FieldLogger) *CatalogService {
	return &CatalogService{
		products: products,
		currency: unit,
		log:      logger.WithField("component", "catalog"),
	}
}

func (s *CatalogService) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	return s.products.ListProducts(ctx, filter)
}

func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

// Create prices the product in the shop currency unless one is given.
func (s *CatalogService) Create(ctx context.Context, caller domain.Caller, in NewProduct) (domain.Product, error) {
	if !caller.IsAdmin() {
		return domain.Product{}, domain.ErrAdminOnly
	}

	price := in.Price
	if price.Currency == (currency.Unit{}) {
		price.Currency = s.currency
	}
	if price.Currency != s.currency {
		return domain.Product{}, domain.ErrCurrencyMismatch
	}

	product := domain.Product{
		Title:       in.Title,
		Description: in.Description,
		Price:       price,
		Image:       in.Image,
		Category:    in.Category,
		Available:   in.Available,
	}
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}

	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return domain.Product{}, err
	}

	s.log.WithFields(log.Fields{"product": created.ID, "title": created.Title}).Info("product created")

	return created, nil
}

// Update changes the live catalog only, placed orders keep their snapshot.
func (s *CatalogService) Update(ctx context.Context, caller domain.Caller, id uuid.UUID, patch domain.ProductPatch) (domain.Product, error) {
	if !caller.IsAdmin() {
		return domain.Product{}, domain.ErrAdminOnly
	}

	return s.products.MutateProduct(ctx, id, func(product *domain.Product) error {
		product.Apply(patch)
		return product.Validate()
	})
}

// Delete removes the product from the catalog and from every cart holding it.
// Placed orders keep their snapshot.
func (s *CatalogService) Delete(ctx context.Context, caller domain.Caller, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return domain.ErrAdminOnly
	}

	if err := s.products.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.log.WithField("product", id).Info("product deleted")

	return nil
}
