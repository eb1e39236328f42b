package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	log "github.com/sirupsen/logrus"
	"golang.org/x/text/currency"
)

// CartService guards every cart operation with the caller identity. All
// mutations go through the repository's locked read-modify-write, so two
// concurrent requests of one user are applied one after another.
type CartService struct {
	carts    port.CartRepository
	products port.ProductReader
	currency currency.Unit
	log      log.FieldLogger
}

func NewCartService(carts port.CartRepository, products port.ProductReader, unit currency.Unit, logger log.FieldLogger) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		currency: unit,
		log:      logger.WithField("component", "cart"),
	}
}

// Get returns an empty cart view for a user who has not added anything yet.
func (s *CartService) Get(ctx context.Context, caller domain.Caller) (domain.Cart, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.carts.GetCart(ctx, caller.ID)
	if errors.Is(err, domain.ErrCartNotFound) {
		return domain.NewCart(caller.ID, s.currency), nil
	}

	return cart, err
}

// AddItem creates the cart on first use. A zero quantity means one.
func (s *CartService) AddItem(ctx context.Context, caller domain.Caller, productID uuid.UUID, quantity int) (domain.Cart, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Cart{}, err
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}

	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	if _, err := s.carts.GetOrCreateCart(ctx, caller.ID); err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.carts.MutateCart(ctx, caller.ID, func(cart *domain.Cart) error {
		_, err := cart.AddItem(product, quantity)
		return err
	})
	if err != nil {
		return domain.Cart{}, err
	}

	s.log.WithFields(log.Fields{
		"owner":    caller.ID,
		"product":  productID,
		"quantity": quantity,
	}).Debug("item added to cart")

	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, caller domain.Caller, itemID uuid.UUID, quantity int) (domain.Cart, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Cart{}, err
	}
	if quantity < 1 {
		return domain.Cart{}, domain.ErrInvalidQuantity
	}

	return s.carts.MutateCart(ctx, caller.ID, func(cart *domain.Cart) error {
		return cart.SetQuantity(itemID, quantity)
	})
}

func (s *CartService) RemoveItem(ctx context.Context, caller domain.Caller, itemID uuid.UUID) (domain.Cart, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Cart{}, err
	}

	return s.carts.MutateCart(ctx, caller.ID, func(cart *domain.Cart) error {
		return cart.RemoveItem(itemID)
	})
}

// Clear returns domain.ErrCartNotFound for a user without a cart, clients
// treat that as an already empty cart.
func (s *CartService) Clear(ctx context.Context, caller domain.Caller) (domain.Cart, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Cart{}, err
	}

	return s.carts.MutateCart(ctx, caller.ID, func(cart *domain.Cart) error {
		cart.Clear()
		return nil
	})
}

func requireCaller(caller domain.Caller) error {
	if caller.ID == "" {
		return domain.Errorf(domain.KindForbidden, "caller is not authenticated")
	}
	return nil
}
