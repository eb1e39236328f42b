package client

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

var ErrEmptyCart = errors.New("cart is empty")

// Store is the client-side projection of the server state. The server is the
// source of truth: the cached cart is replaced by every successful response
// and never advanced ahead of it.
type Store struct {
	api     *API
	pricing domain.Pricing

	mu       sync.Mutex
	products []Product
	cart     []CartLine
	orders   []Order
	shipping ShippingAddress
	lastErr  string
}

func NewStore(api *API, pricing domain.Pricing) *Store {
	return &Store{api: api, pricing: pricing}
}

func (s *Store) FetchProducts(ctx context.Context) error {
	products, err := s.api.Products(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.products = products
	s.mu.Unlock()

	return nil
}

func (s *Store) FetchCart(ctx context.Context) error {
	cart, err := s.api.Cart(ctx)
	if err != nil {
		return s.fail(err)
	}
	s.setCart(cart.Items)
	return nil
}

func (s *Store) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) error {
	cart, err := s.api.AddToCart(ctx, productID, quantity)
	if err != nil {
		return s.fail(err)
	}
	s.setCart(cart.Items)
	return nil
}

func (s *Store) UpdateCartItem(ctx context.Context, itemID uuid.UUID, quantity int) error {
	cart, err := s.api.UpdateCartItem(ctx, itemID, quantity)
	if err != nil {
		return s.fail(err)
	}
	s.setCart(cart.Items)
	return nil
}

func (s *Store) RemoveCartItem(ctx context.Context, itemID uuid.UUID) error {
	cart, err := s.api.RemoveCartItem(ctx, itemID)
	if err != nil {
		return s.fail(err)
	}
	s.setCart(cart.Items)
	return nil
}

// ClearCart treats a missing cart on the server as an already empty one.
func (s *Store) ClearCart(ctx context.Context) error {
	cart, err := s.api.ClearCart(ctx)

	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound:
		s.setCart(nil)
		return nil
	case err != nil:
		return s.fail(err)
	}

	s.setCart(cart.Items)
	return nil
}

func (s *Store) FetchOrders(ctx context.Context) error {
	orders, err := s.api.Orders(ctx)
	if err != nil {
		return s.fail(err)
	}

	s.mu.Lock()
	s.orders = orders
	s.mu.Unlock()

	return nil
}

// Order serves a cached order and falls back to the server.
func (s *Store) Order(ctx context.Context, id uuid.UUID) (Order, error) {
	s.mu.Lock()
	for _, o := range s.orders {
		if o.ID == id {
			s.mu.Unlock()
			return o, nil
		}
	}
	s.mu.Unlock()

	order, err := s.api.Order(ctx, id)
	if err != nil {
		return Order{}, s.fail(err)
	}
	return order, nil
}

// PlaceOrder checks out the cached cart. shipping overrides the stored draft
// when not nil. A failure to clear the cart afterwards is recorded in
// LastError and does not fail the placed order.
func (s *Store) PlaceOrder(ctx context.Context, shipping *ShippingAddress, idempotencyKey string) (Order, error) {
	s.mu.Lock()
	lines := make([]PlaceOrderLine, 0, len(s.cart))
	for _, item := range s.cart {
		lines = append(lines, PlaceOrderLine{Product: item.ProductID, Quantity: item.Quantity})
	}
	addr := s.shipping
	s.mu.Unlock()

	if len(lines) == 0 {
		return Order{}, s.fail(ErrEmptyCart)
	}
	if shipping != nil {
		addr = *shipping
	}

	order, err := s.api.PlaceOrder(ctx, PlaceOrderRequest{Items: lines, ShippingAddress: addr}, idempotencyKey)
	if err != nil {
		return Order{}, s.fail(err)
	}

	s.mu.Lock()
	s.orders = append([]Order{order}, s.orders...)
	s.mu.Unlock()

	// best-effort, a failed clear is already recorded in LastError
	_ = s.ClearCart(ctx)

	return order, nil
}

// CancelOrder replaces the cached order with the server's answer. A refused
// cancellation leaves the cache untouched.
func (s *Store) CancelOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	order, err := s.api.CancelOrder(ctx, id)
	if err != nil {
		return Order{}, s.fail(err)
	}

	s.mu.Lock()
	for i := range s.orders {
		if s.orders[i].ID == order.ID {
			s.orders[i] = order
		}
	}
	s.mu.Unlock()

	return order, nil
}

// SetShipping merges the non-empty fields into the shipping draft.
func (s *Store) SetShipping(addr ShippingAddress) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merge := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	merge(&s.shipping.House, addr.House)
	merge(&s.shipping.City, addr.City)
	merge(&s.shipping.State, addr.State)
	merge(&s.shipping.Country, addr.Country)
	merge(&s.shipping.PinCode, addr.PinCode)
	merge(&s.shipping.Contact, addr.Contact)
}

func (s *Store) Shipping() ShippingAddress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shipping
}

func (s *Store) Products() []Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Product(nil), s.products...)
}

func (s *Store) CartItems() []CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CartLine(nil), s.cart...)
}

func (s *Store) Orders() []Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Order(nil), s.orders...)
}

// Totals previews the amount of the cached cart with the server's pricing
// rules; an empty cart has no shipping.
func (s *Store) Totals() domain.Amount {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]domain.PricedQuantity, 0, len(s.cart))
	for _, item := range s.cart {
		lines = append(lines, domain.PricedQuantity{Price: item.Price, Quantity: item.Quantity})
	}
	return s.pricing.Compute(lines)
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for _, item := range s.cart {
		n += item.Quantity
	}
	return n
}

func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Reset drops everything cached for the signed-in user. The catalog is kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.orders = nil
	s.shipping = ShippingAddress{}
	s.lastErr = ""
}

func (s *Store) setCart(items []CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = items
}

func (s *Store) fail(err error) error {
	message := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		message = apiErr.Message
	}

	s.mu.Lock()
	s.lastErr = message
	s.mu.Unlock()

	return err
}
