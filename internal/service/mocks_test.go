package service_test

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"golang.org/x/text/currency"
)

var (
	_ port.CartRepository    = &mockCartRepository{}
	_ port.ProductRepository = &mockProductRepository{}
	_ port.OrderRepository   = &mockOrderRepository{}
	_ port.ContactRepository = &mockContactRepository{}
	_ port.IdempotencyStore  = &mockIdempotencyStore{}
)

type mockCartRepository struct {
	mu    sync.Mutex
	store map[string]domain.Cart
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{store: make(map[string]domain.Cart)}
}

func (m *mockCartRepository) GetCart(_ context.Context, ownerID string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.store[ownerID]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func (m *mockCartRepository) GetOrCreateCart(_ context.Context, ownerID string) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.store[ownerID]
	if !ok {
		cart = domain.NewCart(ownerID, currency.INR)
		cart.ID = uuid.New()
		m.store[ownerID] = cart
	}
	return cloneCart(cart), nil
}

func (m *mockCartRepository) MutateCart(_ context.Context, ownerID string, fn func(cart *domain.Cart) error) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.store[ownerID]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}

	cart = cloneCart(cart)
	if err := fn(&cart); err != nil {
		return domain.Cart{}, err
	}
	m.store[ownerID] = cart

	return cloneCart(cart), nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	cart.Items = append([]domain.CartItem(nil), cart.Items...)
	return cart
}

type mockProductRepository struct {
	store map[uuid.UUID]domain.Product
}

func newMockProductRepository(products ...domain.Product) *mockProductRepository {
	m := &mockProductRepository{store: make(map[uuid.UUID]domain.Product)}
	for _, p := range products {
		m.store[p.ID] = p
	}
	return m
}

func (m *mockProductRepository) GetProduct(_ context.Context, id uuid.UUID) (domain.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

func (m *mockProductRepository) GetProducts(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]domain.Product, error) {
	result := make(map[uuid.UUID]domain.Product)
	for _, id := range ids {
		if p, ok := m.store[id]; ok {
			result[id] = p
		}
	}
	return result, nil
}

func (m *mockProductRepository) ListProducts(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	var result []domain.Product
	for _, p := range m.store {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Available != nil && p.Available != *filter.Available {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (m *mockProductRepository) CreateProduct(_ context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	m.store[product.ID] = product
	return product, nil
}

func (m *mockProductRepository) MutateProduct(_ context.Context, id uuid.UUID, fn func(product *domain.Product) error) (domain.Product, error) {
	p, ok := m.store[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	if err := fn(&p); err != nil {
		return domain.Product{}, err
	}
	m.store[id] = p
	return p, nil
}

func (m *mockProductRepository) DeleteProduct(_ context.Context, id uuid.UUID) error {
	if _, ok := m.store[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(m.store, id)
	return nil
}

type mockOrderRepository struct {
	store map[uuid.UUID]domain.Order
	// takenNumbers makes CreateOrder fail with ErrOrderNumberTaken that many times.
	takenNumbers int
	createErr    error
}

func newMockOrderRepository() *mockOrderRepository {
	return &mockOrderRepository{store: make(map[uuid.UUID]domain.Order)}
}

func (m *mockOrderRepository) CreateOrder(_ context.Context, order domain.Order) (domain.Order, error) {
	if m.createErr != nil {
		return domain.Order{}, m.createErr
	}
	if m.takenNumbers > 0 {
		m.takenNumbers--
		return domain.Order{}, domain.ErrOrderNumberTaken
	}
	if _, exists := m.store[order.ID]; exists {
		return domain.Order{}, errors.New("order with this ID already exists")
	}
	m.store[order.ID] = order
	return order, nil
}

func (m *mockOrderRepository) GetOrder(_ context.Context, id uuid.UUID) (domain.Order, error) {
	o, ok := m.store[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return o, nil
}

func (m *mockOrderRepository) ListOrders(_ context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	result := []domain.Order{}
	for _, o := range m.store {
		if filter.OwnerID != "" && o.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (m *mockOrderRepository) MutateOrder(_ context.Context, id uuid.UUID, fn func(order *domain.Order) error) (domain.Order, error) {
	o, ok := m.store[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err := fn(&o); err != nil {
		return domain.Order{}, err
	}
	m.store[id] = o
	return o, nil
}

type mockContactRepository struct {
	messages []domain.ContactMessage
}

func (m *mockContactRepository) CreateMessage(_ context.Context, msg domain.ContactMessage) (domain.ContactMessage, error) {
	msg.ID = uuid.New()
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *mockContactRepository) ListMessages(context.Context) ([]domain.ContactMessage, error) {
	return m.messages, nil
}

type mockIdempotencyStore struct {
	keys map[string]bool
	err  error
}

func (m *mockIdempotencyStore) Acquire(_ context.Context, key string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *mockIdempotencyStore) Release(_ context.Context, key string) error {
	delete(m.keys, key)
	return nil
}

type failingCartClearer struct {
	calls int
}

func (f *failingCartClearer) Clear(context.Context, domain.Caller) (domain.Cart, error) {
	f.calls++
	return domain.Cart{}, errors.New("database is down")
}
