package transport_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/transport"
)

var (
	_ transport.CartService    = &fakeCarts{}
	_ transport.OrderService   = &fakeOrders{}
	_ transport.CatalogService = &fakeCatalog{}
	_ transport.ContactService = &fakeContact{}
)

type fakeCarts struct {
	cart    domain.Cart
	err     error
	caller  domain.Caller
	product uuid.UUID
	qty     int
}

func (f *fakeCarts) Get(_ context.Context, caller domain.Caller) (domain.Cart, error) {
	f.caller = caller
	return f.cart, f.err
}

func (f *fakeCarts) AddItem(_ context.Context, caller domain.Caller, productID uuid.UUID, quantity int) (domain.Cart, error) {
	f.caller, f.product, f.qty = caller, productID, quantity
	return f.cart, f.err
}

func (f *fakeCarts) UpdateItem(_ context.Context, caller domain.Caller, _ uuid.UUID, quantity int) (domain.Cart, error) {
	f.caller, f.qty = caller, quantity
	return f.cart, f.err
}

func (f *fakeCarts) RemoveItem(_ context.Context, caller domain.Caller, _ uuid.UUID) (domain.Cart, error) {
	f.caller = caller
	return f.cart, f.err
}

func (f *fakeCarts) Clear(_ context.Context, caller domain.Caller) (domain.Cart, error) {
	f.caller = caller
	return f.cart, f.err
}

type fakeOrders struct {
	order  domain.Order
	orders []domain.Order
	err    error
	placed domain.PlaceOrder
	key    string
	filter domain.OrderFilter
	status domain.OrderStatus
}

func (f *fakeOrders) Place(_ context.Context, _ domain.Caller, req domain.PlaceOrder, key string) (domain.Order, error) {
	f.placed, f.key = req, key
	return f.order, f.err
}

func (f *fakeOrders) List(_ context.Context, _ domain.Caller, filter domain.OrderFilter) ([]domain.Order, error) {
	f.filter = filter
	return f.orders, f.err
}

func (f *fakeOrders) Get(context.Context, domain.Caller, uuid.UUID) (domain.Order, error) {
	return f.order, f.err
}

func (f *fakeOrders) UpdateStatus(_ context.Context, _ domain.Caller, _ uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	f.status = status
	return f.order, f.err
}

func (f *fakeOrders) Cancel(context.Context, domain.Caller, uuid.UUID) (domain.Order, error) {
	return f.order, f.err
}

type fakeCatalog struct {
	products []domain.Product
	err      error
	created  service.NewProduct
	filter   domain.ProductFilter
	deleted  uuid.UUID
}

func (f *fakeCatalog) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	f.filter = filter
	return f.products, f.err
}

func (f *fakeCatalog) Get(context.Context, uuid.UUID) (domain.Product, error) {
	if len(f.products) == 0 {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return f.products[0], f.err
}

func (f *fakeCatalog) Create(_ context.Context, caller domain.Caller, in service.NewProduct) (domain.Product, error) {
	if !caller.IsAdmin() {
		return domain.Product{}, domain.ErrAdminOnly
	}
	f.created = in
	return domain.Product{ID: uuid.New(), Title: in.Title, Price: in.Price}, f.err
}

func (f *fakeCatalog) Update(_ context.Context, caller domain.Caller, _ uuid.UUID, _ domain.ProductPatch) (domain.Product, error) {
	if !caller.IsAdmin() {
		return domain.Product{}, domain.ErrAdminOnly
	}
	return domain.Product{}, f.err
}

func (f *fakeCatalog) Delete(_ context.Context, caller domain.Caller, id uuid.UUID) error {
	if !caller.IsAdmin() {
		return domain.ErrAdminOnly
	}
	if f.err != nil {
		return f.err
	}
	f.deleted = id
	return nil
}

type fakeContact struct {
	messages []domain.ContactMessage
	err      error
}

func (f *fakeContact) Submit(_ context.Context, name, email, message string) (domain.ContactMessage, error) {
	msg := domain.ContactMessage{ID: uuid.New(), Name: name, Email: email, Message: message}
	if err := msg.Validate(); err != nil {
		return domain.ContactMessage{}, err
	}
	return msg, f.err
}

func (f *fakeContact) List(_ context.Context, caller domain.Caller) ([]domain.ContactMessage, error) {
	if !caller.IsAdmin() {
		return nil, domain.ErrAdminOnly
	}
	return f.messages, f.err
}
