package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	log "github.com/sirupsen/logrus"
)

const orderNumberAttempts = 3

// CartClearer empties the placing user's cart after checkout.
type CartClearer interface {
	Clear(ctx context.Context, caller domain.Caller) (domain.Cart, error)
}

type OrderService struct {
	orders      port.OrderRepository
	products    port.ProductReader
	carts       CartClearer
	idempotency port.IdempotencyStore
	pricing     domain.Pricing
	now         func() time.Time
	log         log.FieldLogger
}

type OrderOption func(s *OrderService)

// WithIdempotency enables duplicate checkout detection by Idempotency-Key.
func WithIdempotency(store port.IdempotencyStore) OrderOption {
	return func(s *OrderService) {
		s.idempotency = store
	}
}

func WithClock(now func() time.Time) OrderOption {
	return func(s *OrderService) {
		s.now = now
	}
}

func NewOrderService(
	orders port.OrderRepository,
	products port.ProductReader,
	carts CartClearer,
	pricing domain.Pricing,
	logger log.FieldLogger,
	opts ...OrderOption,
) *OrderService {
	s := &OrderService{
		orders:   orders,
		products: products,
		carts:    carts,
		pricing:  pricing,
		now:      func() time.Time { return time.Now().UTC() },
		log:      logger.WithField("component", "order"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place snapshots the referenced products, prices the order on the server and
// stores it as Processing/Pending. The caller's cart is cleared afterwards on a
// best-effort basis: a failed clear is logged and the order stands.
func (s *OrderService) Place(ctx context.Context, caller domain.Caller, req domain.PlaceOrder, idempotencyKey string) (domain.Order, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Order{}, err
	}

	req, err := req.Normalize()
	if err != nil {
		return domain.Order{}, err
	}

	items, err := s.snapshot(ctx, req.Items)
	if err != nil {
		return domain.Order{}, err
	}

	key, err := s.acquire(ctx, caller, idempotencyKey)
	if err != nil {
		return domain.Order{}, err
	}

	lines := make([]domain.PricedQuantity, len(items))
	for i, item := range items {
		lines[i] = domain.PricedQuantity{Price: item.Price.Amount, Quantity: item.Quantity}
	}

	now := s.now()
	order := domain.Order{
		ID:              uuid.New(),
		OwnerID:         caller.ID,
		Items:           items,
		ShippingAddress: req.ShippingAddress,
		Amount:          s.pricing.Compute(lines),
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   domain.PaymentStatusPending,
		Status:          domain.OrderStatusProcessing,
	}

	created, err := s.create(ctx, order, now)
	if err != nil {
		// nothing was stored, a retry with the same key must go through
		s.release(ctx, key)
		return domain.Order{}, err
	}

	logger := s.log.WithFields(log.Fields{
		"owner": caller.ID,
		"order": created.Number,
		"total": created.Amount.Total.StringFixed(2),
	})
	logger.Info("order placed")

	if _, err := s.carts.Clear(ctx, caller); err != nil && !errors.Is(err, domain.ErrCartNotFound) {
		logger.WithError(err).Warn("failed to clear cart after order placement")
	}

	return created, nil
}

// List shows users their own orders; administrators see everything and may
// narrow by status and owner.
func (s *OrderService) List(ctx context.Context, caller domain.Caller, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	if !caller.IsAdmin() {
		filter = domain.OrderFilter{OwnerID: caller.ID}
	}

	return s.orders.ListOrders(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (domain.Order, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.GetOrder(ctx, id)
	if err != nil {
		return domain.Order{}, err
	}

	if !caller.CanAccess(order.OwnerID) {
		return domain.Order{}, domain.ErrForbidden
	}

	return order, nil
}

// UpdateStatus lets an administrator write any status.
func (s *OrderService) UpdateStatus(ctx context.Context, caller domain.Caller, id uuid.UUID, status domain.OrderStatus) (domain.Order, error) {
	if !caller.IsAdmin() {
		return domain.Order{}, domain.ErrAdminOnly
	}
	if _, err := domain.ParseOrderStatus(string(status)); err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.MutateOrder(ctx, id, func(order *domain.Order) error {
		order.SetStatus(status, s.now())
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.log.WithFields(log.Fields{"order": order.Number, "status": order.Status}).Info("order status updated")

	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, caller domain.Caller, id uuid.UUID) (domain.Order, error) {
	if err := requireCaller(caller); err != nil {
		return domain.Order{}, err
	}

	order, err := s.orders.MutateOrder(ctx, id, func(order *domain.Order) error {
		return order.Cancel(caller, s.now())
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.log.WithFields(log.Fields{"order": order.Number, "by": caller.ID}).Info("order cancelled")

	return order, nil
}

func (s *OrderService) create(ctx context.Context, order domain.Order, now time.Time) (domain.Order, error) {
	for attempt := 1; ; attempt++ {
		order.Number = domain.NewOrderNumber(now)

		created, err := s.orders.CreateOrder(ctx, order)
		if errors.Is(err, domain.ErrOrderNumberTaken) && attempt < orderNumberAttempts {
			continue
		}
		return created, err
	}
}

// acquire returns the store key it took, or "" when deduplication is off for
// this request.
func (s *OrderService) acquire(ctx context.Context, caller domain.Caller, key string) (string, error) {
	if key == "" || s.idempotency == nil {
		return "", nil
	}

	storeKey := fmt.Sprintf("order:%s:%s", caller.ID, key)

	ok, err := s.idempotency.Acquire(ctx, storeKey)
	if err != nil {
		// fail open: the order is placed without deduplication
		s.log.WithError(err).WithField("owner", caller.ID).Warn("idempotency check failed")
		return "", nil
	}
	if !ok {
		return "", domain.ErrDuplicateOrder
	}

	return storeKey, nil
}

func (s *OrderService) release(ctx context.Context, storeKey string) {
	if storeKey == "" {
		return
	}

	if err := s.idempotency.Release(ctx, storeKey); err != nil {
		s.log.WithError(err).WithField("key", storeKey).Warn("failed to release idempotency key")
	}
}

func (s *OrderService) snapshot(ctx context.Context, lines []domain.OrderLineRequest) ([]domain.OrderItem, error) {
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}

	products, err := s.products.GetProducts(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("product %s: %w", line.ProductID, domain.ErrInvalidProductRef)
		}

		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  line.Quantity,
			Image:     product.Image,
		})
	}

	return items, nil
}
