package domain

import (
	"encoding/base32"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusProcessing     OrderStatus = "Processing"
	OrderStatusConfirmed      OrderStatus = "Confirmed"
	OrderStatusPreparing      OrderStatus = "Preparing"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
	OrderStatusCancelled      OrderStatus = "Cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusProcessing,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusOutForDelivery,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	for _, status := range orderStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", Errorf(KindValidation, "orderStatus %q is not valid", s)
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodCard   PaymentMethod = "Card"
	PaymentMethodUPI    PaymentMethod = "UPI"
	PaymentMethodWallet PaymentMethod = "Wallet"
)

// ParsePaymentMethod defaults an empty value to cash on delivery.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case "":
		return PaymentMethodCOD, nil
	case PaymentMethodCOD, PaymentMethodCard, PaymentMethodUPI, PaymentMethodWallet:
		return PaymentMethod(s), nil
	default:
		return "", Errorf(KindValidation, "paymentMethod %q is not valid", s)
	}
}

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "Pending"
	PaymentStatusPaid     PaymentStatus = "Paid"
	PaymentStatusFailed   PaymentStatus = "Failed"
	PaymentStatusRefunded PaymentStatus = "Refunded"
)

type ShippingAddress struct {
	House   string
	City    string
	State   string
	Country string
	PinCode string
	Contact string
}

func (a ShippingAddress) Validate() error {
	fields := []struct {
		name  string
		value string
	}{
		{"house", a.House},
		{"city", a.City},
		{"state", a.State},
		{"country", a.Country},
		{"pinCode", a.PinCode},
		{"contact", a.Contact},
	}

	var missing []string
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return Errorf(KindValidation, "shipping address is missing: %s", strings.Join(missing, ", "))
	}

	return nil
}

// OrderItem is a snapshot of the product taken at checkout.
type OrderItem struct {
	ProductID uuid.UUID
	Title     string
	Price     Money
	Quantity  int
	Image     string
}

type Order struct {
	ID              uuid.UUID
	Number          string
	OwnerID         string
	Items           []OrderItem
	ShippingAddress ShippingAddress
	Amount          Amount
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	Status          OrderStatus

	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeliveredAt *time.Time
	CancelledAt *time.Time
}

type OrderFilter struct {
	OwnerID string
	Status  OrderStatus
}

type OrderLineRequest struct {
	ProductID uuid.UUID
	Quantity  int
}

type PlaceOrder struct {
	Items           []OrderLineRequest
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
}

// Normalize validates the request and defaults omitted quantities to 1.
func (p PlaceOrder) Normalize() (PlaceOrder, error) {
	if len(p.Items) == 0 {
		return PlaceOrder{}, ErrNoOrderItems
	}
	if err := p.ShippingAddress.Validate(); err != nil {
		return PlaceOrder{}, err
	}

	method, err := ParsePaymentMethod(string(p.PaymentMethod))
	if err != nil {
		return PlaceOrder{}, err
	}

	items := make([]OrderLineRequest, len(p.Items))
	for i, item := range p.Items {
		if item.ProductID == uuid.Nil {
			return PlaceOrder{}, Errorf(KindValidation, "item %d: product is required", i)
		}
		if item.Quantity == 0 {
			item.Quantity = 1
		}
		if err := checkQuantity(item.Quantity); err != nil {
			return PlaceOrder{}, err
		}
		items[i] = item
	}

	return PlaceOrder{
		Items:           items,
		ShippingAddress: p.ShippingAddress,
		PaymentMethod:   method,
	}, nil
}

// SetStatus writes any status. DeliveredAt and CancelledAt are stamped only
// when the order enters the corresponding status.
func (o *Order) SetStatus(status OrderStatus, now time.Time) {
	if o.Status == status {
		return
	}

	o.Status = status
	o.UpdatedAt = now

	switch status {
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
	}
}

// Cancel applies the cancellation policy: the owner may cancel while the order
// is still processing, an administrator at any time.
func (o *Order) Cancel(caller Caller, now time.Time) error {
	if !caller.CanAccess(o.OwnerID) {
		return ErrForbidden
	}
	if !caller.IsAdmin() && o.Status != OrderStatusProcessing {
		return ErrCannotCancel
	}

	o.SetStatus(OrderStatusCancelled, now)
	return nil
}

var orderNumberEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewOrderNumber returns a human readable identifier like ORD-20260102-K3J9XQ2M.
func NewOrderNumber(now time.Time) string {
	id := uuid.New()
	suffix := orderNumberEncoding.EncodeToString(id[:5])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}
