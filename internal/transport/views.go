package transport

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
)

func amountJSON(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type productView struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Price       json.Number `json:"price"`
	Currency    string      `json:"currency"`
	Image       string      `json:"image"`
	Category    string      `json:"category"`
	Available   bool        `json:"available"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func newProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       amountJSON(p.Price.Amount),
		Currency:    p.Price.Currency.String(),
		Image:       p.Image,
		Category:    p.Category,
		Available:   p.Available,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func newProductViews(products []domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, newProductView(p))
	}
	return views
}

type cartItemView struct {
	ID        uuid.UUID   `json:"id"`
	ProductID uuid.UUID   `json:"productId"`
	Title     string      `json:"title"`
	Image     string      `json:"image"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
}

type cartView struct {
	ID          string         `json:"id,omitempty"`
	Items       []cartItemView `json:"items"`
	TotalAmount json.Number    `json:"totalAmount"`
	Currency    string         `json:"currency"`
}

func newCartView(c domain.Cart) cartView {
	view := cartView{
		Items:       make([]cartItemView, 0, len(c.Items)),
		TotalAmount: amountJSON(c.TotalAmount.Amount),
		Currency:    c.TotalAmount.Currency.String(),
	}
	if c.ID != uuid.Nil {
		view.ID = c.ID.String()
	}

	for _, item := range c.Items {
		view.Items = append(view.Items, cartItemView{
			ID:        item.ID,
			ProductID: item.ProductID,
			Title:     item.Title,
			Image:     item.Image,
			Price:     amountJSON(item.Price.Amount),
			Quantity:  item.Quantity,
		})
	}

	return view
}

type shippingAddressView struct {
	House   string `json:"house"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
	Contact string `json:"contact"`
}

func (v shippingAddressView) toDomain() domain.ShippingAddress {
	return domain.ShippingAddress(v)
}

type amountView struct {
	Subtotal json.Number `json:"subtotal"`
	Tax      json.Number `json:"tax"`
	Shipping json.Number `json:"shipping"`
	Total    json.Number `json:"total"`
	Currency string      `json:"currency"`
}

type orderItemView struct {
	ProductID uuid.UUID   `json:"product"`
	Title     string      `json:"title"`
	Price     json.Number `json:"price"`
	Quantity  int         `json:"quantity"`
	Image     string      `json:"image"`
}

type orderView struct {
	ID              uuid.UUID           `json:"id"`
	OrderID         string              `json:"orderId"`
	User            string              `json:"user"`
	Items           []orderItemView     `json:"items"`
	ShippingAddress shippingAddressView `json:"shippingAddress"`
	Amount          amountView          `json:"amount"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentStatus   string              `json:"paymentStatus"`
	OrderStatus     string              `json:"orderStatus"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	DeliveredAt     *time.Time          `json:"deliveredAt,omitempty"`
	CancelledAt     *time.Time          `json:"cancelledAt,omitempty"`
}

func newOrderView(o domain.Order) orderView {
	items := make([]orderItemView, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, orderItemView{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     amountJSON(item.Price.Amount),
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	return orderView{
		ID:              o.ID,
		OrderID:         o.Number,
		User:            o.OwnerID,
		Items:           items,
		ShippingAddress: shippingAddressView(o.ShippingAddress),
		Amount: amountView{
			Subtotal: amountJSON(o.Amount.Subtotal),
			Tax:      amountJSON(o.Amount.Tax),
			Shipping: amountJSON(o.Amount.Shipping),
			Total:    amountJSON(o.Amount.Total),
			Currency: o.Amount.Currency.String(),
		},
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		OrderStatus:   string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
		DeliveredAt:   o.DeliveredAt,
		CancelledAt:   o.CancelledAt,
	}
}

func newOrderViews(orders []domain.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	return views
}

type contactMessageView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}
