// Package client talks to the storefront API and keeps a local projection of
// the signed-in user's cart and orders.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	headerUserID         = "X-User-ID"
	headerUserRole       = "X-User-Role"
	headerIdempotencyKey = "Idempotency-Key"
)

// APIError is a non-2xx answer of the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storefront api: %d %s", e.Status, e.Message)
}

type Product struct {
	ID        uuid.UUID       `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Category  string          `json:"category"`
	Available bool            `json:"available"`
}

type CartLine struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"productId"`
	Title     string          `json:"title"`
	Image     string          `json:"image"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type Cart struct {
	Items       []CartLine      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

type ShippingAddress struct {
	House   string `json:"house"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	PinCode string `json:"pinCode"`
	Contact string `json:"contact"`
}

type OrderLine struct {
	Product  uuid.UUID       `json:"product"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Image    string          `json:"image"`
}

type PlaceOrderLine struct {
	Product  uuid.UUID `json:"product"`
	Quantity int       `json:"quantity"`
}

type Amount struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderID         string          `json:"orderId"`
	Items           []OrderLine     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	Amount          Amount          `json:"amount"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentStatus   string          `json:"paymentStatus"`
	OrderStatus     string          `json:"orderStatus"`
	CreatedAt       time.Time       `json:"createdAt"`
}

type PlaceOrderRequest struct {
	Items           []PlaceOrderLine `json:"items"`
	ShippingAddress ShippingAddress  `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod,omitempty"`
}

type response struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message"`
	Cart     *Cart     `json:"cart"`
	Order    *Order    `json:"order"`
	Orders   []Order   `json:"orders"`
	Products []Product `json:"products"`
}

type API struct {
	baseURL string
	http    *http.Client
	userID  string
	role    string
}

func NewAPI(baseURL string, httpClient *http.Client) *API {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &API{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// WithIdentity returns a copy of the API that sends the given identity.
func (a *API) WithIdentity(userID, role string) *API {
	clone := *a
	clone.userID = userID
	clone.role = role
	return &clone
}

func (a *API) Products(ctx context.Context) ([]Product, error) {
	var resp response
	if err := a.do(ctx, http.MethodGet, "/products", nil, "", &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (a *API) Cart(ctx context.Context) (Cart, error) {
	return a.cartCall(ctx, http.MethodGet, "/cart", nil)
}

func (a *API) AddToCart(ctx context.Context, productID uuid.UUID, quantity int) (Cart, error) {
	body := map[string]any{"productId": productID, "quantity": quantity}
	return a.cartCall(ctx, http.MethodPost, "/cart/items", body)
}

func (a *API) UpdateCartItem(ctx context.Context, itemID uuid.UUID, quantity int) (Cart, error) {
	return a.cartCall(ctx, http.MethodPut, "/cart/items/"+url.PathEscape(itemID.String()), map[string]any{"quantity": quantity})
}

func (a *API) RemoveCartItem(ctx context.Context, itemID uuid.UUID) (Cart, error) {
	return a.cartCall(ctx, http.MethodDelete, "/cart/items/"+url.PathEscape(itemID.String()), nil)
}

func (a *API) ClearCart(ctx context.Context) (Cart, error) {
	return a.cartCall(ctx, http.MethodDelete, "/cart", nil)
}

func (a *API) Orders(ctx context.Context) ([]Order, error) {
	var resp response
	if err := a.do(ctx, http.MethodGet, "/orders", nil, "", &resp); err != nil {
		return nil, err
	}
	return resp.Orders, nil
}

func (a *API) Order(ctx context.Context, id uuid.UUID) (Order, error) {
	return a.orderCall(ctx, http.MethodGet, "/orders/"+url.PathEscape(id.String()), nil, "")
}

func (a *API) PlaceOrder(ctx context.Context, req PlaceOrderRequest, idempotencyKey string) (Order, error) {
	return a.orderCall(ctx, http.MethodPost, "/orders", req, idempotencyKey)
}

func (a *API) CancelOrder(ctx context.Context, id uuid.UUID) (Order, error) {
	return a.orderCall(ctx, http.MethodDelete, "/orders/"+url.PathEscape(id.String()), nil, "")
}

func (a *API) cartCall(ctx context.Context, method, path string, body any) (Cart, error) {
	var resp response
	if err := a.do(ctx, method, path, body, "", &resp); err != nil {
		return Cart{}, err
	}
	if resp.Cart == nil {
		return Cart{}, fmt.Errorf("%s %s: response has no cart", method, path)
	}
	return *resp.Cart, nil
}

func (a *API) orderCall(ctx context.Context, method, path string, body any, idempotencyKey string) (Order, error) {
	var resp response
	if err := a.do(ctx, method, path, body, idempotencyKey, &resp); err != nil {
		return Order{}, err
	}
	if resp.Order == nil {
		return Order{}, fmt.Errorf("%s %s: response has no order", method, path)
	}
	return *resp.Order, nil
}

func (a *API) do(ctx context.Context, method, path string, body any, idempotencyKey string, out *response) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("json.Marshal: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if a.userID != "" {
		req.Header.Set(headerUserID, a.userID)
		req.Header.Set(headerUserRole, a.role)
	}
	if idempotencyKey != "" {
		req.Header.Set(headerIdempotencyKey, idempotencyKey)
	}

	res, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("http.Do: %w", err)
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		if res.StatusCode >= http.StatusBadRequest {
			return &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}

	if res.StatusCode >= http.StatusBadRequest || !out.Success {
		message := out.Message
		if message == "" {
			message = "Something went wrong"
		}
		return &APIError{Status: res.StatusCode, Message: message}
	}

	return nil
}
