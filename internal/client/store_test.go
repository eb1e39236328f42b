package client_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/client"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeServer answers with canned envelopes and records what it received.
type fakeServer struct {
	mu       sync.Mutex
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
	requests []*http.Request
	bodies   []map[string]any
}

func newFakeServer(t *testing.T) (*fakeServer, *client.Store) {
	t.Helper()

	f := &fakeServer{routes: make(map[string]func(w http.ResponseWriter, r *http.Request))}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)

	api := client.NewAPI(srv.URL+"/api", srv.Client()).WithIdentity("u1", "user")
	return f, client.NewStore(api, domain.DefaultPricing())
}

func (f *fakeServer) handle(route string, status int, body map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.routes[route] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func (f *fakeServer) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.bodies = append(f.bodies, body)
	handler, ok := f.routes[r.Method+" "+r.URL.Path]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "route not found"})
		return
	}
	handler(w, r)
}

func (f *fakeServer) request(i int) (*http.Request, map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests[i], f.bodies[i]
}

func (f *fakeServer) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	var n int
	for _, r := range f.requests {
		if r.Method+" "+r.URL.Path == route {
			n++
		}
	}
	return n
}

func cartBody(lines ...map[string]any) map[string]any {
	items := make([]any, 0, len(lines))
	for _, l := range lines {
		items = append(items, l)
	}
	return map[string]any{"success": true, "cart": map[string]any{"items": items, "totalAmount": 0}}
}

func line(productID uuid.UUID, price float64, qty int) map[string]any {
	return map[string]any{
		"id":        uuid.NewString(),
		"productId": productID.String(),
		"title":     "Classic Burger",
		"price":     price,
		"quantity":  qty,
	}
}

func TestStoreCartMutationsFollowServer(t *testing.T) {
	f, store := newFakeServer(t)
	productID := uuid.New()

	f.handle("POST /api/cart/items", http.StatusOK, cartBody(line(productID, 199, 2)))

	require.NoError(t, store.AddToCart(t.Context(), productID, 2))

	items := store.CartItems()
	require.Len(t, items, 1)
	assert.Equal(t, productID, items[0].ProductID)
	assert.Equal(t, 2, store.Count())

	totals := store.Totals()
	assert.True(t, decimal.NewFromInt(398).Equal(totals.Subtotal))
	assert.True(t, decimal.RequireFromString("519.64").Equal(totals.Total))

	req, body := f.request(0)
	assert.Equal(t, "u1", req.Header.Get("X-User-ID"))
	assert.Equal(t, "user", req.Header.Get("X-User-Role"))
	assert.Equal(t, productID.String(), body["productId"])
}

func TestStoreFailedMutationKeepsCache(t *testing.T) {
	f, store := newFakeServer(t)
	productID := uuid.New()

	f.handle("GET /api/cart", http.StatusOK, cartBody(line(productID, 199, 1)))
	require.NoError(t, store.FetchCart(t.Context()))

	f.handle("PUT /api/cart/items/"+store.CartItems()[0].ID.String(), http.StatusBadRequest,
		map[string]any{"success": false, "message": "quantity must be at least 1"})

	err := store.UpdateCartItem(t.Context(), store.CartItems()[0].ID, 5)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "quantity must be at least 1", store.LastError())
	assert.Equal(t, 1, store.Count(), "nothing is advanced before the server confirms")
}

func TestStoreClearMissingCartIsEmpty(t *testing.T) {
	f, store := newFakeServer(t)

	f.handle("GET /api/cart", http.StatusOK, cartBody(line(uuid.New(), 100, 1)))
	require.NoError(t, store.FetchCart(t.Context()))

	f.handle("DELETE /api/cart", http.StatusNotFound, map[string]any{"success": false, "message": "cart not found"})

	require.NoError(t, store.ClearCart(t.Context()))
	assert.Empty(t, store.CartItems())
	assert.Empty(t, store.LastError())

	totals := store.Totals()
	assert.True(t, totals.Shipping.IsZero(), "empty cart shows no shipping")
	assert.True(t, totals.Total.IsZero())
}

func TestStorePlaceOrder(t *testing.T) {
	f, store := newFakeServer(t)
	productID := uuid.New()
	orderID := uuid.New()

	f.handle("GET /api/cart", http.StatusOK, cartBody(line(productID, 199, 2)))
	f.handle("POST /api/orders", http.StatusCreated, map[string]any{
		"success": true,
		"order": map[string]any{
			"id":          orderID.String(),
			"orderId":     "ORD-20260506-ABCDEFGH",
			"orderStatus": "Processing",
			"items":       []any{map[string]any{"product": productID.String(), "quantity": 2, "price": 199}},
			"amount":      map[string]any{"subtotal": 398, "tax": 71.64, "shipping": 50, "total": 519.64},
		},
	})
	f.handle("DELETE /api/cart", http.StatusOK, cartBody())

	require.NoError(t, store.FetchCart(t.Context()))
	store.SetShipping(client.ShippingAddress{House: "1", City: "Pune"})
	store.SetShipping(client.ShippingAddress{State: "MH", Country: "India", PinCode: "411001", Contact: "99"})

	order, err := store.PlaceOrder(t.Context(), nil, "checkout-1")
	require.NoError(t, err)

	assert.Equal(t, orderID, order.ID)
	assert.True(t, decimal.RequireFromString("519.64").Equal(order.Amount.Total))
	assert.Empty(t, store.CartItems(), "cart is cleared after checkout")

	orders := store.Orders()
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)

	placeReq, placed := f.request(1)
	assert.Equal(t, "Pune", placed["shippingAddress"].(map[string]any)["city"])
	assert.Equal(t, "MH", placed["shippingAddress"].(map[string]any)["state"])
	items := placed["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, productID.String(), items[0].(map[string]any)["product"])
	assert.Equal(t, "checkout-1", placeReq.Header.Get("Idempotency-Key"))

	cached, err := store.Order(t.Context(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260506-ABCDEFGH", cached.OrderID)
	assert.Zero(t, f.count("GET /api/orders/"+orderID.String()), "placed order is served from cache")
}

func TestStorePlaceOrderWithEmptyCart(t *testing.T) {
	f, store := newFakeServer(t)

	_, err := store.PlaceOrder(t.Context(), &client.ShippingAddress{City: "Pune"}, "")
	require.ErrorIs(t, err, client.ErrEmptyCart)
	assert.Zero(t, f.count("POST /api/orders"))
}

func TestStoreOrderFallsBackToServer(t *testing.T) {
	f, store := newFakeServer(t)
	orderID := uuid.New()

	f.handle("GET /api/orders/"+orderID.String(), http.StatusOK, map[string]any{
		"success": true,
		"order":   map[string]any{"id": orderID.String(), "orderId": "ORD-20260506-ZZZZZZZZ"},
	})

	order, err := store.Order(t.Context(), orderID)
	require.NoError(t, err)
	assert.Equal(t, "ORD-20260506-ZZZZZZZZ", order.OrderID)
	assert.Equal(t, 1, f.count("GET /api/orders/"+orderID.String()))
}

func TestStoreReset(t *testing.T) {
	f, store := newFakeServer(t)

	f.handle("GET /api/cart", http.StatusOK, cartBody(line(uuid.New(), 100, 1)))
	f.handle("GET /api/orders", http.StatusOK, map[string]any{"success": true, "orders": []any{map[string]any{"id": uuid.NewString()}}})

	require.NoError(t, store.FetchCart(t.Context()))
	require.NoError(t, store.FetchOrders(t.Context()))
	store.SetShipping(client.ShippingAddress{City: "Pune"})

	f.handle("GET /api/products", http.StatusOK, map[string]any{"success": true, "products": []any{map[string]any{"id": uuid.NewString()}}})
	require.NoError(t, store.FetchProducts(t.Context()))

	store.Reset()

	assert.Len(t, store.Products(), 1, "catalog is not user state")
	assert.Empty(t, store.CartItems())
	assert.Empty(t, store.Orders())
	assert.Equal(t, client.ShippingAddress{}, store.Shipping())
}

func TestStoreFetchProducts(t *testing.T) {
	f, store := newFakeServer(t)
	burgerID := uuid.New()

	f.handle("GET /api/products", http.StatusOK, map[string]any{
		"success": true,
		"products": []any{map[string]any{
			"id":        burgerID.String(),
			"title":     "Classic Burger",
			"price":     199,
			"category":  "burger",
			"available": true,
		}},
	})

	require.NoError(t, store.FetchProducts(t.Context()))

	products := store.Products()
	require.Len(t, products, 1)
	assert.Equal(t, burgerID, products[0].ID)
	assert.Equal(t, "Classic Burger", products[0].Title)
	assert.True(t, decimal.NewFromInt(199).Equal(products[0].Price))

	f.handle("GET /api/products", http.StatusInternalServerError, map[string]any{"success": false, "message": "internal error"})

	require.Error(t, store.FetchProducts(t.Context()))
	assert.Equal(t, "internal error", store.LastError())
	assert.Len(t, store.Products(), 1, "a failed fetch keeps the cached catalog")
}

func TestStoreCancelOrder(t *testing.T) {
	f, store := newFakeServer(t)
	orderID := uuid.New()
	otherID := uuid.New()

	f.handle("GET /api/orders", http.StatusOK, map[string]any{
		"success": true,
		"orders": []any{
			map[string]any{"id": orderID.String(), "orderStatus": "Processing"},
			map[string]any{"id": otherID.String(), "orderStatus": "Confirmed"},
		},
	})
	require.NoError(t, store.FetchOrders(t.Context()))

	t.Run("refused", func(t *testing.T) {
		f.handle("DELETE /api/orders/"+otherID.String(), http.StatusBadRequest,
			map[string]any{"success": false, "message": "cannot cancel this order"})

		_, err := store.CancelOrder(t.Context(), otherID)

		var apiErr *client.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "cannot cancel this order", store.LastError())
		assert.Equal(t, "Confirmed", store.Orders()[1].OrderStatus, "nothing is advanced before the server confirms")
	})

	t.Run("confirmed", func(t *testing.T) {
		f.handle("DELETE /api/orders/"+orderID.String(), http.StatusOK, map[string]any{
			"success": true,
			"order":   map[string]any{"id": orderID.String(), "orderStatus": "Cancelled"},
		})

		order, err := store.CancelOrder(t.Context(), orderID)
		require.NoError(t, err)
		assert.Equal(t, "Cancelled", order.OrderStatus)

		orders := store.Orders()
		require.Len(t, orders, 2)
		assert.Equal(t, "Cancelled", orders[0].OrderStatus)
		assert.Equal(t, "Confirmed", orders[1].OrderStatus)
	})
}

func TestStorePlaceOrderClearFailureIsRecorded(t *testing.T) {
	f, store := newFakeServer(t)
	productID := uuid.New()
	orderID := uuid.New()

	f.handle("GET /api/cart", http.StatusOK, cartBody(line(productID, 199, 1)))
	f.handle("POST /api/orders", http.StatusCreated, map[string]any{
		"success": true,
		"order":   map[string]any{"id": orderID.String(), "orderId": "ORD-20260506-QQQQQQQQ"},
	})
	f.handle("DELETE /api/cart", http.StatusInternalServerError, map[string]any{"success": false, "message": "internal error"})

	require.NoError(t, store.FetchCart(t.Context()))

	order, err := store.PlaceOrder(t.Context(), &client.ShippingAddress{City: "Pune"}, "")
	require.NoError(t, err, "the placed order stands")
	assert.Equal(t, orderID, order.ID)
	assert.Len(t, store.Orders(), 1)

	assert.Equal(t, "internal error", store.LastError())
	assert.Len(t, store.CartItems(), 1, "cart follows the server, which did not clear it")
}
