package transport

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	log "github.com/sirupsen/logrus"
)

const (
	HeaderUserID         = "X-User-ID"
	HeaderUserRole       = "X-User-Role"
	HeaderIdempotencyKey = "Idempotency-Key"
)

type CartService interface {
	Get(ctx context.Context, caller domain.Caller) (domain.Cart, error)
	AddItem(ctx context.Context, caller domain.Caller, productID uuid.UUID, quantity int) (domain.Cart, error)
	UpdateItem(ctx context.Context, caller domain.Caller, itemID uuid.UUID, quantity int) (domain.Cart, error)
	RemoveItem(ctx context.Context, caller domain.Caller, itemID uuid.UUID) (domain.Cart, error)
	Clear(ctx context.Context, caller domain.Caller) (domain.Cart, error)
}

type OrderService interface {
	Place(ctx context.Context, caller domain.Caller, req domain.PlaceOrder, idempotencyKey string) (domain.Order, error)
	List(ctx context.Context, caller domain.Caller, filter domain.OrderFilter) ([]domain.Order, error)
	Get(ctx context.Context, caller domain.Caller, id uuid.UUID) (domain.Order, error)
	UpdateStatus(ctx context.Context, caller domain.Caller, id uuid.UUID, status domain.OrderStatus) (domain.Order, error)
	Cancel(ctx context.Context, caller domain.Caller, id uuid.UUID) (domain.Order, error)
}

type CatalogService interface {
	List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Product, error)
	Create(ctx context.Context, caller domain.Caller, in service.NewProduct) (domain.Product, error)
	Update(ctx context.Context, caller domain.Caller, id uuid.UUID, patch domain.ProductPatch) (domain.Product, error)
	Delete(ctx context.Context, caller domain.Caller, id uuid.UUID) error
}

type ContactService interface {
	Submit(ctx context.Context, name, email, message string) (domain.ContactMessage, error)
	List(ctx context.Context, caller domain.Caller) ([]domain.ContactMessage, error)
}

type Handler struct {
	carts   CartService
	orders  OrderService
	catalog CatalogService
	contact ContactService
	log     log.FieldLogger
}

func NewHandler(carts CartService, orders OrderService, catalog CatalogService, contact ContactService, logger log.FieldLogger) *Handler {
	return &Handler{
		carts:   carts,
		orders:  orders,
		catalog: catalog,
		contact: contact,
		log:     logger.WithField("component", "http"),
	}
}

// Router serves the storefront API under /api. Callers are identified by the
// X-User-ID and X-User-Role headers set by the authenticating gateway in front.
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()
	s := r.PathPrefix("/api").Subrouter()

	s.HandleFunc("/health", h.health).Methods(http.MethodGet)

	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	s.Handle("/products", h.authenticated(h.createProduct)).Methods(http.MethodPost)
	s.Handle("/products/{id}", h.authenticated(h.updateProduct)).Methods(http.MethodPut)
	s.Handle("/products/{id}", h.authenticated(h.deleteProduct)).Methods(http.MethodDelete)

	s.Handle("/cart", h.authenticated(h.getCart)).Methods(http.MethodGet)
	s.Handle("/cart", h.authenticated(h.clearCart)).Methods(http.MethodDelete)
	s.Handle("/cart/items", h.authenticated(h.addCartItem)).Methods(http.MethodPost)
	s.Handle("/cart/items/{itemId}", h.authenticated(h.updateCartItem)).Methods(http.MethodPut)
	s.Handle("/cart/items/{itemId}", h.authenticated(h.removeCartItem)).Methods(http.MethodDelete)

	s.Handle("/orders", h.authenticated(h.listOrders)).Methods(http.MethodGet)
	s.Handle("/orders", h.authenticated(h.placeOrder)).Methods(http.MethodPost)
	s.Handle("/orders/{id}", h.authenticated(h.getOrder)).Methods(http.MethodGet)
	s.Handle("/orders/{id}", h.authenticated(h.cancelOrder)).Methods(http.MethodDelete)
	s.Handle("/orders/{id}/status", h.authenticated(h.updateOrderStatus)).Methods(http.MethodPut)

	s.HandleFunc("/contact", h.submitContact).Methods(http.MethodPost)
	s.Handle("/contact", h.authenticated(h.listContactMessages)).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, envelope{"success": false, "message": "route not found"})
	})

	return h.recoverMiddleware(logMiddleware(r))
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Server is running"})
}

type callerHandlerFunc func(w http.ResponseWriter, r *http.Request, caller domain.Caller)

func (h *Handler) authenticated(next callerHandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderUserID)
		if id == "" {
			writeJSON(w, http.StatusUnauthorized, envelope{"success": false, "message": "not authenticated"})
			return
		}

		role, err := domain.ParseRole(r.Header.Get(HeaderUserRole))
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, envelope{"success": false, "message": "unknown role"})
			return
		}

		next(w, r, domain.Caller{ID: id, Role: role})
	})
}

func (h *Handler) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.log.WithFields(log.Fields{
					"method": r.Method,
					"url":    r.URL,
					"panic":  rec,
				}).Error("handler panicked")
				writeJSON(w, http.StatusInternalServerError, envelope{"success": false, "message": "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
