package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type orderLineRequest struct {
	Product   string `json:"product"`
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	Items           []orderLineRequest  `json:"items"`
	ShippingAddress shippingAddressView `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
}

func (req placeOrderRequest) toDomain() (domain.PlaceOrder, error) {
	lines := make([]domain.OrderLineRequest, 0, len(req.Items))
	for _, item := range req.Items {
		raw := item.ProductID
		if raw == "" {
			raw = item.Product
		}

		productID, err := uuid.Parse(raw)
		if err != nil {
			return domain.PlaceOrder{}, domain.ErrInvalidProductRef
		}

		lines = append(lines, domain.OrderLineRequest{ProductID: productID, Quantity: item.Quantity})
	}

	return domain.PlaceOrder{
		Items:           lines,
		ShippingAddress: req.ShippingAddress.toDomain(),
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
	}, nil
}

type updateOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	var req placeOrderRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	in, err := req.toDomain()
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.orders.Place(r.Context(), caller, in, r.Header.Get(HeaderIdempotencyKey))
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": "Order placed successfully", "order": newOrderView(order)})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	query := r.URL.Query()
	filter := domain.OrderFilter{OwnerID: query.Get("userId")}

	if raw := query.Get("status"); raw != "" {
		status, err := domain.ParseOrderStatus(raw)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		filter.Status = status
	}

	orders, err := h.orders.List(r.Context(), caller, filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(orders), "orders": newOrderViews(orders)})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.orders.Get(r.Context(), caller, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "order": newOrderView(order)})
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req updateOrderStatusRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.OrderStatus == "" {
		h.writeError(w, r, domain.Errorf(domain.KindValidation, "orderStatus is required"))
		return
	}

	status, err := domain.ParseOrderStatus(req.OrderStatus)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), caller, id, status)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Order status updated", "order": newOrderView(order)})
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	order, err := h.orders.Cancel(r.Context(), caller, id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Order cancelled successfully", "order": newOrderView(order)})
}
