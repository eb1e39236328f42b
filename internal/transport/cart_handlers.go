package transport

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
)

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	cart, err := h.carts.Get(r.Context(), caller)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "cart": newCartView(cart)})
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	var req addCartItemRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.writeError(w, r, domain.Errorf(domain.KindValidation, "productId is required"))
		return
	}

	quantity := 1
	if req.Quantity != nil {
		if *req.Quantity < 1 {
			h.writeError(w, r, domain.ErrInvalidQuantity)
			return
		}
		quantity = *req.Quantity
	}

	cart, err := h.carts.AddItem(r.Context(), caller, productID, quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Item added to cart", "cart": newCartView(cart)})
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	itemID, err := pathID(r, "itemId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req updateCartItemRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	if req.Quantity == nil || *req.Quantity < 1 {
		h.writeError(w, r, domain.ErrInvalidQuantity)
		return
	}

	cart, err := h.carts.UpdateItem(r.Context(), caller, itemID, *req.Quantity)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Cart updated", "cart": newCartView(cart)})
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	itemID, err := pathID(r, "itemId")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), caller, itemID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Item removed from cart", "cart": newCartView(cart)})
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	cart, err := h.carts.Clear(r.Context(), caller)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Cart cleared", "cart": newCartView(cart)})
}
