package transport

import (
	"net/http"
	"strconv"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/shopspring/decimal"
)

type productRequest struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Image       *string          `json:"image"`
	Category    *string          `json:"category"`
	Available   *bool            `json:"available"`
}

func (req productRequest) toNewProduct() service.NewProduct {
	in := service.NewProduct{Available: true}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Price != nil {
		in.Price.Amount = *req.Price
	}
	if req.Image != nil {
		in.Image = *req.Image
	}
	if req.Category != nil {
		in.Category = *req.Category
	}
	if req.Available != nil {
		in.Available = *req.Available
	}
	return in
}

func (req productRequest) toPatch() domain.ProductPatch {
	return domain.ProductPatch{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		Category:    req.Category,
		Available:   req.Available,
	}
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := domain.ProductFilter{Category: query.Get("category")}

	if raw := query.Get("available"); raw != "" {
		available, err := strconv.ParseBool(raw)
		if err != nil {
			h.writeError(w, r, domain.Errorf(domain.KindValidation, "available must be true or false"))
			return
		}
		filter.Available = &available
	}

	products, err := h.catalog.List(r.Context(), filter)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(products), "products": newProductViews(products)})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.catalog.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "product": newProductView(product)})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.catalog.Create(r.Context(), caller, req.toNewProduct())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"success": true, "message": "Product created successfully", "product": newProductView(product)})
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.catalog.Update(r.Context(), caller, id, req.toPatch())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Product updated successfully", "product": newProductView(product)})
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	id, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.catalog.Delete(r.Context(), caller, id); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "message": "Product deleted successfully"})
}
