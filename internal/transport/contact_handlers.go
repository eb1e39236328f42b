package transport

import (
	"net/http"

	"github.com/nikolayk812/storefront/internal/domain"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (h *Handler) submitContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.contact.Submit(r.Context(), req.Name, req.Email, req.Message); err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Your message has been sent successfully! We'll get back to you soon.",
	})
}

func (h *Handler) listContactMessages(w http.ResponseWriter, r *http.Request, caller domain.Caller) {
	messages, err := h.contact.List(r.Context(), caller)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	views := make([]contactMessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, contactMessageView{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Message:   m.Message,
			CreatedAt: m.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, envelope{"success": true, "count": len(views), "messages": views})
}
