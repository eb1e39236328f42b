package transport

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/nikolayk812/storefront/internal/domain"
	log "github.com/sirupsen/logrus"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithField("err", err).Error("write response body")
	}
}

func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindInvalidReference:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports classified errors with their own message; anything else
// is logged and answered with a generic 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := domain.KindOf(err)
	message := domain.MessageOf(err)

	if kind == domain.KindUnexpected {
		h.log.WithError(err).WithFields(log.Fields{
			"method": r.Method,
			"url":    r.URL,
		}).Error("request failed")
		message = "internal error"
	}

	writeJSON(w, statusFor(kind), envelope{"success": false, "message": message})
}

func decodeBody(r *http.Request, dst any) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if errors.Is(err, io.EOF) {
		return domain.Errorf(domain.KindValidation, "request body is empty")
	}
	if err != nil {
		return domain.Errorf(domain.KindValidation, "invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, domain.Errorf(domain.KindValidation, "%s is not a valid id", name)
	}
	return id, nil
}
