package handlers

import (
	"errors"
	"net/http"

	"github.com/diewo77/jewelry-billing/internal/httpx"
	"github.com/diewo77/jewelry-billing/internal/services"
)

// writeServiceError maps service-layer failures to the stable error payloads
// of the API. Internal faults never leak details to the caller.
func writeServiceError(w http.ResponseWriter, err error) {
	if ve, ok := services.AsValidation(err); ok {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", ve.Violations)
		return
	}
	switch {
	case errors.Is(err, services.ErrNotFound):
		httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
	case errors.Is(err, services.ErrInvalidStateTransition):
		httpx.JSONError(w, http.StatusConflict, "invalid_state_transition", nil)
	case errors.Is(err, services.ErrInsufficientStock):
		httpx.JSONError(w, http.StatusConflict, "insufficient_stock", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}

// parseID reads a positive numeric id from the query string.
func parseID(r *http.Request, name string) (uint, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	id, err := atoiu(v)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}
