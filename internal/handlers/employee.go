package handlers

import (
	"net/http"

	"github.com/diewo77/jewelry-billing/internal/httpx"
	"github.com/diewo77/jewelry-billing/internal/services"
)

// EmployeeHandler exposes the employee registry over JSON.
type EmployeeHandler struct {
	Svc *services.EmployeeService
}

func NewEmployeeHandler(svc *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Svc: svc}
}

// Collection handles GET /api/employees and POST /api/employees.
func (h *EmployeeHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		employees, err := h.Svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, employees)
	case http.MethodPost:
		var in services.CreateEmployeeInput
		if !decodeJSON(w, r, &in) {
			return
		}
		e, err := h.Svc.Create(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, e)
	default:
		methodNotAllowed(w)
	}
}
