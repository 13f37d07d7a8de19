package handlers

import (
	"net/http"

	"github.com/diewo77/jewelry-billing/internal/httpx"
	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/services"
)

// WorkOrderHandler exposes the workshop order lifecycle over JSON.
type WorkOrderHandler struct {
	Svc *services.WorkOrderService
}

func NewWorkOrderHandler(svc *services.WorkOrderService) *WorkOrderHandler {
	return &WorkOrderHandler{Svc: svc}
}

// Collection handles GET /api/workorders with optional state, invoice_id and
// employee_id filters.
func (h *WorkOrderHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	state := models.WorkOrderState(r.URL.Query().Get("state"))
	invoiceID, _ := parseID(r, "invoice_id")
	employeeID, _ := parseID(r, "employee_id")
	orders, err := h.Svc.List(r.Context(), state, invoiceID, employeeID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, paginate(r, orders))
}

// Item handles GET /api/workorders/get?id=.
func (h *WorkOrderHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	o, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}

// State handles POST /api/workorders/state?id= applying a lifecycle transition.
func (h *WorkOrderHandler) State(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var body struct {
		State models.WorkOrderState `json:"state"`
		Note  string                `json:"note"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	o, err := h.Svc.UpdateState(r.Context(), id, body.State, body.Note)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, o)
}
