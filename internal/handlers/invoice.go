package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/jewelry-billing/internal/httpx"
	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/services"
)

// InvoiceHandler exposes invoice creation and the payment lifecycle over JSON.
type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

// Collection handles GET /api/invoices (list) and POST /api/invoices (create full).
func (h *InvoiceHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		state := models.PaymentState(r.URL.Query().Get("state"))
		clientID, _ := parseID(r, "client_id")
		invs, err := h.Svc.List(r.Context(), state, clientID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, paginate(r, invs))
	case http.MethodPost:
		var in services.CreateInvoiceInput
		if !decodeJSON(w, r, &in) {
			return
		}
		inv, err := h.Svc.CreateFull(r.Context(), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, inv)
	default:
		methodNotAllowed(w)
	}
}

// Item handles GET /api/invoices/get?id=.
func (h *InvoiceHandler) Item(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	inv, err := h.Svc.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Payment handles POST /api/invoices/payment?id= with the target state and,
// for PAID, the payment method.
func (h *InvoiceHandler) Payment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var body struct {
		State         models.PaymentState `json:"state"`
		PaymentMethod string              `json:"payment_method"`
		PaidAt        *time.Time          `json:"paid_at"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	inv, err := h.Svc.SetPaymentState(r.Context(), id, body.State, body.PaymentMethod, body.PaidAt)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}

// Cancel handles POST /api/invoices/cancel?id=.
func (h *InvoiceHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if r.ContentLength > 0 && !decodeJSON(w, r, &body) {
		return
	}
	inv, err := h.Svc.Cancel(r.Context(), id, body.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, inv)
}
