package handlers

import (
	"net/http"

	"github.com/diewo77/jewelry-billing/internal/httpx"
	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/services"
)

// QuoteHandler exposes the quote lifecycle over JSON.
type QuoteHandler struct {
	Svc *services.QuoteService
}

func NewQuoteHandler(svc *services.QuoteService) *QuoteHandler { return &QuoteHandler{Svc: svc} }

// Collection handles GET /api/quotes (list) and POST /api/quotes (create).
func (h *QuoteHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w, r)
	case http.MethodPost:
		h.create(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *QuoteHandler) list(w http.ResponseWriter, r *http.Request) {
	state := models.QuoteState(r.URL.Query().Get("state"))
	clientID, _ := parseID(r, "client_id")
	quotes, err := h.Svc.List(r.Context(), state, clientID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, paginate(r, quotes))
}

func (h *QuoteHandler) create(w http.ResponseWriter, r *http.Request) {
	var in services.CreateQuoteInput
	if !decodeJSON(w, r, &in) {
		return
	}
	q, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, q)
}

// Item handles GET /api/quotes/get?id= and PUT /api/quotes/get?id= (partial update).
func (h *QuoteHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		q, err := h.Svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, q)
	case http.MethodPut, http.MethodPatch:
		var in services.UpdateQuoteInput
		if !decodeJSON(w, r, &in) {
			return
		}
		q, err := h.Svc.Update(r.Context(), id, in)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, q)
	default:
		methodNotAllowed(w)
	}
}

// Annul handles POST /api/quotes/annul?id=.
func (h *QuoteHandler) Annul(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	var body struct {
		Note string `json:"note"`
	}
	if r.ContentLength > 0 && !decodeJSON(w, r, &body) {
		return
	}
	q, err := h.Svc.Annul(r.Context(), id, body.Note)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, q)
}

// Convert handles POST /api/quotes/convert?id= and returns the new invoice.
func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	inv, err := h.Svc.Convert(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, inv)
}
