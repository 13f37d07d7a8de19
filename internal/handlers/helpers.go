package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/diewo77/jewelry-billing/internal/httpx"
)

func atoiu(s string) (uint, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(n), nil
}

// decodeJSON parses the request body into dst and writes the 400 itself when
// the payload is malformed. Callers stop on false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "malformed_json", nil)
		return false
	}
	return true
}

// requireID extracts the id query param or writes the 400.
func requireID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, ok := parseID(r, "id")
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return id, true
}

func methodNotAllowed(w http.ResponseWriter) {
	httpx.JSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
}

// paginate applies optional limit/page query params (page is 1-based) to an
// already-ordered result slice. Absent or invalid params return the full slice.
func paginate[T any](r *http.Request, items []T) []T {
	q := r.URL.Query()
	limit, err := strconv.Atoi(q.Get("limit"))
	if err != nil || limit < 1 {
		return items
	}
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(items) {
		return items[:0]
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
