package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/httpx"
	"github.com/diewo77/jewelry-billing/internal/models"
)

// InventoryHandler exposes read-only stock alert views. Stock quantities are
// mutated only through invoice creation; there is no direct adjustment API.
type InventoryHandler struct {
	DB *gorm.DB
}

func NewInventoryHandler(db *gorm.DB) *InventoryHandler { return &InventoryHandler{DB: db} }

type lowStockReport struct {
	Threshold int                    `json:"threshold"`
	Materials []models.StockMaterial `json:"materials"`
	Supplies  []models.StockSupply   `json:"supplies"`
}

// LowStock handles GET /api/inventory/low-stock?threshold= (default 5).
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	threshold := 5
	if t := r.URL.Query().Get("threshold"); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil || n < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_threshold", nil)
			return
		}
		threshold = n
	}
	db := h.DB.WithContext(r.Context())
	report := lowStockReport{Threshold: threshold}
	if err := db.Where("quantity_on_hand <= ?", threshold).
		Order("quantity_on_hand").Find(&report.Materials).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	if err := db.Where("quantity_on_hand <= ?", threshold).
		Order("quantity_on_hand").Find(&report.Supplies).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

// ExpiringSupplies handles GET /api/inventory/expiring?days= (default 30),
// listing expiry-tracked supplies that expire within the window or already did.
func (h *InventoryHandler) ExpiringSupplies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	days := 30
	if d := r.URL.Query().Get("days"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_days", nil)
			return
		}
		days = n
	}
	cutoff := time.Now().AddDate(0, 0, days)
	var supplies []models.StockSupply
	err := h.DB.WithContext(r.Context()).
		Where("expiry_tracked = ? AND expires_at IS NOT NULL AND expires_at <= ?", true, cutoff).
		Order("expires_at").Find(&supplies).Error
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplies)
}
