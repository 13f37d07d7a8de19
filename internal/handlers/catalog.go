package handlers

import (
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/httpx"
	"github.com/diewo77/jewelry-billing/internal/models"
)

// CatalogHandler exposes read-only listings of the billable catalog.
type CatalogHandler struct {
	DB *gorm.DB
}

func NewCatalogHandler(db *gorm.DB) *CatalogHandler { return &CatalogHandler{DB: db} }

// Services handles GET /api/catalog/services with optional name search.
func (h *CatalogHandler) Services(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	db := h.DB.WithContext(r.Context())
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		db = db.Where("name LIKE ?", "%"+q+"%")
	}
	var services []models.Service
	if err := db.Order("name").Find(&services).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, paginate(r, services))
}

// Jewels handles GET /api/catalog/jewels with optional name search.
func (h *CatalogHandler) Jewels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	db := h.DB.WithContext(r.Context())
	if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
		db = db.Where("name LIKE ?", "%"+q+"%")
	}
	var jewels []models.StockJewel
	if err := db.Order("name").Find(&jewels).Error; err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, paginate(r, jewels))
}
