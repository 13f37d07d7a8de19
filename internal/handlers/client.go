package handlers

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/httpx"
	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/validation"
)

// ClientHandler manages the client registry. Identity numbers are stored
// without separators and are immutable once set.
type ClientHandler struct {
	DB *gorm.DB
}

func NewClientHandler(db *gorm.DB) *ClientHandler { return &ClientHandler{DB: db} }

type clientInput struct {
	IdentityNumber string `json:"identity_number"`
	TaxID          string `json:"tax_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Address        string `json:"address"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

func stripSeparators(s string) string {
	return strings.NewReplacer("-", "", " ", "").Replace(s)
}

func (in *clientInput) validate(requireIdentity bool) validation.Violations {
	v := validation.Violations{}
	validation.Required("first_name", in.FirstName, v)
	validation.Required("last_name", in.LastName, v)
	in.IdentityNumber = stripSeparators(in.IdentityNumber)
	in.TaxID = stripSeparators(in.TaxID)
	if requireIdentity || in.IdentityNumber != "" {
		validation.Digits("identity_number", in.IdentityNumber, 13, v)
	}
	if in.TaxID != "" {
		validation.Digits("tax_id", in.TaxID, 14, v)
	}
	return v
}

// Collection handles GET /api/clients (list, optional search) and POST /api/clients.
func (h *ClientHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		db := h.DB.WithContext(r.Context())
		if q := strings.TrimSpace(r.URL.Query().Get("q")); q != "" {
			like := "%" + q + "%"
			db = db.Where("first_name LIKE ? OR last_name LIKE ? OR identity_number LIKE ?", like, like, like)
		}
		var clients []models.Client
		if err := db.Order("last_name, first_name").Find(&clients).Error; err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, paginate(r, clients))
	case http.MethodPost:
		var in clientInput
		if !decodeJSON(w, r, &in) {
			return
		}
		if v := in.validate(true); !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		db := h.DB.WithContext(r.Context())
		var count int64
		db.Model(&models.Client{}).Where("identity_number = ?", in.IdentityNumber).Count(&count)
		if count > 0 {
			httpx.JSONError(w, http.StatusConflict, "identity_number_taken", nil)
			return
		}
		c := models.Client{
			IdentityNumber: in.IdentityNumber,
			TaxID:          in.TaxID,
			FirstName:      in.FirstName,
			LastName:       in.LastName,
			Address:        in.Address,
			Email:          in.Email,
			Phone:          in.Phone,
		}
		if err := db.Create(&c).Error; err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusCreated, c)
	default:
		methodNotAllowed(w)
	}
}

// Item handles GET and PUT /api/clients/get?id=. The identity number cannot be
// changed on update; a differing value is rejected.
func (h *ClientHandler) Item(w http.ResponseWriter, r *http.Request) {
	id, ok := requireID(w, r)
	if !ok {
		return
	}
	db := h.DB.WithContext(r.Context())
	var c models.Client
	if err := db.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httpx.JSONError(w, http.StatusNotFound, "not_found", nil)
			return
		}
		writeServiceError(w, err)
		return
	}
	switch r.Method {
	case http.MethodGet:
		httpx.JSON(w, http.StatusOK, c)
	case http.MethodPut, http.MethodPatch:
		var in clientInput
		if !decodeJSON(w, r, &in) {
			return
		}
		v := in.validate(false)
		if in.IdentityNumber != "" && in.IdentityNumber != c.IdentityNumber {
			v["identity_number"] = "immutable"
		}
		if !v.Empty() {
			httpx.JSONError(w, http.StatusBadRequest, "validation_failed", v)
			return
		}
		c.TaxID = in.TaxID
		c.FirstName = in.FirstName
		c.LastName = in.LastName
		c.Address = in.Address
		c.Email = in.Email
		c.Phone = in.Phone
		if err := db.Save(&c).Error; err != nil {
			writeServiceError(w, err)
			return
		}
		httpx.JSON(w, http.StatusOK, c)
	default:
		methodNotAllowed(w)
	}
}
