package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/models"
)

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.EmployeeProfile{}, &models.Employee{}, &models.Client{},
		&models.Supplier{}, &models.Service{}, &models.StockJewel{},
		&models.StockMaterial{}, &models.StockSupply{},
		&models.Quote{}, &models.Invoice{}, &models.InvoiceLine{}, &models.WorkOrder{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedBasics(t *testing.T, db *gorm.DB) (clientID, employeeID uint) {
	profile := models.EmployeeProfile{Profile: "Sales", Role: "seller"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	emp := models.Employee{ProfileID: profile.ID, FirstName: "Ana", LastName: "Cruz", Username: "acruz", PasswordHash: "x"}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	c := models.Client{IdentityNumber: "0801200005678", FirstName: "Luis", LastName: "Pineda"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	return c.ID, emp.ID
}

func doJSON(t *testing.T, h http.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}
