package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/services"
)

func TestInvoiceHandlerCreateComputesTotals(t *testing.T) {
	db := setupHandlerTestDB(t)
	clientID, empID := seedBasics(t, db)
	jewel := models.StockJewel{Name: "Gold band"}
	if err := db.Create(&jewel).Error; err != nil {
		t.Fatalf("create jewel: %v", err)
	}
	h := NewInvoiceHandler(services.NewInvoiceService(db, services.NewCatalogStore(db), services.NewInventoryLedger()))

	body := fmt.Sprintf(`{"client_id":%d,"employee_id":%d,"sale_type":"SALE","lines":[{"kind":"JEWEL","item_id":%d,"quantity":2,"unit_price":"500"}]}`, clientID, empID, jewel.ID)
	w := doJSON(t, h.Collection, http.MethodPost, "/api/invoices", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var inv models.Invoice
	decodeBody(t, w, &inv)
	if inv.Total.String() != "1150" {
		t.Fatalf("total = %s, want 1150", inv.Total)
	}
}

func TestInvoiceHandlerInsufficientStock(t *testing.T) {
	db := setupHandlerTestDB(t)
	clientID, empID := seedBasics(t, db)
	supplier := models.Supplier{Name: "Vendor"}
	if err := db.Create(&supplier).Error; err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	mat := models.StockMaterial{SupplierID: supplier.ID, Name: "emerald", QuantityOnHand: 3}
	if err := db.Create(&mat).Error; err != nil {
		t.Fatalf("create material: %v", err)
	}
	h := NewInvoiceHandler(services.NewInvoiceService(db, services.NewCatalogStore(db), services.NewInventoryLedger()))

	body := fmt.Sprintf(`{"client_id":%d,"employee_id":%d,"sale_type":"SALE","lines":[{"kind":"MATERIAL","item_id":%d,"quantity":5,"unit_price":"100"}]}`, clientID, empID, mat.ID)
	w := doJSON(t, h.Collection, http.MethodPost, "/api/invoices", body)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &resp)
	if resp.Error != "insufficient_stock" {
		t.Fatalf("error = %s, want insufficient_stock", resp.Error)
	}
	// stock untouched
	var got models.StockMaterial
	db.First(&got, mat.ID)
	if got.QuantityOnHand != 3 {
		t.Fatalf("on hand = %d, want 3", got.QuantityOnHand)
	}
}

func TestInvoiceHandlerPaymentFlow(t *testing.T) {
	db := setupHandlerTestDB(t)
	clientID, empID := seedBasics(t, db)
	jewel := models.StockJewel{Name: "Pendant"}
	if err := db.Create(&jewel).Error; err != nil {
		t.Fatalf("create jewel: %v", err)
	}
	h := NewInvoiceHandler(services.NewInvoiceService(db, services.NewCatalogStore(db), services.NewInventoryLedger()))

	body := fmt.Sprintf(`{"client_id":%d,"employee_id":%d,"sale_type":"SALE","lines":[{"kind":"JEWEL","item_id":%d,"quantity":1,"unit_price":"400"}]}`, clientID, empID, jewel.ID)
	w := doJSON(t, h.Collection, http.MethodPost, "/api/invoices", body)
	var inv models.Invoice
	decodeBody(t, w, &inv)

	// pay without a method -> 400
	w = doJSON(t, h.Payment, http.MethodPost, fmt.Sprintf("/api/invoices/payment?id=%d", inv.ID), `{"state":"PAID"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, h.Payment, http.MethodPost, fmt.Sprintf("/api/invoices/payment?id=%d", inv.ID), `{"state":"PAID","payment_method":"cash"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var paid models.Invoice
	decodeBody(t, w, &paid)
	if paid.PaymentState != models.PaymentPaid || paid.PaidAt == nil {
		t.Fatalf("unexpected paid invoice: %s", w.Body.String())
	}

	// back to pending -> 409
	w = doJSON(t, h.Payment, http.MethodPost, fmt.Sprintf("/api/invoices/payment?id=%d", inv.ID), `{"state":"PENDING"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", w.Code)
	}

	// cancel
	w = doJSON(t, h.Cancel, http.MethodPost, fmt.Sprintf("/api/invoices/cancel?id=%d", inv.ID), `{"reason":"returned"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestInvoiceHandlerMalformedJSON(t *testing.T) {
	db := setupHandlerTestDB(t)
	h := NewInvoiceHandler(services.NewInvoiceService(db, services.NewCatalogStore(db), services.NewInventoryLedger()))
	w := doJSON(t, h.Collection, http.MethodPost, "/api/invoices", `{"client_id":`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	decodeBody(t, w, &resp)
	if resp.Error != "malformed_json" {
		t.Fatalf("error = %s, want malformed_json", resp.Error)
	}
}
