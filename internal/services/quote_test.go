package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/diewo77/jewelry-billing/internal/models"
)

func validQuoteInput(clientID, employeeID uint) CreateQuoteInput {
	return CreateQuoteInput{
		ClientID:   clientID,
		EmployeeID: employeeID,
		Subtotal:   dec("1000"),
		Discount:   dec("0"),
		Tax:        dec("150"),
		Total:      dec("1150"),
		ServiceType: models.SaleDirect,
	}
}

func TestQuoteCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	q, err := svc.Create(ctx, validQuoteInput(clientID, empID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if q.State != models.QuoteActive {
		t.Fatalf("state = %s, want ACTIVE", q.State)
	}

	got, err := svc.Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.Total.Equal(dec("1150")) {
		t.Fatalf("total = %s, want 1150", got.Total)
	}
}

func TestQuoteCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	in := validQuoteInput(clientID, empID)
	in.ClientID = 999
	_, err := svc.Create(ctx, in)
	ve, ok := AsValidation(err)
	if !ok || ve.Violations["client_id"] != "unknown" {
		t.Fatalf("expected client_id unknown, got %v", err)
	}

	in = validQuoteInput(clientID, empID)
	in.Total = dec("1200") // breaks total == subtotal - discount + tax
	_, err = svc.Create(ctx, in)
	if ve, ok = AsValidation(err); !ok || ve.Violations["total"] == "" {
		t.Fatalf("expected total violation, got %v", err)
	}

	in = validQuoteInput(clientID, empID)
	past := time.Now().AddDate(0, 0, -2)
	in.ExpiresAt = &past
	_, err = svc.Create(ctx, in)
	if ve, ok = AsValidation(err); !ok || ve.Violations["expires_at"] != "in_past" {
		t.Fatalf("expected expires_at in_past, got %v", err)
	}
}

func TestQuoteConvertCreatesPendingInvoice(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	q, err := svc.Create(ctx, validQuoteInput(clientID, empID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	inv, err := svc.Convert(ctx, q.ID)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if inv.PaymentState != models.PaymentPending {
		t.Fatalf("invoice state = %s, want PENDING", inv.PaymentState)
	}
	if !inv.Total.Equal(q.Total) || inv.ClientID != q.ClientID {
		t.Fatalf("invoice did not copy quote fields: %+v", inv)
	}

	got, err := svc.Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != models.QuoteConverted {
		t.Fatalf("quote state = %s, want CONVERTED", got.State)
	}
	if got.ConvertedInvoiceID == nil || *got.ConvertedInvoiceID != inv.ID {
		t.Fatalf("missing back reference to invoice %d", inv.ID)
	}
	if got.ConvertedAt == nil {
		t.Fatal("missing conversion timestamp")
	}
}

func TestQuoteConvertOnlyOnce(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	q, _ := svc.Create(ctx, validQuoteInput(clientID, empID))
	if _, err := svc.Convert(ctx, q.ID); err != nil {
		t.Fatalf("first convert: %v", err)
	}
	if _, err := svc.Convert(ctx, q.ID); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("second convert = %v, want ErrInvalidStateTransition", err)
	}
	// exactly one invoice exists
	var count int64
	db.Model(&models.Invoice{}).Count(&count)
	if count != 1 {
		t.Fatalf("invoice count = %d, want 1", count)
	}
}

func TestQuoteAnnul(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	q, _ := svc.Create(ctx, validQuoteInput(clientID, empID))
	got, err := svc.Annul(ctx, q.ID, "client declined")
	if err != nil {
		t.Fatalf("annul: %v", err)
	}
	if got.State != models.QuoteAnnulled || got.Notes != "client declined" {
		t.Fatalf("unexpected result: %+v", got)
	}

	// annulled quotes cannot convert nor be annulled again
	if _, err := svc.Convert(ctx, q.ID); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("convert after annul = %v, want ErrInvalidStateTransition", err)
	}
	if _, err := svc.Annul(ctx, q.ID, ""); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("double annul = %v, want ErrInvalidStateTransition", err)
	}
}

func TestQuoteAnnulConvertedRejected(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	q, _ := svc.Create(ctx, validQuoteInput(clientID, empID))
	if _, err := svc.Convert(ctx, q.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}
	if _, err := svc.Annul(ctx, q.ID, ""); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("annul converted = %v, want ErrInvalidStateTransition", err)
	}
}

func TestQuoteExpiredIsDerived(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	future := time.Now().AddDate(0, 0, 7)
	in := validQuoteInput(clientID, empID)
	in.ExpiresAt = &future
	q, err := svc.Create(ctx, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	// Backdate the expiration directly; the service refuses past dates on input.
	past := time.Now().AddDate(0, 0, -3)
	if err := db.Model(&models.Quote{}).Where("id = ?", q.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate: %v", err)
	}

	got, err := svc.Get(ctx, q.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.State != models.QuoteExpired {
		t.Fatalf("effective state = %s, want EXPIRED", got.State)
	}
	// stored state stays ACTIVE
	var raw models.Quote
	db.First(&raw, q.ID)
	if raw.State != models.QuoteActive {
		t.Fatalf("stored state = %s, want ACTIVE", raw.State)
	}

	expired, err := svc.List(ctx, models.QuoteExpired, 0)
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != q.ID {
		t.Fatalf("expired filter returned %d quotes", len(expired))
	}
	active, err := svc.List(ctx, models.QuoteActive, 0)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("active filter returned %d quotes, want 0", len(active))
	}
}

func TestQuoteUpdateFrozenAfterConvert(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	q, _ := svc.Create(ctx, validQuoteInput(clientID, empID))
	if _, err := svc.Convert(ctx, q.ID); err != nil {
		t.Fatalf("convert: %v", err)
	}
	notes := "edited"
	if _, err := svc.Update(ctx, q.ID, UpdateQuoteInput{Notes: &notes}); !errors.Is(err, ErrInvalidStateTransition) {
		t.Fatalf("update converted = %v, want ErrInvalidStateTransition", err)
	}
}

func TestQuoteUpdateKeepsConsistency(t *testing.T) {
	db := setupTestDB(t)
	clientID, empID := seedParties(t, db)
	svc := NewQuoteService(db)
	ctx := context.Background()

	q, _ := svc.Create(ctx, validQuoteInput(clientID, empID))
	bad := dec("9999")
	_, err := svc.Update(ctx, q.ID, UpdateQuoteInput{Total: &bad})
	ve, ok := AsValidation(err)
	if !ok || ve.Violations["total"] == "" {
		t.Fatalf("expected total violation, got %v", err)
	}

	// a coherent full set of totals is accepted
	sub, disc, tax, total := dec("2000"), dec("100"), dec("285"), dec("2185")
	got, err := svc.Update(ctx, q.ID, UpdateQuoteInput{Subtotal: &sub, Discount: &disc, Tax: &tax, Total: &total})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !got.Total.Equal(total) {
		t.Fatalf("total = %s, want %s", got.Total, total)
	}
}

func TestQuoteGetNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewQuoteService(db)
	if _, err := svc.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing = %v, want ErrNotFound", err)
	}
}
