package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/pricing"
	"github.com/diewo77/jewelry-billing/internal/validation"
)

// QuoteService owns the quote lifecycle: creation, partial updates, annulment
// and the conversion into an invoice.
type QuoteService struct {
	DB *gorm.DB
}

func NewQuoteService(db *gorm.DB) *QuoteService { return &QuoteService{DB: db} }

type CreateQuoteInput struct {
	ClientID    uint            `json:"client_id"`
	EmployeeID  uint            `json:"employee_id"`
	ExpiresAt   *time.Time      `json:"expires_at"`
	Address     string          `json:"address"`
	Phone       string          `json:"phone"`
	TaxID       string          `json:"tax_id"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
	ServiceType models.SaleType `json:"service_type"`
	Notes       string          `json:"notes"`
}

// UpdateQuoteInput carries optional fields for a partial update. Nil pointers
// leave the stored value untouched. State is not updatable here; annulment and
// conversion have their own operations.
type UpdateQuoteInput struct {
	ExpiresAt   *time.Time       `json:"expires_at"`
	Address     *string          `json:"address"`
	Phone       *string          `json:"phone"`
	TaxID       *string          `json:"tax_id"`
	Subtotal    *decimal.Decimal `json:"subtotal"`
	Discount    *decimal.Decimal `json:"discount"`
	Tax         *decimal.Decimal `json:"tax"`
	Total       *decimal.Decimal `json:"total"`
	ServiceType *models.SaleType `json:"service_type"`
	Notes       *string          `json:"notes"`
}

func validSaleType(t models.SaleType) bool {
	switch t {
	case models.SaleDirect, models.SaleFabrication, models.SaleRepair:
		return true
	}
	return false
}

// Create validates references and monetary consistency and stores the quote
// as ACTIVE. Supplied totals are advisory for the quote document itself but
// must satisfy total == subtotal - discount + tax within 0.01.
func (s *QuoteService) Create(ctx context.Context, in CreateQuoteInput) (*models.Quote, error) {
	v := validation.Violations{}
	db := s.DB.WithContext(ctx)
	if in.ClientID == 0 || !exists(db, &models.Client{}, in.ClientID) {
		v["client_id"] = "unknown"
	}
	if in.EmployeeID == 0 || !exists(db, &models.Employee{}, in.EmployeeID) {
		v["employee_id"] = "unknown"
	}
	if !validSaleType(in.ServiceType) {
		v["service_type"] = "invalid"
	}
	if in.Discount.IsNegative() {
		v["discount"] = "must_not_be_negative"
	}
	if !in.Total.IsPositive() {
		v["total"] = "must_be_positive"
	}
	if !pricing.Consistent(in.Subtotal, in.Discount, in.Tax, in.Total) {
		v["total"] = "inconsistent_with_subtotal_discount_tax"
	}
	if in.ExpiresAt != nil && in.ExpiresAt.Before(today()) {
		v["expires_at"] = "in_past"
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	q := models.Quote{
		ClientID:    in.ClientID,
		EmployeeID:  in.EmployeeID,
		ExpiresAt:   in.ExpiresAt,
		Address:     in.Address,
		Phone:       in.Phone,
		TaxID:       in.TaxID,
		Subtotal:    in.Subtotal,
		Discount:    in.Discount,
		Tax:         in.Tax,
		Total:       in.Total,
		ServiceType: in.ServiceType,
		State:       models.QuoteActive,
		Notes:       in.Notes,
	}
	if err := db.Create(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// Get loads one quote. The returned State reflects derived expiry.
func (s *QuoteService) Get(ctx context.Context, id uint) (*models.Quote, error) {
	var q models.Quote
	if err := s.DB.WithContext(ctx).First(&q, id).Error; err != nil {
		return nil, wrapLookupErr(err)
	}
	q.State = q.EffectiveState(time.Now())
	return &q, nil
}

// List returns quotes newest first, optionally filtered by effective state or
// client. The EXPIRED filter selects ACTIVE quotes past their expiration date.
func (s *QuoteService) List(ctx context.Context, state models.QuoteState, clientID uint) ([]models.Quote, error) {
	db := s.DB.WithContext(ctx)
	switch state {
	case "":
		// no state filter
	case models.QuoteExpired:
		db = db.Where("state = ? AND expires_at < ?", models.QuoteActive, today())
	case models.QuoteActive:
		db = db.Where("state = ? AND (expires_at IS NULL OR expires_at >= ?)", models.QuoteActive, today())
	default:
		db = db.Where("state = ?", state)
	}
	if clientID != 0 {
		db = db.Where("client_id = ?", clientID)
	}
	var quotes []models.Quote
	if err := db.Order("created_at desc").Find(&quotes).Error; err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range quotes {
		quotes[i].State = quotes[i].EffectiveState(now)
	}
	return quotes, nil
}

// Update applies a partial edit. Converted quotes are frozen; any edit fails
// with ErrInvalidStateTransition and changes nothing.
func (s *QuoteService) Update(ctx context.Context, id uint, in UpdateQuoteInput) (*models.Quote, error) {
	db := s.DB.WithContext(ctx)
	var q models.Quote
	if err := db.First(&q, id).Error; err != nil {
		return nil, wrapLookupErr(err)
	}
	if q.State == models.QuoteConverted {
		return nil, ErrInvalidStateTransition
	}
	if in.ExpiresAt != nil {
		q.ExpiresAt = in.ExpiresAt
	}
	if in.Address != nil {
		q.Address = *in.Address
	}
	if in.Phone != nil {
		q.Phone = *in.Phone
	}
	if in.TaxID != nil {
		q.TaxID = *in.TaxID
	}
	if in.Subtotal != nil {
		q.Subtotal = *in.Subtotal
	}
	if in.Discount != nil {
		q.Discount = *in.Discount
	}
	if in.Tax != nil {
		q.Tax = *in.Tax
	}
	if in.Total != nil {
		q.Total = *in.Total
	}
	if in.ServiceType != nil {
		q.ServiceType = *in.ServiceType
	}
	if in.Notes != nil {
		q.Notes = *in.Notes
	}
	v := validation.Violations{}
	if !validSaleType(q.ServiceType) {
		v["service_type"] = "invalid"
	}
	if q.Discount.IsNegative() {
		v["discount"] = "must_not_be_negative"
	}
	if !q.Total.IsPositive() {
		v["total"] = "must_be_positive"
	}
	if !pricing.Consistent(q.Subtotal, q.Discount, q.Tax, q.Total) {
		v["total"] = "inconsistent_with_subtotal_discount_tax"
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	if err := db.Save(&q).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

// Annul marks an ACTIVE quote as ANNULLED. Converted and already-annulled
// quotes are rejected without any mutation.
func (s *QuoteService) Annul(ctx context.Context, id uint, note string) (*models.Quote, error) {
	db := s.DB.WithContext(ctx)
	var q models.Quote
	if err := db.First(&q, id).Error; err != nil {
		return nil, wrapLookupErr(err)
	}
	if q.State != models.QuoteActive {
		return nil, ErrInvalidStateTransition
	}
	if note == "" {
		note = "quote annulled"
	}
	res := db.Model(&models.Quote{}).
		Where("id = ? AND state = ?", id, models.QuoteActive).
		Updates(map[string]any{"state": models.QuoteAnnulled, "notes": note})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// lost the race against a concurrent convert/annul
		return nil, ErrInvalidStateTransition
	}
	q.State = models.QuoteAnnulled
	q.Notes = note
	return &q, nil
}

// Convert turns an ACTIVE quote into a PENDING invoice, copying the client,
// employee, contact snapshot and monetary fields, and mapping the service type
// to the invoice sale type. The quote is marked CONVERTED with a back
// reference and timestamp in the same transaction; a conditional update on the
// ACTIVE state makes double conversion impossible.
func (s *QuoteService) Convert(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var q models.Quote
		if err := tx.First(&q, id).Error; err != nil {
			return wrapLookupErr(err)
		}
		if q.State != models.QuoteActive {
			return ErrInvalidStateTransition
		}
		inv = models.Invoice{
			ClientID:     q.ClientID,
			EmployeeID:   q.EmployeeID,
			Address:      q.Address,
			Phone:        q.Phone,
			TaxID:        q.TaxID,
			Subtotal:     q.Subtotal,
			Discount:     q.Discount,
			Tax:          q.Tax,
			Total:        q.Total,
			SaleType:     q.ServiceType,
			PaymentState: models.PaymentPending,
			Notes:        q.Notes,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		now := time.Now()
		res := tx.Model(&models.Quote{}).
			Where("id = ? AND state = ?", id, models.QuoteActive).
			Updates(map[string]any{
				"state":                models.QuoteConverted,
				"converted_invoice_id": inv.ID,
				"converted_at":         now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// a concurrent conversion won; discard our invoice
			return ErrInvalidStateTransition
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func exists(db *gorm.DB, model any, id uint) bool {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Limit(1).Count(&count).Error; err != nil {
		return false
	}
	return count > 0
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
