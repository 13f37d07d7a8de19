package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/pricing"
	"github.com/diewo77/jewelry-billing/internal/validation"
)

// InvoiceService coordinates full invoice creation (header + lines + stock
// decrements + optional work order) as one transaction, and owns the invoice
// payment lifecycle.
type InvoiceService struct {
	DB        *gorm.DB
	Catalog   *CatalogStore
	Inventory *InventoryLedger
}

func NewInvoiceService(db *gorm.DB, catalog *CatalogStore, inventory *InventoryLedger) *InvoiceService {
	return &InvoiceService{DB: db, Catalog: catalog, Inventory: inventory}
}

type InvoiceLineInput struct {
	Kind         models.ItemKind `json:"kind"`
	ItemID       uint            `json:"item_id"`
	Description  string          `json:"description"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	LineDiscount decimal.Decimal `json:"line_discount"`
}

type WorkOrderInput struct {
	Kind        models.WorkOrderKind `json:"kind"`
	Description string               `json:"description"`
	EstimatedAt *time.Time           `json:"estimated_at"`
	LaborCost   decimal.Decimal      `json:"labor_cost"`
}

type CreateInvoiceInput struct {
	ClientID   uint            `json:"client_id"`
	EmployeeID uint            `json:"employee_id"`
	Address    string          `json:"address"`
	Phone      string          `json:"phone"`
	TaxID      string          `json:"tax_id"`
	SaleType   models.SaleType `json:"sale_type"`
	Notes      string          `json:"notes"`
	// Document-level discount. Totals are always recomputed server side;
	// client-supplied subtotal/tax/total are ignored.
	Discount  decimal.Decimal    `json:"discount"`
	Lines     []InvoiceLineInput `json:"lines"`
	WorkOrder *WorkOrderInput    `json:"work_order"`
}

func validItemKind(k models.ItemKind) bool {
	switch k {
	case models.ItemJewel, models.ItemService, models.ItemMaterial, models.ItemSupply:
		return true
	}
	return false
}

// CreateFull validates the header and every line, recomputes totals, and
// persists invoice, lines, stock decrements and the optional work order as a
// single transaction. Any failure, including insufficient stock, discards all
// writes from the call.
func (s *InvoiceService) CreateFull(ctx context.Context, in CreateInvoiceInput) (*models.Invoice, error) {
	db := s.DB.WithContext(ctx)

	v := validation.Violations{}
	if in.ClientID == 0 || !exists(db, &models.Client{}, in.ClientID) {
		v["client_id"] = "unknown"
	}
	if in.EmployeeID == 0 || !exists(db, &models.Employee{}, in.EmployeeID) {
		v["employee_id"] = "unknown"
	}
	if !validSaleType(in.SaleType) {
		v["sale_type"] = "invalid"
	}
	if len(in.Lines) == 0 {
		v["lines"] = "at_least_one_required"
	}
	if (in.SaleType == models.SaleFabrication || in.SaleType == models.SaleRepair) && in.WorkOrder == nil {
		v["work_order"] = "required_for_sale_type"
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}

	// Resolve every line against the catalog before pricing so unknown items
	// surface as NotFound rather than a half-validated transaction.
	priceLines := make([]pricing.Line, len(in.Lines))
	descriptions := make([]string, len(in.Lines))
	for i, l := range in.Lines {
		if !validItemKind(l.Kind) {
			v[lineField(i, "kind")] = "invalid"
			continue
		}
		item, err := s.Catalog.ResolveItem(ctx, ItemRef{Kind: l.Kind, ID: l.ItemID})
		if errors.Is(err, ErrNotFound) {
			v[lineField(i, "item_id")] = "unknown"
			continue
		} else if err != nil {
			return nil, err
		}
		descriptions[i] = l.Description
		if descriptions[i] == "" {
			descriptions[i] = item.Name
		}
		priceLines[i] = pricing.Line{Quantity: l.Quantity, UnitPrice: l.UnitPrice, LineDiscount: l.LineDiscount}
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	totals, err := pricing.ComputeTotals(priceLines, in.Discount)
	if err != nil {
		if pe, ok := err.(*pricing.Error); ok {
			return nil, &ValidationError{Violations: pe.Violations}
		}
		return nil, err
	}

	var inv models.Invoice
	err = db.Transaction(func(tx *gorm.DB) error {
		inv = models.Invoice{
			ClientID:     in.ClientID,
			EmployeeID:   in.EmployeeID,
			Address:      in.Address,
			Phone:        in.Phone,
			TaxID:        in.TaxID,
			Subtotal:     totals.Subtotal,
			Discount:     totals.Discount,
			Tax:          totals.Tax,
			Total:        totals.Total,
			SaleType:     in.SaleType,
			PaymentState: models.PaymentPending,
			Notes:        in.Notes,
		}
		if err := tx.Create(&inv).Error; err != nil {
			return err
		}
		for i, l := range in.Lines {
			line := models.InvoiceLine{
				InvoiceID:    inv.ID,
				Kind:         l.Kind,
				ItemID:       l.ItemID,
				Description:  descriptions[i],
				Quantity:     l.Quantity,
				UnitPrice:    l.UnitPrice,
				LineDiscount: l.LineDiscount,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			inv.Lines = append(inv.Lines, line)
			if err := s.Inventory.Decrement(tx, ItemRef{Kind: l.Kind, ID: l.ItemID}, l.Quantity); err != nil {
				return err
			}
		}
		if in.WorkOrder != nil {
			kind := in.WorkOrder.Kind
			if kind == "" {
				kind = models.WorkOrderKind(in.SaleType)
			}
			if kind != models.OrderFabrication && kind != models.OrderRepair {
				return &ValidationError{Violations: validation.Violations{"work_order.kind": "invalid"}}
			}
			order := models.WorkOrder{
				InvoiceID:   inv.ID,
				EmployeeID:  in.EmployeeID,
				Kind:        kind,
				Description: in.WorkOrder.Description,
				EstimatedAt: in.WorkOrder.EstimatedAt,
				State:       models.OrderPending,
				LaborCost:   in.WorkOrder.LaborCost,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			inv.WorkOrder = &order
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Get loads one invoice with its lines and work order.
func (s *InvoiceService) Get(ctx context.Context, id uint) (*models.Invoice, error) {
	var inv models.Invoice
	err := s.DB.WithContext(ctx).Preload("Lines").Preload("WorkOrder").First(&inv, id).Error
	if err != nil {
		return nil, wrapLookupErr(err)
	}
	return &inv, nil
}

// List returns invoices newest first, optionally filtered by payment state or
// client.
func (s *InvoiceService) List(ctx context.Context, state models.PaymentState, clientID uint) ([]models.Invoice, error) {
	db := s.DB.WithContext(ctx)
	if state != "" {
		db = db.Where("payment_state = ?", state)
	}
	if clientID != 0 {
		db = db.Where("client_id = ?", clientID)
	}
	var invs []models.Invoice
	if err := db.Preload("Lines").Order("created_at desc").Find(&invs).Error; err != nil {
		return nil, err
	}
	return invs, nil
}

// SetPaymentState applies a payment transition. PENDING -> PAID requires a
// payment method; PAID -> CANCELLED is the refund/void path; repeating the
// current state is an idempotent no-op; nothing leaves CANCELLED.
func (s *InvoiceService) SetPaymentState(ctx context.Context, id uint, state models.PaymentState, method string, paidAt *time.Time) (*models.Invoice, error) {
	db := s.DB.WithContext(ctx)
	var inv models.Invoice
	if err := db.First(&inv, id).Error; err != nil {
		return nil, wrapLookupErr(err)
	}
	if state == inv.PaymentState {
		return &inv, nil
	}
	switch state {
	case models.PaymentPaid:
		if inv.PaymentState != models.PaymentPending {
			return nil, ErrInvalidStateTransition
		}
		if method == "" {
			return nil, &ValidationError{Violations: validation.Violations{"payment_method": "required_when_paid"}}
		}
		when := time.Now()
		if paidAt != nil {
			when = *paidAt
		}
		inv.PaymentState = models.PaymentPaid
		inv.PaymentMethod = method
		inv.PaidAt = &when
	case models.PaymentCancelled:
		inv.PaymentState = models.PaymentCancelled
	case models.PaymentPending:
		return nil, ErrInvalidStateTransition
	default:
		return nil, &ValidationError{Violations: validation.Violations{"payment_state": "invalid"}}
	}
	if err := db.Save(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// Cancel voids an invoice with a reason note. Valid from PENDING and PAID;
// cancelling an already cancelled invoice is a no-op.
func (s *InvoiceService) Cancel(ctx context.Context, id uint, reason string) (*models.Invoice, error) {
	db := s.DB.WithContext(ctx)
	var inv models.Invoice
	if err := db.First(&inv, id).Error; err != nil {
		return nil, wrapLookupErr(err)
	}
	if inv.PaymentState == models.PaymentCancelled {
		return &inv, nil
	}
	if reason == "" {
		reason = "invoice cancelled"
	}
	inv.PaymentState = models.PaymentCancelled
	inv.Notes = reason
	if err := db.Save(&inv).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func lineField(i int, name string) string {
	return "lines[" + strconv.Itoa(i) + "]." + name
}
