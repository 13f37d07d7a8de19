package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleType classifies an invoice (and the service type of a quote).
type SaleType string

const (
	SaleDirect      SaleType = "SALE"
	SaleFabrication SaleType = "FABRICATION"
	SaleRepair      SaleType = "REPAIR"
)

// PaymentState is the invoice payment lifecycle state.
type PaymentState string

const (
	PaymentPending   PaymentState = "PENDING"
	PaymentPaid      PaymentState = "PAID"
	PaymentCancelled PaymentState = "CANCELLED"
)

// ItemKind tags an invoice line with the catalog table it references.
type ItemKind string

const (
	ItemJewel    ItemKind = "JEWEL"
	ItemService  ItemKind = "SERVICE"
	ItemMaterial ItemKind = "MATERIAL"
	ItemSupply   ItemKind = "SUPPLY"
)

// Invoice is a binding, payable sales document. Lines and the optional work
// order are owned by the invoice and cannot outlive it.
type Invoice struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	ClientID   uint     `gorm:"not null;index" json:"client_id"`
	Client     Client   `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	EmployeeID uint     `gorm:"not null;index" json:"employee_id"`
	Employee   Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`

	Address string `gorm:"size:200" json:"address,omitempty"`
	Phone   string `gorm:"size:15" json:"phone,omitempty"`
	TaxID   string `gorm:"size:20" json:"tax_id,omitempty"`

	Subtotal decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	Discount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount"`
	Tax      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"tax"`
	Total    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`

	SaleType     SaleType     `gorm:"size:20;not null;default:'SALE'" json:"sale_type"`
	PaymentState PaymentState `gorm:"size:20;not null;default:'PENDING'" json:"payment_state"`
	// PaymentMethod and PaidAt are set together when the invoice is paid.
	PaymentMethod string     `gorm:"size:50" json:"payment_method,omitempty"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	Notes         string     `gorm:"size:500" json:"notes,omitempty"`

	Lines     []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`
	WorkOrder *WorkOrder    `gorm:"foreignKey:InvoiceID" json:"work_order,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InvoiceLine prices one catalog item on an invoice. ItemID is scoped by Kind
// (jewel, service, material or supply id).
type InvoiceLine struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	InvoiceID    uint            `gorm:"not null;index" json:"invoice_id"`
	Kind         ItemKind        `gorm:"size:20;not null" json:"kind"`
	ItemID       uint            `gorm:"not null" json:"item_id"`
	Description  string          `gorm:"size:300" json:"description"`
	Quantity     int             `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"unit_price"`
	LineDiscount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"line_discount"`
}

// LineTotal is quantity*unit price minus the line discount, floored at zero.
func (l *InvoiceLine) LineTotal() decimal.Decimal {
	t := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))).Sub(l.LineDiscount)
	if t.IsNegative() {
		return decimal.Zero
	}
	return t
}
