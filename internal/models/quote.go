package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteState is the persisted quote lifecycle state. EXPIRED is derived at
// read time (expiration date in the past while still ACTIVE) and never stored.
type QuoteState string

const (
	QuoteActive    QuoteState = "ACTIVE"
	QuoteConverted QuoteState = "CONVERTED"
	QuoteAnnulled  QuoteState = "ANNULLED"
	QuoteExpired   QuoteState = "EXPIRED"
)

// Quote is a priced, time-bounded offer. ConvertedInvoiceID and ConvertedAt
// are set together, and only when State is CONVERTED.
type Quote struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ClientID   uint       `gorm:"not null;index" json:"client_id"`
	Client     Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	EmployeeID uint       `gorm:"not null;index" json:"employee_id"`
	Employee   Employee   `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`

	// Snapshot of client contact data at quoting time.
	Address string `gorm:"size:200" json:"address,omitempty"`
	Phone   string `gorm:"size:15" json:"phone,omitempty"`
	TaxID   string `gorm:"size:20" json:"tax_id,omitempty"`

	Subtotal decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"subtotal"`
	Discount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount"`
	Tax      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"tax"`
	Total    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total"`

	ServiceType SaleType   `gorm:"size:20;not null" json:"service_type"`
	State       QuoteState `gorm:"size:20;not null;default:'ACTIVE'" json:"state"`
	Notes       string     `gorm:"size:500" json:"notes,omitempty"`

	ConvertedInvoiceID *uint      `json:"converted_invoice_id,omitempty"`
	ConvertedAt        *time.Time `json:"converted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveState reports EXPIRED for quotes still ACTIVE past their expiration
// date. The stored state is left untouched.
func (q *Quote) EffectiveState(now time.Time) QuoteState {
	if q.State == QuoteActive && q.ExpiresAt != nil && q.ExpiresAt.Before(truncateToDay(now)) {
		return QuoteExpired
	}
	return q.State
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
