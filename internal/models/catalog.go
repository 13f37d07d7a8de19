package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is a priced catalog entry for labor (engraving, cleaning, etc.).
type Service struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:50;not null" json:"name"`
	Description string          `gorm:"size:200" json:"description,omitempty"`
	BasePrice   decimal.Decimal `gorm:"type:decimal(18,2)" json:"base_price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// StockJewel is a finished piece. Jewels are catalog items with a sale price;
// quantity is not depleted by billing in this core.
type StockJewel struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:50;not null" json:"name"`
	Type        string          `gorm:"size:50" json:"type,omitempty"`
	Weight      decimal.Decimal `gorm:"type:decimal(18,2)" json:"weight"`
	Material    string          `gorm:"size:50" json:"material,omitempty"`
	Description string          `gorm:"size:200" json:"description,omitempty"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,2)" json:"sale_price"`
	Cost        decimal.Decimal `gorm:"type:decimal(18,2)" json:"cost"`
	ImageURL    string          `gorm:"size:200" json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
