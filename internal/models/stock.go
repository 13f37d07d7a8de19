package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier of raw materials and supplies.
type Supplier struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:50;not null" json:"name"`
	Phone   string `gorm:"size:15" json:"phone,omitempty"`
	Address string `gorm:"size:100" json:"address,omitempty"`
}

// StockMaterial is a depletable raw material (gold, stones, ...).
// QuantityOnHand is mutated only by the inventory ledger.
type StockMaterial struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SupplierID     uint            `gorm:"not null;index" json:"supplier_id"`
	Supplier       Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Name           string          `gorm:"size:50;not null" json:"name"`
	MaterialType   string          `gorm:"size:50" json:"material_type,omitempty"`
	Weight         decimal.Decimal `gorm:"type:decimal(18,2)" json:"weight"`
	Karats         decimal.Decimal `gorm:"type:decimal(18,2)" json:"karats"`
	Purity         string          `gorm:"size:20" json:"purity,omitempty"`
	StoneType      string          `gorm:"size:50" json:"stone_type,omitempty"`
	Color          string          `gorm:"size:30" json:"color,omitempty"`
	Dimensions     string          `gorm:"size:50" json:"dimensions,omitempty"`
	QuantityOnHand int             `gorm:"not null;default:0" json:"quantity_on_hand"`
	Description    string          `gorm:"size:200" json:"description,omitempty"`
	Cost           decimal.Decimal `gorm:"type:decimal(18,2)" json:"cost"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// StockSupply is a depletable consumable (polish, solder, boxes, ...).
// Supplies may carry an expiration date when ExpiryTracked is set.
type StockSupply struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	SupplierID     uint            `gorm:"not null;index" json:"supplier_id"`
	Supplier       Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Name           string          `gorm:"size:50;not null" json:"name"`
	SupplyType     string          `gorm:"size:50" json:"supply_type,omitempty"`
	Category       string          `gorm:"size:50" json:"category,omitempty"`
	QuantityOnHand int             `gorm:"not null;default:0" json:"quantity_on_hand"`
	Unit           string          `gorm:"size:20" json:"unit,omitempty"`
	Description    string          `gorm:"size:200" json:"description,omitempty"`
	Cost           decimal.Decimal `gorm:"type:decimal(18,2)" json:"cost"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	ExpiryTracked  bool            `gorm:"not null;default:false" json:"expiry_tracked"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
