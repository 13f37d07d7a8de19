package services

import (
	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/models"
)

// InventoryLedger applies stock decrements for billed material and supply
// lines. Decrements run as a single conditional UPDATE inside the caller's
// transaction, so the stored quantity can never go negative and concurrent
// sales of the same item serialize on the row.
type InventoryLedger struct{}

func NewInventoryLedger() *InventoryLedger { return &InventoryLedger{} }

// Decrement reduces quantity-on-hand for the referenced item by qty. Returns
// ErrInsufficientStock when fewer than qty units are on hand (the row is left
// untouched), ErrNotFound when the item does not exist. Only materials and
// supplies are depletable; other kinds are a no-op.
func (l *InventoryLedger) Decrement(tx *gorm.DB, ref ItemRef, qty int) error {
	var model any
	switch ref.Kind {
	case models.ItemMaterial:
		model = &models.StockMaterial{}
	case models.ItemSupply:
		model = &models.StockSupply{}
	default:
		return nil
	}
	res := tx.Model(model).
		Where("id = ? AND quantity_on_hand >= ?", ref.ID, qty).
		UpdateColumn("quantity_on_hand", gorm.Expr("quantity_on_hand - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing row from a short one.
		if _, err := resolveItem(tx, ref); err != nil {
			return err
		}
		return ErrInsufficientStock
	}
	return nil
}
