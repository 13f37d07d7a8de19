package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/models"
)

// ItemRef identifies one catalog item across the four stock tables: the kind
// tag selects the table, ID is scoped to it.
type ItemRef struct {
	Kind models.ItemKind
	ID   uint
}

// CatalogItem is the resolved pricing view of a catalog entry.
type CatalogItem struct {
	Name  string
	Price decimal.Decimal
}

// CatalogStore resolves item references against the catalog tables. It is
// injected into the billing services so tests can run it on their own DB.
type CatalogStore struct {
	DB *gorm.DB
}

func NewCatalogStore(db *gorm.DB) *CatalogStore { return &CatalogStore{DB: db} }

// ResolveItem looks up the referenced item and returns its display name and
// list price. ErrNotFound when the id is unknown for the kind.
func (c *CatalogStore) ResolveItem(ctx context.Context, ref ItemRef) (CatalogItem, error) {
	return resolveItem(c.DB.WithContext(ctx), ref)
}

func resolveItem(tx *gorm.DB, ref ItemRef) (CatalogItem, error) {
	switch ref.Kind {
	case models.ItemJewel:
		var j models.StockJewel
		if err := tx.First(&j, ref.ID).Error; err != nil {
			return CatalogItem{}, wrapLookupErr(err)
		}
		return CatalogItem{Name: j.Name, Price: j.SalePrice}, nil
	case models.ItemService:
		var s models.Service
		if err := tx.First(&s, ref.ID).Error; err != nil {
			return CatalogItem{}, wrapLookupErr(err)
		}
		return CatalogItem{Name: s.Name, Price: s.BasePrice}, nil
	case models.ItemMaterial:
		var m models.StockMaterial
		if err := tx.First(&m, ref.ID).Error; err != nil {
			return CatalogItem{}, wrapLookupErr(err)
		}
		return CatalogItem{Name: m.Name, Price: m.Cost}, nil
	case models.ItemSupply:
		var s models.StockSupply
		if err := tx.First(&s, ref.ID).Error; err != nil {
			return CatalogItem{}, wrapLookupErr(err)
		}
		return CatalogItem{Name: s.Name, Price: s.Cost}, nil
	default:
		return CatalogItem{}, ErrNotFound
	}
}

func wrapLookupErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
