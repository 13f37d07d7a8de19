package services

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// unique in-memory DB per test name to avoid leakage via shared cache
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = db.AutoMigrate(
		&models.EmployeeProfile{}, &models.Employee{}, &models.Client{},
		&models.Supplier{}, &models.Service{}, &models.StockJewel{},
		&models.StockMaterial{}, &models.StockSupply{},
		&models.Quote{}, &models.Invoice{}, &models.InvoiceLine{}, &models.WorkOrder{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

// seedParties creates one client and one employee and returns their ids.
func seedParties(t *testing.T, db *gorm.DB) (uint, uint) {
	profile := models.EmployeeProfile{Profile: "Sales", Role: "seller"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	emp := models.Employee{
		ProfileID: profile.ID, FirstName: "Maria", LastName: "Lopez",
		Username: "mlopez", PasswordHash: "x",
	}
	if err := db.Create(&emp).Error; err != nil {
		t.Fatalf("create employee: %v", err)
	}
	client := models.Client{
		IdentityNumber: "0801199901234", FirstName: "Carlos", LastName: "Mejia",
	}
	if err := db.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	return client.ID, emp.ID
}

func seedSupplier(t *testing.T, db *gorm.DB) uint {
	s := models.Supplier{Name: "Goldsmith Supplies Co"}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create supplier: %v", err)
	}
	return s.ID
}

func seedMaterial(t *testing.T, db *gorm.DB, name string, onHand int, cost string) uint {
	m := models.StockMaterial{
		SupplierID: seedSupplier(t, db), Name: name,
		QuantityOnHand: onHand, Cost: dec(cost),
	}
	if err := db.Create(&m).Error; err != nil {
		t.Fatalf("create material: %v", err)
	}
	return m.ID
}

func seedService(t *testing.T, db *gorm.DB, name, basePrice string) uint {
	s := models.Service{Name: name, BasePrice: dec(basePrice)}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create service: %v", err)
	}
	return s.ID
}

func seedJewel(t *testing.T, db *gorm.DB, name, salePrice string) uint {
	j := models.StockJewel{Name: name, SalePrice: dec(salePrice)}
	if err := db.Create(&j).Error; err != nil {
		t.Fatalf("create jewel: %v", err)
	}
	return j.ID
}
