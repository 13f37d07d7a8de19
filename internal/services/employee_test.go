package services

import (
	"context"
	"errors"
	"testing"

	"github.com/diewo77/jewelry-billing/internal/models"
)

func TestEmployeeCreateHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	profile := models.EmployeeProfile{Profile: "Sales", Role: "seller"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	svc := NewEmployeeService(db)
	ctx := context.Background()

	e, err := svc.Create(ctx, CreateEmployeeInput{
		ProfileID: profile.ID, FirstName: "Maria", LastName: "Lopez",
		Username: "mlopez", Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.PasswordHash == "s3cret-pass" || e.PasswordHash == "" {
		t.Fatal("password stored in clear or empty")
	}

	if _, err := svc.CheckPassword(ctx, "mlopez", "s3cret-pass"); err != nil {
		t.Fatalf("check password: %v", err)
	}
	if _, err := svc.CheckPassword(ctx, "mlopez", "wrong"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("wrong password = %v, want ErrNotFound", err)
	}
}

func TestEmployeeCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	profile := models.EmployeeProfile{Profile: "Sales", Role: "seller"}
	if err := db.Create(&profile).Error; err != nil {
		t.Fatalf("create profile: %v", err)
	}
	svc := NewEmployeeService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateEmployeeInput{ProfileID: 99, Username: "x", Password: "short"})
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Violations["profile_id"] != "unknown" || ve.Violations["password"] != "below_minimum" || ve.Violations["first_name"] != "required" {
		t.Fatalf("unexpected violations: %v", ve.Violations)
	}

	// duplicate username
	in := CreateEmployeeInput{ProfileID: profile.ID, FirstName: "A", LastName: "B", Username: "dup", Password: "longenough"}
	if _, err := svc.Create(ctx, in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err = svc.Create(ctx, in)
	if ve, ok = AsValidation(err); !ok || ve.Violations["username"] != "taken" {
		t.Fatalf("expected username taken, got %v", err)
	}
}
