package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/validation"
)

// EmployeeService manages the employee registry. Passwords are stored only as
// bcrypt hashes; there is no session or login surface in this core.
type EmployeeService struct {
	DB *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService { return &EmployeeService{DB: db} }

type CreateEmployeeInput struct {
	ProfileID uint            `json:"profile_id"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Username  string          `json:"username"`
	Password  string          `json:"password"`
	Phone     string          `json:"phone"`
	Email     string          `json:"email"`
	Salary    decimal.Decimal `json:"salary"`
}

// Create validates the input, hashes the password and stores the employee.
func (s *EmployeeService) Create(ctx context.Context, in CreateEmployeeInput) (*models.Employee, error) {
	db := s.DB.WithContext(ctx)
	v := validation.Violations{}
	validation.Required("first_name", in.FirstName, v)
	validation.Required("last_name", in.LastName, v)
	validation.Required("username", in.Username, v)
	if len(in.Password) < 8 {
		v["password"] = "below_minimum"
	}
	if in.ProfileID == 0 || !exists(db, &models.EmployeeProfile{}, in.ProfileID) {
		v["profile_id"] = "unknown"
	}
	if in.Salary.IsNegative() {
		v["salary"] = "must_not_be_negative"
	}
	if v.Empty() {
		var count int64
		db.Model(&models.Employee{}).Where("username = ?", in.Username).Count(&count)
		if count > 0 {
			v["username"] = "taken"
		}
	}
	if !v.Empty() {
		return nil, &ValidationError{Violations: v}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	e := models.Employee{
		ProfileID:    in.ProfileID,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		PasswordHash: string(hash),
		Phone:        in.Phone,
		Email:        in.Email,
		Salary:       in.Salary,
	}
	if err := db.Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// CheckPassword compares a candidate against the stored hash.
func (s *EmployeeService) CheckPassword(ctx context.Context, username, password string) (*models.Employee, error) {
	var e models.Employee
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&e).Error; err != nil {
		return nil, wrapLookupErr(err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return nil, ErrNotFound
	}
	return &e, nil
}

// List returns employees with their profile preloaded.
func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	if err := s.DB.WithContext(ctx).Preload("Profile").Order("last_name, first_name").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}
