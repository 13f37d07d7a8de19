package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmployeeProfile groups employees by profile and role labels.
type EmployeeProfile struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Profile string `gorm:"size:50;not null" json:"profile"`
	Role    string `gorm:"size:50;not null" json:"role"`
}

// Employee owns the documents it creates. PasswordHash is opaque and never
// serialized in reads.
type Employee struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	ProfileID    uint            `gorm:"not null;index" json:"profile_id"`
	Profile      EmployeeProfile `gorm:"foreignKey:ProfileID" json:"profile,omitempty"`
	FirstName    string          `gorm:"size:50;not null" json:"first_name"`
	LastName     string          `gorm:"size:50;not null" json:"last_name"`
	Username     string          `gorm:"size:50;not null;index" json:"username"`
	PasswordHash string          `gorm:"size:100;not null" json:"-"`
	Phone        string          `gorm:"size:15" json:"phone,omitempty"`
	Email        string          `gorm:"size:100" json:"email,omitempty"`
	Salary       decimal.Decimal `gorm:"type:decimal(18,2)" json:"salary"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
