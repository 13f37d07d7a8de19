package models

import "time"

// Client entity. IdentityNumber is the 13-digit national id; it is unique and
// immutable once set. TaxID (RTN) is optional, 14 digits when present.
type Client struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	IdentityNumber string `gorm:"size:20;unique;not null" json:"identity_number"`
	TaxID          string `gorm:"size:20" json:"tax_id,omitempty"`
	FirstName      string `gorm:"size:50;not null" json:"first_name"`
	LastName       string `gorm:"size:50;not null" json:"last_name"`
	Address        string `gorm:"size:100" json:"address,omitempty"`
	Email          string `gorm:"size:100" json:"email,omitempty"`
	Phone          string `gorm:"size:15" json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
