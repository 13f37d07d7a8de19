package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkOrderState is the fabrication/repair task lifecycle state.
type WorkOrderState string

const (
	OrderPending    WorkOrderState = "PENDING"
	OrderInProgress WorkOrderState = "IN_PROGRESS"
	OrderCompleted  WorkOrderState = "COMPLETED"
	OrderCancelled  WorkOrderState = "CANCELLED"
)

// WorkOrderKind mirrors the sale type that requires the order.
type WorkOrderKind string

const (
	OrderFabrication WorkOrderKind = "FABRICATION"
	OrderRepair      WorkOrderKind = "REPAIR"
)

// WorkOrder is a production or repair task linked to exactly one invoice.
type WorkOrder struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	InvoiceID   uint            `gorm:"not null;index" json:"invoice_id"`
	EmployeeID  uint            `gorm:"not null;index" json:"employee_id"`
	Employee    Employee        `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Kind        WorkOrderKind   `gorm:"size:20;not null" json:"kind"`
	Description string          `gorm:"size:500" json:"description,omitempty"`
	StartedAt   time.Time       `gorm:"autoCreateTime" json:"started_at"`
	EstimatedAt *time.Time      `json:"estimated_at,omitempty"`
	State       WorkOrderState  `gorm:"size:20;not null;default:'PENDING'" json:"state"`
	LaborCost   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"labor_cost"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
