package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/diewo77/jewelry-billing/internal/models"
	"github.com/diewo77/jewelry-billing/internal/validation"
)

// WorkOrderService owns the fabrication/repair order lifecycle.
type WorkOrderService struct {
	DB *gorm.DB
}

func NewWorkOrderService(db *gorm.DB) *WorkOrderService { return &WorkOrderService{DB: db} }

// legal transitions: PENDING -> IN_PROGRESS -> COMPLETED, and any open state
// may be cancelled. COMPLETED and CANCELLED are terminal.
var orderTransitions = map[models.WorkOrderState][]models.WorkOrderState{
	models.OrderPending:    {models.OrderInProgress, models.OrderCancelled},
	models.OrderInProgress: {models.OrderCompleted, models.OrderCancelled},
}

func orderTransitionAllowed(from, to models.WorkOrderState) bool {
	for _, t := range orderTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Get loads one work order.
func (s *WorkOrderService) Get(ctx context.Context, id uint) (*models.WorkOrder, error) {
	var o models.WorkOrder
	if err := s.DB.WithContext(ctx).First(&o, id).Error; err != nil {
		return nil, wrapLookupErr(err)
	}
	return &o, nil
}

// List returns work orders, optionally filtered by state, invoice or assigned
// employee.
func (s *WorkOrderService) List(ctx context.Context, state models.WorkOrderState, invoiceID, employeeID uint) ([]models.WorkOrder, error) {
	db := s.DB.WithContext(ctx)
	if state != "" {
		db = db.Where("state = ?", state)
	}
	if invoiceID != 0 {
		db = db.Where("invoice_id = ?", invoiceID)
	}
	if employeeID != 0 {
		db = db.Where("employee_id = ?", employeeID)
	}
	var orders []models.WorkOrder
	if err := db.Order("created_at desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateState applies a lifecycle transition, optionally replacing the
// description note. Illegal transitions fail with ErrInvalidStateTransition
// and mutate nothing.
func (s *WorkOrderService) UpdateState(ctx context.Context, id uint, state models.WorkOrderState, note string) (*models.WorkOrder, error) {
	switch state {
	case models.OrderPending, models.OrderInProgress, models.OrderCompleted, models.OrderCancelled:
	default:
		return nil, &ValidationError{Violations: validation.Violations{"state": "invalid"}}
	}
	db := s.DB.WithContext(ctx)
	var o models.WorkOrder
	if err := db.First(&o, id).Error; err != nil {
		return nil, wrapLookupErr(err)
	}
	if !orderTransitionAllowed(o.State, state) {
		return nil, ErrInvalidStateTransition
	}
	updates := map[string]any{"state": state}
	if note != "" {
		updates["description"] = note
	}
	// guard on the previous state so concurrent updates serialize cleanly
	res := db.Model(&models.WorkOrder{}).
		Where("id = ? AND state = ?", id, o.State).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidStateTransition
	}
	o.State = state
	if note != "" {
		o.Description = note
	}
	return &o, nil
}
