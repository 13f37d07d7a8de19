package services

import (
	"errors"
	"fmt"

	"github.com/diewo77/jewelry-billing/internal/validation"
)

var (
	// ErrNotFound: the referenced client/employee/document/catalog item does not exist.
	ErrNotFound = errors.New("not_found")
	// ErrInvalidStateTransition: a lifecycle rule forbids the requested change.
	ErrInvalidStateTransition = errors.New("invalid_state_transition")
	// ErrInsufficientStock: a material/supply line asks for more than is on hand.
	ErrInsufficientStock = errors.New("insufficient_stock")
)

// ValidationError carries per-field violations for malformed input.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", map[string]string(e.Violations))
}

// AsValidation extracts a *ValidationError from err, if any.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
