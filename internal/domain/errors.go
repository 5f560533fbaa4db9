package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrConflict     = errors.New("conflict")
)

// ValidationError reports a missing or out-of-domain input. It is always
// detected before any mutation is performed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// ValidateMonth rejects months outside 1..12.
func ValidateMonth(month int) error {
	if month < 1 || month > 12 {
		return NewValidationError("month", fmt.Sprintf("must be between 1 and 12, got %d", month))
	}
	return nil
}

// ValidateYear rejects years that cannot be real dues periods.
func ValidateYear(year int) error {
	if year < 2000 || year > 9999 {
		return NewValidationError("year", fmt.Sprintf("out of range: %d", year))
	}
	return nil
}

// ValidateAmount rejects missing, zero or negative monetary amounts.
func ValidateAmount(amount int64) error {
	if amount <= 0 {
		return NewValidationError("amount", "must be a positive integer in the smallest currency unit")
	}
	return nil
}
