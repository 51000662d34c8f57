package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput      = errors.New("invalid payroll input")
	ErrHourlyRateMissing = errors.New("employee has no hourly rate configured")
)

// InvalidInputError describes which payroll parameter was rejected.
// It matches ErrInvalidInput with errors.Is.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}
