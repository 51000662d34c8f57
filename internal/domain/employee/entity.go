package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID           string
	CompanyID    string
	UserID       *string
	EmployeeCode string
	FullName     string
	Email        string
	Position     *string
	HourlyRate   decimal.Decimal
	Timezone     string
	Status       EmploymentStatus
	HireDate     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type EmploymentStatus string

const (
	StatusActive   EmploymentStatus = "active"
	StatusInactive EmploymentStatus = "inactive"
)

func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Location returns the employee's calendar timezone, or fallback when the
// stored zone cannot be loaded.
func (e *Employee) Location(fallback *time.Location) *time.Location {
	if e.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(e.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
