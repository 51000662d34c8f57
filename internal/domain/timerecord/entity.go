package timerecord

import (
	"time"
)

type RecordType string

const (
	TypeIn  RecordType = "in"
	TypeOut RecordType = "out"
)

func (t RecordType) IsValid() bool {
	return t == TypeIn || t == TypeOut
}

// Next returns the type expected after t in a well-formed day.
func (t RecordType) Next() RecordType {
	if t == TypeIn {
		return TypeOut
	}
	return TypeIn
}

// TimeRecord is a single clock-in or clock-out event.
// Timestamp is always stored in UTC; local calendar dates are derived with
// the employee's timezone.
type TimeRecord struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	Type          RecordType
	Timestamp     time.Time
	Latitude      *float64
	Longitude     *float64
	PhotoURL      *string
	Justification *string
	Corrected     bool
	CorrectedBy   *string
	CreatedBy     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO / Join
	EmployeeName *string
}
