package timesheet

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

// MaxRangeDays bounds a single report request
const MaxRangeDays = 366

type ReportRequest struct {
	EmployeeID string `json:"employee_id"` // ignored for the authenticated employee's own report
	StartDate  string `json:"start_date"`  // YYYY-MM-DD
	EndDate    string `json:"end_date"`    // YYYY-MM-DD

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Validate parses the dates; requireEmployee is false when the employee comes from the token.
func (r *ReportRequest) Validate(requireEmployee bool) error {
	var errs validator.ValidationErrors

	if requireEmployee && validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}

	var okStart, okEnd bool
	if r.Start, okStart = validator.IsValidDate(r.StartDate); !okStart {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	if r.End, okEnd = validator.IsValidDate(r.EndDate); !okEnd {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	if okStart && okEnd {
		if r.Start.After(r.End) {
			errs.Add("end_date", "end_date must not be before start_date")
		} else if r.End.Sub(r.Start) >= MaxRangeDays*24*time.Hour {
			errs.Add("end_date", "date range must not exceed 366 days")
		}
	}

	return errs.Err()
}
