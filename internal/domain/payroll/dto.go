package payroll

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	EmployeeID string           `json:"employee_id"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"` // defaults to the employee's rate
	StartDate  string           `json:"start_date"`            // YYYY-MM-DD
	EndDate    string           `json:"end_date"`              // YYYY-MM-DD

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// Validate checks formats only; the range and rate rules live in ValidateInput.
func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	parseRange(&errs, r.StartDate, r.EndDate, &r.Start, &r.End)

	return errs.Err()
}

type BatchCalculateRequest struct {
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"` // overrides every employee's rate when set
	StartDate  string           `json:"start_date"`
	EndDate    string           `json:"end_date"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

func (r *BatchCalculateRequest) Validate() error {
	var errs validator.ValidationErrors
	parseRange(&errs, r.StartDate, r.EndDate, &r.Start, &r.End)
	return errs.Err()
}

func parseRange(errs *validator.ValidationErrors, startDate, endDate string, start, end *time.Time) {
	var ok bool
	if *start, ok = validator.IsValidDate(startDate); !ok {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}
	if *end, ok = validator.IsValidDate(endDate); !ok {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}
}
