package payroll

import (
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

// CurrencyPlaces is the precision of every payment amount
const CurrencyPlaces = 2

// ValidateInput fails fast on a non-positive rate or an inverted date range.
func ValidateInput(hourlyRate decimal.Decimal, start, end time.Time) error {
	if !hourlyRate.IsPositive() {
		return &InvalidInputError{Field: "hourly_rate", Reason: "must be greater than zero"}
	}
	if start.After(end) {
		return &InvalidInputError{Field: "end_date", Reason: "must not be before start_date"}
	}
	return nil
}

// Calculate multiplies the report's total hours by the hourly rate and
// rounds half away from zero to cents. Callers validate the rate first.
func Calculate(employeeID string, hourlyRate decimal.Decimal, report timesheet.RangeReport) PayrollCalculation {
	payment := decimal.NewFromFloat(report.TotalHours).Mul(hourlyRate).Round(CurrencyPlaces)

	return PayrollCalculation{
		EmployeeID:    employeeID,
		EmployeeName:  report.EmployeeName,
		TotalHours:    report.TotalHours,
		HourlyRate:    hourlyRate,
		TotalPayment:  payment,
		SourceRecords: report.SourceRecordIDs(),
	}
}

// Failed builds the zero row reported for an employee whose calculation could not run.
func Failed(employeeID, employeeName string, hourlyRate decimal.Decimal, err error) PayrollCalculation {
	msg := err.Error()
	return PayrollCalculation{
		EmployeeID:    employeeID,
		EmployeeName:  employeeName,
		HourlyRate:    hourlyRate,
		TotalPayment:  decimal.Zero,
		SourceRecords: []string{},
		Error:         &msg,
	}
}

// Summarize totals the rows of a batch. Failed rows add nothing.
func Summarize(start, end string, rows []PayrollCalculation) BatchResult {
	result := BatchResult{
		Start:      start,
		End:        end,
		GrandTotal: decimal.Zero,
		Rows:       rows,
	}
	for _, row := range rows {
		if row.Error != nil {
			result.Failed++
			continue
		}
		result.TotalHours += row.TotalHours
		result.GrandTotal = result.GrandTotal.Add(row.TotalPayment)
	}
	return result
}
