package payroll

import "github.com/shopspring/decimal"

// PayrollCalculation is the derived payment of one employee over a date range.
// It is never persisted.
type PayrollCalculation struct {
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  string          `json:"employee_name,omitempty"`
	TotalHours    float64         `json:"total_hours"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	TotalPayment  decimal.Decimal `json:"total_payment"`
	SourceRecords []string        `json:"source_records"`

	// Error is set on a batch row whose records could not be fetched
	Error *string `json:"error,omitempty"`
}

// BatchResult holds one row per active employee, in employee order.
type BatchResult struct {
	Start      string               `json:"start_date"`
	End        string               `json:"end_date"`
	TotalHours float64              `json:"total_hours"`
	GrandTotal decimal.Decimal      `json:"grand_total"`
	Failed     int                  `json:"failed"`
	Rows       []PayrollCalculation `json:"rows"`
}
