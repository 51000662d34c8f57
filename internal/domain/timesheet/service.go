package timesheet

import (
	"context"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
)

// TimesheetService turns stored time records into per-day and range reports
type TimesheetService interface {
	// GetReport builds the report of any employee of the company (admin)
	GetReport(ctx context.Context, req ReportRequest) (RangeReport, error)

	// GetMyReport builds the report of the authenticated employee
	GetMyReport(ctx context.Context, req ReportRequest) (RangeReport, error)

	// BuildForEmployee fetches the employee's records for the local dates
	// [start, end] and aggregates them. Used by payroll and scheduled jobs.
	BuildForEmployee(ctx context.Context, emp employee.Employee, start, end time.Time) (RangeReport, error)
}
