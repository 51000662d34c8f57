package report

import "context"

// ReportService renders timesheets and payroll batches as downloadable files
type ReportService interface {
	// ExportTimesheet renders the timesheet of any employee of the company (admin)
	ExportTimesheet(ctx context.Context, req TimesheetExportRequest) (File, error)

	// ExportMyTimesheet renders the authenticated employee's own timesheet
	ExportMyTimesheet(ctx context.Context, req TimesheetExportRequest) (File, error)

	// ExportPayroll renders the payroll batch of every active employee (admin)
	ExportPayroll(ctx context.Context, req PayrollExportRequest) (File, error)
}
