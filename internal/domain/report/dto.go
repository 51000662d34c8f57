package report

import (
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
)

type TimesheetExportRequest struct {
	timesheet.ReportRequest
	Format string `json:"format"` // pdf, xlsx
}

type PayrollExportRequest struct {
	payroll.BatchCalculateRequest
	Format string `json:"format"` // pdf, xlsx
}

// File is a rendered document ready to be sent as an attachment
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}
