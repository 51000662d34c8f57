package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

type ReportServiceImpl struct {
	timesheetService timesheet.TimesheetService
	payrollService   payroll.PayrollService
}

func NewReportService(timesheetService timesheet.TimesheetService, payrollService payroll.PayrollService) report.ReportService {
	return &ReportServiceImpl{
		timesheetService: timesheetService,
		payrollService:   payrollService,
	}
}

func parseFormat(value string) (export.Format, error) {
	format, err := export.ParseFormat(value)
	if err != nil {
		var errs validator.ValidationErrors
		errs.Add("format", "format must be one of: pdf, xlsx")
		return "", errs.Err()
	}
	return format, nil
}

// ExportTimesheet implements report.ReportService.
func (s *ReportServiceImpl) ExportTimesheet(ctx context.Context, req report.TimesheetExportRequest) (report.File, error) {
	format, err := parseFormat(req.Format)
	if err != nil {
		return report.File{}, err
	}

	rangeReport, err := s.timesheetService.GetReport(ctx, req.ReportRequest)
	if err != nil {
		return report.File{}, err
	}
	return renderTimesheet(format, rangeReport)
}

// ExportMyTimesheet implements report.ReportService.
func (s *ReportServiceImpl) ExportMyTimesheet(ctx context.Context, req report.TimesheetExportRequest) (report.File, error) {
	format, err := parseFormat(req.Format)
	if err != nil {
		return report.File{}, err
	}

	rangeReport, err := s.timesheetService.GetMyReport(ctx, req.ReportRequest)
	if err != nil {
		return report.File{}, err
	}
	return renderTimesheet(format, rangeReport)
}

// ExportPayroll implements report.ReportService.
func (s *ReportServiceImpl) ExportPayroll(ctx context.Context, req report.PayrollExportRequest) (report.File, error) {
	format, err := parseFormat(req.Format)
	if err != nil {
		return report.File{}, err
	}

	result, err := s.payrollService.CalculateAll(ctx, req.BatchCalculateRequest)
	if err != nil {
		return report.File{}, err
	}

	var buf bytes.Buffer
	if err := export.Payroll(&buf, format, result); err != nil {
		slog.Error("failed to render payroll export", "format", format, "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.File{
		Filename:    fmt.Sprintf("folha-de-pagamento_%s_%s%s", result.Start, result.End, format.Extension()),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}

func renderTimesheet(format export.Format, rangeReport timesheet.RangeReport) (report.File, error) {
	var buf bytes.Buffer
	if err := export.Timesheet(&buf, format, rangeReport); err != nil {
		slog.Error("failed to render timesheet export", "employee_id", rangeReport.EmployeeID, "format", format, "error", err)
		return report.File{}, fmt.Errorf("%w: %v", report.ErrReportGenerationFailed, err)
	}

	return report.File{
		Filename:    fmt.Sprintf("folha-de-ponto_%s_%s_%s%s", rangeReport.EmployeeID, rangeReport.Start, rangeReport.End, format.Extension()),
		ContentType: format.ContentType(),
		Data:        buf.Bytes(),
	}, nil
}
