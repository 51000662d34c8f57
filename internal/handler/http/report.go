package http

import (
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
	"github.com/shopspring/decimal"
)

type ReportHandler interface {
	// Timesheet exports
	ExportTimesheet(w http.ResponseWriter, r *http.Request)
	ExportMyTimesheet(w http.ResponseWriter, r *http.Request)

	// Payroll batch export
	ExportPayroll(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// ExportTimesheet handles GET /reports/timesheet
func (h *reportHandlerImpl) ExportTimesheet(w http.ResponseWriter, r *http.Request) {
	req := report.TimesheetExportRequest{
		ReportRequest: parseReportRequest(r),
		Format:        r.URL.Query().Get("format"),
	}

	file, err := h.reportService.ExportTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Data)
}

// ExportMyTimesheet handles GET /reports/timesheet/me
func (h *reportHandlerImpl) ExportMyTimesheet(w http.ResponseWriter, r *http.Request) {
	req := report.TimesheetExportRequest{
		ReportRequest: parseReportRequest(r),
		Format:        r.URL.Query().Get("format"),
	}

	file, err := h.reportService.ExportMyTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Data)
}

// ExportPayroll handles GET /reports/payroll
func (h *reportHandlerImpl) ExportPayroll(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := report.PayrollExportRequest{
		BatchCalculateRequest: payroll.BatchCalculateRequest{
			StartDate: query.Get("start_date"),
			EndDate:   query.Get("end_date"),
		},
		Format: query.Get("format"),
	}

	if raw := query.Get("hourly_rate"); raw != "" {
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			response.ValidationError(w, map[string]string{"hourly_rate": "hourly_rate must be a decimal number"})
			return
		}
		req.HourlyRate = &rate
	}

	file, err := h.reportService.ExportPayroll(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, file.Filename, file.ContentType, file.Data)
}
