package http

import (
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	GetReport(w http.ResponseWriter, r *http.Request)
	GetMyReport(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

func parseReportRequest(r *http.Request) timesheet.ReportRequest {
	query := r.URL.Query()
	return timesheet.ReportRequest{
		EmployeeID: query.Get("employee_id"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}
}

// GetReport handles GET /timesheets?employee_id=&start_date=&end_date=
func (h *timesheetHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetReport(r.Context(), parseReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMyReport handles GET /timesheets/me?start_date=&end_date=
func (h *timesheetHandlerImpl) GetMyReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetMyReport(r.Context(), parseReportRequest(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
