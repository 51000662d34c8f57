package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
)

type TimesheetServiceImpl struct {
	timerecord.TimeRecordRepository
	employee.EmployeeRepository
	defaultLoc *time.Location
}

func NewTimesheetService(timeRecordRepository timerecord.TimeRecordRepository, employeeRepository employee.EmployeeRepository, defaultLoc *time.Location) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		TimeRecordRepository: timeRecordRepository,
		EmployeeRepository:   employeeRepository,
		defaultLoc:           defaultLoc,
	}
}

// GetReport implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetReport(ctx context.Context, req timesheet.ReportRequest) (timesheet.RangeReport, error) {
	if err := req.Validate(true); err != nil {
		return timesheet.RangeReport{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.RangeReport{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, claims.CompanyID)
	if err != nil {
		return timesheet.RangeReport{}, err
	}

	return s.BuildForEmployee(ctx, emp, req.Start, req.End)
}

// GetMyReport implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetMyReport(ctx context.Context, req timesheet.ReportRequest) (timesheet.RangeReport, error) {
	if err := req.Validate(false); err != nil {
		return timesheet.RangeReport{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return timesheet.RangeReport{}, err
	}

	employeeID, err := claims.RequireEmployee()
	if err != nil {
		return timesheet.RangeReport{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, claims.CompanyID)
	if err != nil {
		return timesheet.RangeReport{}, err
	}

	return s.BuildForEmployee(ctx, emp, req.Start, req.End)
}

// BuildForEmployee implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) BuildForEmployee(ctx context.Context, emp employee.Employee, start, end time.Time) (timesheet.RangeReport, error) {
	loc := emp.Location(s.defaultLoc)
	from, to := timesheet.LocalRange(start, end, loc)

	records, err := s.TimeRecordRepository.ListByEmployeeAndRange(ctx, emp.ID, emp.CompanyID, from.UTC(), to.UTC())
	if err != nil {
		return timesheet.RangeReport{}, fmt.Errorf("failed to list time records of employee %s: %w", emp.ID, err)
	}

	report := timesheet.BuildReport(emp.ID, start, end, loc, records)
	report.EmployeeName = emp.FullName
	return report, nil
}
