package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
)

// reportHour is the local hour at which yesterday is checked
const reportHour = 1

// IncompleteDay is a day left with an unpaired or malformed record
type IncompleteDay struct {
	CompanyID    string
	EmployeeID   string
	EmployeeName string
	Date         string
	RecordIDs    []string
}

type TimesheetJobs struct {
	employeeRepo     employee.EmployeeRepository
	timesheetService timesheet.TimesheetService
	defaultLoc       *time.Location
	now              func() time.Time
}

func NewTimesheetJobs(employeeRepo employee.EmployeeRepository, timesheetService timesheet.TimesheetService, defaultLoc *time.Location) *TimesheetJobs {
	return &TimesheetJobs{
		employeeRepo:     employeeRepo,
		timesheetService: timesheetService,
		defaultLoc:       defaultLoc,
		now:              time.Now,
	}
}

func (j *TimesheetJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("report_incomplete_days", time.Hour, j.ReportIncompleteDays)
}

// ReportIncompleteDays warns about every incomplete day found by IncompleteDays.
func (j *TimesheetJobs) ReportIncompleteDays(ctx context.Context) error {
	days, err := j.IncompleteDays(ctx)
	for _, day := range days {
		slog.Warn("incomplete timesheet day",
			"company_id", day.CompanyID,
			"employee_id", day.EmployeeID,
			"employee_name", day.EmployeeName,
			"date", day.Date,
			"record_count", len(day.RecordIDs),
		)
	}
	if len(days) > 0 {
		slog.Info("incomplete days reported", "count", len(days))
	}
	return err
}

// IncompleteDays checks yesterday for each active employee whose local time
// is currently within reportHour. Hourly runs therefore visit every
// timezone once a day.
func (j *TimesheetJobs) IncompleteDays(ctx context.Context) ([]IncompleteDay, error) {
	employees, err := j.employeeRepo.ListAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	now := j.now()
	days := make([]IncompleteDay, 0)
	failed := 0

	for _, emp := range employees {
		local := now.In(emp.Location(j.defaultLoc))
		if local.Hour() != reportHour {
			continue
		}

		// Calendar dates are carried as UTC midnights, like parsed request dates
		yesterday := time.Date(local.Year(), local.Month(), local.Day()-1, 0, 0, 0, 0, time.UTC)

		report, err := j.timesheetService.BuildForEmployee(ctx, emp, yesterday, yesterday)
		if err != nil {
			slog.Warn("failed to check yesterday's timesheet", "employee_id", emp.ID, "error", err)
			failed++
			continue
		}

		for _, day := range report.PerDay {
			if !day.Incomplete {
				continue
			}
			days = append(days, IncompleteDay{
				CompanyID:    emp.CompanyID,
				EmployeeID:   emp.ID,
				EmployeeName: emp.FullName,
				Date:         day.Date,
				RecordIDs:    day.RecordIDs,
			})
		}
	}

	if failed > 0 {
		return days, fmt.Errorf("failed to check %d employee timesheets", failed)
	}
	return days, nil
}
