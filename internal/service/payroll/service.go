package payroll

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	employeeRepo     employee.EmployeeRepository
	timesheetService timesheet.TimesheetService
	concurrency      int
}

func NewPayrollService(
	employeeRepo employee.EmployeeRepository,
	timesheetService timesheet.TimesheetService,
	concurrency int,
) payroll.PayrollService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PayrollServiceImpl{
		employeeRepo:     employeeRepo,
		timesheetService: timesheetService,
		concurrency:      concurrency,
	}
}

// Calculate implements payroll.PayrollService.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.PayrollCalculation, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayrollCalculation{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.PayrollCalculation{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, claims.CompanyID)
	if err != nil {
		return payroll.PayrollCalculation{}, err
	}

	rate := emp.HourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}
	if err := payroll.ValidateInput(rate, req.Start, req.End); err != nil {
		return payroll.PayrollCalculation{}, err
	}

	report, err := s.timesheetService.BuildForEmployee(ctx, emp, req.Start, req.End)
	if err != nil {
		return payroll.PayrollCalculation{}, err
	}

	return payroll.Calculate(emp.ID, rate, report), nil
}

// CalculateAll implements payroll.PayrollService.
func (s *PayrollServiceImpl) CalculateAll(ctx context.Context, req payroll.BatchCalculateRequest) (payroll.BatchResult, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResult{}, err
	}

	if req.HourlyRate != nil {
		if err := payroll.ValidateInput(*req.HourlyRate, req.Start, req.End); err != nil {
			return payroll.BatchResult{}, err
		}
	} else if req.Start.After(req.End) {
		return payroll.BatchResult{}, &payroll.InvalidInputError{Field: "end_date", Reason: "must not be before start_date"}
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return payroll.BatchResult{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx, claims.CompanyID)
	if err != nil {
		return payroll.BatchResult{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	// Each goroutine writes only rows[i]
	rows := make([]payroll.PayrollCalculation, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, emp := range employees {
		g.Go(func() error {
			rows[i] = s.calculateRow(gCtx, emp, req)
			return nil
		})
	}
	_ = g.Wait() // rows carry their own errors

	result := payroll.Summarize(req.StartDate, req.EndDate, rows)
	slog.Info("payroll batch calculated",
		"company_id", claims.CompanyID,
		"employees", len(rows),
		"failed", result.Failed,
		"grand_total", result.GrandTotal.StringFixed(payroll.CurrencyPlaces),
	)
	return result, nil
}

func (s *PayrollServiceImpl) calculateRow(ctx context.Context, emp employee.Employee, req payroll.BatchCalculateRequest) payroll.PayrollCalculation {
	rate := emp.HourlyRate
	if req.HourlyRate != nil {
		rate = *req.HourlyRate
	}
	if !rate.IsPositive() {
		slog.Warn("skipping employee without hourly rate", "employee_id", emp.ID)
		return payroll.Failed(emp.ID, emp.FullName, rate, payroll.ErrHourlyRateMissing)
	}

	report, err := s.timesheetService.BuildForEmployee(ctx, emp, req.Start, req.End)
	if err != nil {
		slog.Warn("failed to build timesheet for payroll", "employee_id", emp.ID, "error", err)
		return payroll.Failed(emp.ID, emp.FullName, rate, err)
	}

	return payroll.Calculate(emp.ID, rate, report)
}
