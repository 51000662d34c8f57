package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/postgresql"
	authservice "github.com/cmlabs-hris/ponto-backend-go/internal/service/auth"
)

type EmployeeServiceImpl struct {
	tx              postgresql.Transactor
	employeeRepo    employee.EmployeeRepository
	userRepo        user.UserRepository
	auditService    audit.AuditService
	defaultTimezone string
}

func NewEmployeeService(
	tx postgresql.Transactor,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	auditService audit.AuditService,
	defaultTimezone string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:              tx,
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		auditService:    auditService,
		defaultTimezone: defaultTimezone,
	}
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	var hireDate *string
	if emp.HireDate != nil {
		s := emp.HireDate.Format("2006-01-02")
		hireDate = &s
	}

	return employee.EmployeeResponse{
		ID:           emp.ID,
		UserID:       emp.UserID,
		EmployeeCode: emp.EmployeeCode,
		FullName:     emp.FullName,
		Email:        emp.Email,
		Position:     emp.Position,
		HourlyRate:   emp.HourlyRate,
		Timezone:     emp.Timezone,
		Status:       string(emp.Status),
		HireDate:     hireDate,
		CreatedAt:    emp.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:    emp.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByCode(ctx, claims.CompanyID, req.EmployeeCode, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee code existence: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
	}

	exists, err = s.employeeRepo.ExistsByEmail(ctx, claims.CompanyID, req.Email, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee email existence: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = s.defaultTimezone
	}

	var hireDate *time.Time
	if req.HireDate != nil && *req.HireDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.HireDate)
		hireDate = &parsed
	}

	newEmployee := employee.Employee{
		CompanyID:    claims.CompanyID,
		EmployeeCode: req.EmployeeCode,
		FullName:     req.FullName,
		Email:        req.Email,
		Position:     req.Position,
		HourlyRate:   req.HourlyRate,
		Timezone:     timezone,
		Status:       employee.StatusActive,
		HireDate:     hireDate,
	}

	var created employee.Employee
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Login account first so the employee row can reference it
		if req.Password != nil {
			taken, err := s.userRepo.ExistsByEmail(txCtx, req.Email)
			if err != nil {
				return fmt.Errorf("failed to check user email existence: %w", err)
			}
			if taken {
				return user.ErrUserEmailExists
			}

			hash, err := authservice.HashPassword(*req.Password)
			if err != nil {
				return err
			}

			account, err := s.userRepo.Create(txCtx, user.User{
				CompanyID:    claims.CompanyID,
				Email:        req.Email,
				PasswordHash: hash,
				Role:         user.Role(req.Role),
			})
			if err != nil {
				return fmt.Errorf("failed to create user account: %w", err)
			}
			newEmployee.UserID = &account.ID
		}

		created, err = s.employeeRepo.Create(txCtx, newEmployee)
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		return s.auditService.Record(txCtx, audit.ActionEmployeeCreate, audit.EntityEmployee, created.ID, nil, mapEmployeeToResponse(created))
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("employee created", "employee_id", created.ID, "company_id", created.CompanyID, "with_account", created.UserID != nil)

	return mapEmployeeToResponse(created), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(emp), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter, claims.CompanyID)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, mapEmployeeToResponse(emp))
	}

	totalPages, showing := utils.Pagination(filter.Page, filter.Limit, total)

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Email != nil && *req.Email != current.Email {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, claims.CompanyID, *req.Email, &current.ID)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee email existence: %w", err)
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
	}

	updated := current
	if req.FullName != nil {
		updated.FullName = *req.FullName
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Position != nil {
		updated.Position = req.Position
	}
	if req.HourlyRate != nil {
		updated.HourlyRate = *req.HourlyRate
	}
	if req.Timezone != nil {
		updated.Timezone = *req.Timezone
	}
	if req.Status != nil {
		updated.Status = employee.EmploymentStatus(*req.Status)
	}

	return s.save(ctx, audit.ActionEmployeeUpdate, current, updated)
}

// Deactivate implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if !current.IsActive() {
		return employee.EmployeeResponse{}, employee.ErrEmployeeAlreadyInactive
	}

	updated := current
	updated.Status = employee.StatusInactive

	return s.save(ctx, audit.ActionEmployeeDisable, current, updated)
}

// save persists updated and audits the change in one transaction
func (s *EmployeeServiceImpl) save(ctx context.Context, action string, before, updated employee.Employee) (employee.EmployeeResponse, error) {
	var saved employee.Employee
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.employeeRepo.Update(txCtx, updated)
		if err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		return s.auditService.Record(txCtx, action, audit.EntityEmployee, saved.ID, mapEmployeeToResponse(before), mapEmployeeToResponse(saved))
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapEmployeeToResponse(saved), nil
}
