package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/export"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Payroll input errors name the rejected field
	var inputErr *payroll.InvalidInputError
	if errors.As(err, &inputErr) {
		BadRequest(w, err.Error(), map[string]string{inputErr.Field: inputErr.Reason})
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrCurrentPasswordMismatch):
		BadRequest(w, err.Error(), map[string]string{"current_password": err.Error()})
	case errors.Is(err, auth.ErrEmployeeProfileRequired):
		Forbidden(w, "No employee profile is linked to this account")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, employee.ErrEmployeeAlreadyInactive):
		Conflict(w, "Employee is already inactive")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Time record domain errors
	case errors.Is(err, timerecord.ErrTimeRecordNotFound):
		NotFound(w, "Time record not found")
	case errors.Is(err, timerecord.ErrPhotoNotFound), errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "Photo not found")
	case errors.Is(err, timerecord.ErrAlreadyClockedIn):
		Conflict(w, "You are already clocked in")
	case errors.Is(err, timerecord.ErrNotClockedIn):
		Conflict(w, "You have not clocked in yet")
	case errors.Is(err, timerecord.ErrNothingToCorrect):
		Conflict(w, err.Error())
	case errors.Is(err, timerecord.ErrFutureTimestamp):
		BadRequest(w, err.Error(), map[string]string{"timestamp": err.Error()})

	// Payroll and export
	case errors.Is(err, payroll.ErrInvalidInput):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrHourlyRateMissing):
		BadRequest(w, err.Error(), map[string]string{"hourly_rate": err.Error()})
	case errors.Is(err, export.ErrUnsupportedFormat):
		ValidationError(w, map[string]string{"format": err.Error()})
	case errors.Is(err, audit.ErrInvalidSnapshot):
		InternalServerError(w, "Failed to record audit event")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
