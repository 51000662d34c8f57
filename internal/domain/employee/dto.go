package employee

import (
	"strings"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Position     *string         `json:"position,omitempty"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	Timezone     string          `json:"timezone"`
	HireDate     *string         `json:"hire_date,omitempty"` // YYYY-MM-DD

	// Login account, created together with the employee when Password is set
	Password *string `json:"password,omitempty"`
	Role     string  `json:"role,omitempty"` // admin, employee
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.FullName = strings.TrimSpace(r.FullName)

	if validator.IsEmpty(r.EmployeeCode) {
		errs.Add("employee_code", "employee_code is required")
	} else if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs.Add("employee_code", "employee_code must be 2-30 letters, digits, '-' or '_'")
	}

	if validator.IsEmpty(r.FullName) {
		errs.Add("full_name", "full_name is required")
	} else if len(r.FullName) > 255 {
		errs.Add("full_name", "full_name must not exceed 255 characters")
	}

	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	if r.Position != nil && len(*r.Position) > 120 {
		errs.Add("position", "position must not exceed 120 characters")
	}

	if r.HourlyRate.IsNegative() {
		errs.Add("hourly_rate", "hourly_rate must not be negative")
	}

	// Empty timezone falls back to the configured default in the service
	if r.Timezone != "" && !validator.IsValidTimezone(r.Timezone) {
		errs.Add("timezone", "timezone must be a valid IANA timezone, e.g. America/Sao_Paulo")
	}

	if r.HireDate != nil && *r.HireDate != "" {
		if _, valid := validator.IsValidDate(*r.HireDate); !valid {
			errs.Add("hire_date", "hire_date must be in YYYY-MM-DD format")
		}
	}

	if r.Password != nil {
		if len(*r.Password) < 8 {
			errs.Add("password", "password must be at least 8 characters long")
		} else if len(*r.Password) > 72 {
			errs.Add("password", "password must not exceed 72 characters")
		}
	}

	if r.Role == "" {
		r.Role = "employee"
	}
	if !validator.IsInSlice(r.Role, []string{"admin", "employee"}) {
		errs.Add("role", "role must be one of: admin, employee")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID         string           `json:"-"`
	FullName   *string          `json:"full_name,omitempty"`
	Email      *string          `json:"email,omitempty"`
	Position   *string          `json:"position,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	Timezone   *string          `json:"timezone,omitempty"`
	Status     *string          `json:"status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.FullName != nil {
		trimmed := strings.TrimSpace(*r.FullName)
		r.FullName = &trimmed
		if trimmed == "" {
			errs.Add("full_name", "full_name must not be empty")
		} else if len(trimmed) > 255 {
			errs.Add("full_name", "full_name must not exceed 255 characters")
		}
	}

	if r.Email != nil {
		normalized := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &normalized
		if !validator.IsValidEmail(normalized) {
			errs.Add("email", "email must be a valid email address")
		}
	}

	if r.Position != nil && len(*r.Position) > 120 {
		errs.Add("position", "position must not exceed 120 characters")
	}

	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs.Add("hourly_rate", "hourly_rate must not be negative")
	}

	if r.Timezone != nil && !validator.IsValidTimezone(*r.Timezone) {
		errs.Add("timezone", "timezone must be a valid IANA timezone, e.g. America/Sao_Paulo")
	}

	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs.Add("status", "status must be one of: active, inactive")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	Search *string `json:"search,omitempty"` // matches full_name, email or employee_code
	Status *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // full_name, employee_code, created_at
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{string(StatusActive), string(StatusInactive)}) {
		errs.Add("status", "status must be one of: active, inactive")
	}

	if f.SortBy == "" {
		f.SortBy = "full_name"
	} else if !validator.IsInSlice(f.SortBy, []string{"full_name", "employee_code", "created_at"}) {
		errs.Add("sort_by", "sort_by must be one of: full_name, employee_code, created_at")
	}

	if f.SortOrder == "" {
		f.SortOrder = "asc"
	} else if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
		errs.Add("sort_order", "sort_order must be one of: asc, desc")
	}

	return errs.Err()
}

type EmployeeResponse struct {
	ID           string          `json:"id"`
	UserID       *string         `json:"user_id,omitempty"`
	EmployeeCode string          `json:"employee_code"`
	FullName     string          `json:"full_name"`
	Email        string          `json:"email"`
	Position     *string         `json:"position,omitempty"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	Timezone     string          `json:"timezone"`
	Status       string          `json:"status"`
	HireDate     *string         `json:"hire_date,omitempty"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}
