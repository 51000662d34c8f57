package auth

import (
	"strings"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))

	// Email
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if len(r.Email) > 254 {
		errs.Add("email", "email must not exceed 254 characters")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	} else if len(r.Password) > 255 {
		errs.Add("password", "password must not exceed 255 characters")
	}

	return errs.Err()
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (r *ChangePasswordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPassword) {
		errs.Add("current_password", "current_password is required")
	}

	if validator.IsEmpty(r.NewPassword) {
		errs.Add("new_password", "new_password is required")
	} else if len(r.NewPassword) < 8 {
		errs.Add("new_password", "new_password must be at least 8 characters long")
	} else if len(r.NewPassword) > 72 {
		// bcrypt ignores everything past 72 bytes
		errs.Add("new_password", "new_password must not exceed 72 characters")
	}

	if r.ConfirmPassword != r.NewPassword {
		errs.Add("confirm_password", "new_password and confirm_password do not match")
	}

	return errs.Err()
}

// BootstrapRequest seeds the first company and its administrator
type BootstrapRequest struct {
	CompanyName   string
	AdminEmail    string
	AdminPassword string
}

type TokenResponse struct {
	AccessToken          string `json:"access_token"`
	AccessTokenExpiresIn int64  `json:"access_token_expires_in"`
	TokenType            string `json:"token_type"`
}

type MeResponse struct {
	UserID     string  `json:"user_id"`
	Email      string  `json:"email"`
	CompanyID  string  `json:"company_id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Role       string  `json:"role"`
}
