package auth

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// Claims is the typed view of an access token
type Claims struct {
	UserID     string
	Email      string
	CompanyID  string
	EmployeeID *string
	Role       user.Role
}

// ClaimsFromContext reads the access token claims placed on ctx by jwtauth.Verifier.
func ClaimsFromContext(ctx context.Context) (Claims, error) {
	_, raw, err := jwtauth.FromContext(ctx)
	if err != nil {
		return Claims{}, fmt.Errorf("failed to extract claims from context: %w", ErrInvalidToken)
	}

	var claims Claims
	var ok bool

	claims.UserID, ok = raw["user_id"].(string)
	if !ok || claims.UserID == "" {
		return Claims{}, fmt.Errorf("user_id claim is missing or invalid: %w", ErrInvalidToken)
	}

	claims.CompanyID, ok = raw["company_id"].(string)
	if !ok || claims.CompanyID == "" {
		return Claims{}, fmt.Errorf("company_id claim is missing or invalid: %w", ErrInvalidToken)
	}

	role, _ := raw["role"].(string)
	claims.Role = user.Role(role)
	claims.Email, _ = raw["email"].(string)

	if employeeID, ok := raw["employee_id"].(string); ok && employeeID != "" {
		claims.EmployeeID = &employeeID
	}

	return claims, nil
}

// RequireEmployee returns the employee ID bound to the token.
func (c Claims) RequireEmployee() (string, error) {
	if c.EmployeeID == nil {
		return "", ErrEmployeeProfileRequired
	}
	return *c.EmployeeID, nil
}

func (c Claims) IsAdmin() bool {
	return c.Role == user.RoleAdmin
}
