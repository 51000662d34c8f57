package auth

import (
	"context"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Me(ctx context.Context) (MeResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error

	// Bootstrap creates the company and admin account when missing.
	// It is a no-op when AdminEmail or AdminPassword is empty.
	Bootstrap(ctx context.Context, req BootstrapRequest) error
}
