package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx postgresql.Transactor
	user.UserRepository
	company.CompanyRepository
	jwt.Service
}

func NewAuthService(tx postgresql.Transactor, userRepository user.UserRepository, companyRepository company.CompanyRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		tx:                tx,
		UserRepository:    userRepository,
		CompanyRepository: companyRepository,
		Service:           jwtService,
	}
}

// HashPassword hashes a password with bcrypt's default cost
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := a.Service.GenerateAccessToken(userData)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("user logged in", "user_id", userData.ID, "company_id", userData.CompanyID, "role", userData.Role)

	return auth.TokenResponse{
		AccessToken:          token,
		AccessTokenExpiresIn: expiresAt,
		TokenType:            "Bearer",
	}, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context) (auth.MeResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return auth.MeResponse{}, err
	}

	userData, err := a.UserRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return auth.MeResponse{}, err
	}

	return auth.MeResponse{
		UserID:     userData.ID,
		Email:      userData.Email,
		CompanyID:  userData.CompanyID,
		EmployeeID: userData.EmployeeID,
		Role:       string(userData.Role),
	}, nil
}

// ChangePassword implements auth.AuthService.
func (a *AuthServiceImpl) ChangePassword(ctx context.Context, req auth.ChangePasswordRequest) error {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	userData, err := a.UserRepository.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return auth.ErrCurrentPasswordMismatch
	}

	hash, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := a.UserRepository.UpdatePassword(ctx, userData.ID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// Bootstrap implements auth.AuthService.
func (a *AuthServiceImpl) Bootstrap(ctx context.Context, req auth.BootstrapRequest) error {
	if req.AdminEmail == "" || req.AdminPassword == "" {
		slog.Debug("seed admin not configured, skipping bootstrap")
		return nil
	}
	if req.CompanyName == "" {
		return company.ErrInvalidCompanyName
	}

	return a.tx.RunInTx(ctx, func(txCtx context.Context) error {
		comp, err := a.CompanyRepository.GetByName(txCtx, req.CompanyName)
		if errors.Is(err, company.ErrCompanyNotFound) {
			comp, err = a.CompanyRepository.Create(txCtx, company.Company{Name: req.CompanyName})
			if err == nil {
				slog.Info("seeded company", "company_id", comp.ID, "name", comp.Name)
			}
		}
		if err != nil {
			return fmt.Errorf("failed to seed company: %w", err)
		}

		exists, err := a.UserRepository.ExistsByEmail(txCtx, req.AdminEmail)
		if err != nil {
			return err
		}
		if exists {
			return nil
		}

		hash, err := HashPassword(req.AdminPassword)
		if err != nil {
			return err
		}

		admin, err := a.UserRepository.Create(txCtx, user.User{
			CompanyID:    comp.ID,
			Email:        req.AdminEmail,
			PasswordHash: hash,
			Role:         user.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("failed to seed admin user: %w", err)
		}

		slog.Info("seeded admin user", "user_id", admin.ID, "company_id", comp.ID)
		return nil
	})
}
