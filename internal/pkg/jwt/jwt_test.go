package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	employeeID := "employee-1"

	token, expiresAt, err := svc.GenerateAccessToken(user.User{
		ID:         "user-1",
		CompanyID:  "company-1",
		Email:      "ana@padaria.test",
		Role:       user.RoleEmployee,
		EmployeeID: &employeeID,
	})
	require.NoError(t, err)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "company-1", claims["company_id"])
	assert.Equal(t, "employee-1", claims["employee_id"])
	assert.Equal(t, "employee", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_AdminWithoutEmployee(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, _, err := svc.GenerateAccessToken(user.User{ID: "user-1", CompanyID: "company-1", Role: user.RoleAdmin})
	require.NoError(t, err)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)
	_, ok := decoded.Get("employee_id")
	assert.False(t, ok)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)
	now := time.Date(2024, time.March, 5, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("old", now.Add(-time.Minute).Unix())
	assert.True(t, svc.IsTokenRevoked("old"))

	svc.RevokeToken("current", now.Add(time.Hour).Unix())
	assert.True(t, svc.IsTokenRevoked("current"))
	assert.False(t, svc.IsTokenRevoked("old"), "expired entries are pruned")
	assert.False(t, svc.IsTokenRevoked("never-revoked"))
}
