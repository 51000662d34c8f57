package audit

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("audit-test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    "admin-1",
		"company_id": companyID,
		"role":       "admin",
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestAuditService_Record(t *testing.T) {
	repo := memory.NewAuditRepository()
	svc := NewAuditService(repo)
	ctx := adminContext(t, "company-1")

	before := map[string]string{"type": "in"}
	after := map[string]string{"type": "out"}
	require.NoError(t, svc.Record(ctx, audit.ActionTimeRecordCorrect, audit.EntityTimeRecord, "record-1", before, after))
	require.NoError(t, svc.Record(ctx, audit.ActionEmployeeCreate, audit.EntityEmployee, "employee-1", nil, after))

	events := repo.Events()
	require.Len(t, events, 2)

	first := events[0]
	assert.Equal(t, "company-1", first.CompanyID)
	require.NotNil(t, first.ActorUserID)
	assert.Equal(t, "admin-1", *first.ActorUserID)
	assert.JSONEq(t, `{"type":"in"}`, string(first.Before))
	assert.JSONEq(t, `{"type":"out"}`, string(first.After))

	assert.Nil(t, events[1].Before)
}

func TestAuditService_Record_InvalidSnapshot(t *testing.T) {
	svc := NewAuditService(memory.NewAuditRepository())

	err := svc.Record(adminContext(t, "company-1"), audit.ActionEmployeeUpdate, audit.EntityEmployee, "employee-1", nil, make(chan int))
	assert.ErrorIs(t, err, audit.ErrInvalidSnapshot)
}

func TestAuditService_List(t *testing.T) {
	repo := memory.NewAuditRepository()
	svc := NewAuditService(repo)
	ctx := adminContext(t, "company-1")

	for _, id := range []string{"r1", "r2", "r3"} {
		require.NoError(t, svc.Record(ctx, audit.ActionTimeRecordCreate, audit.EntityTimeRecord, id, nil, map[string]string{"id": id}))
	}
	require.NoError(t, svc.Record(adminContext(t, "company-2"), audit.ActionTimeRecordCreate, audit.EntityTimeRecord, "other", nil, nil))

	resp, err := svc.List(ctx, audit.AuditFilter{Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, int64(3), resp.TotalCount)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Equal(t, "1-2 of 3", resp.Showing)
	require.Len(t, resp.Events, 2)
	assert.Equal(t, "r3", resp.Events[0].EntityID)

	var after map[string]string
	require.NoError(t, json.Unmarshal(resp.Events[0].After, &after))
	assert.Equal(t, "r3", after["id"])

	bad := "payroll"
	_, err = svc.List(ctx, audit.AuditFilter{EntityType: &bad})
	assert.Error(t, err)
}
