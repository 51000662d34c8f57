package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
)

type auditRepositoryImpl struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepositoryImpl{db: db}
}

// Create implements audit.AuditRepository.
func (a *auditRepositoryImpl) Create(ctx context.Context, event audit.Event) (audit.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO audit_events (company_id, actor_user_id, action, entity_type, entity_id, before_json, after_json)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	created := event
	err := q.QueryRow(ctx, query,
		event.CompanyID,
		event.ActorUserID,
		event.Action,
		event.EntityType,
		event.EntityID,
		nullableJSON(event.Before),
		nullableJSON(event.After),
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		return audit.Event{}, fmt.Errorf("failed to create audit event: %w", err)
	}
	return created, nil
}

// List implements audit.AuditRepository.
func (a *auditRepositoryImpl) List(ctx context.Context, filter audit.AuditFilter, companyID string) ([]audit.Event, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	optional := []struct {
		column string
		value  *string
	}{
		{"action", filter.Action},
		{"entity_type", filter.EntityType},
		{"entity_id::text", filter.EntityID},
		{"actor_user_id::text", filter.ActorUserID},
	}
	for _, opt := range optional {
		if opt.value == nil || *opt.value == "" {
			continue
		}
		conditions = append(conditions, fmt.Sprintf("%s = $%d", opt.column, argIdx))
		args = append(args, *opt.value)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM audit_events WHERE "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit events: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT id, company_id, actor_user_id, action, entity_type, entity_id, before_json, after_json, created_at
		FROM audit_events
		WHERE %s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, whereClause, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	events := make([]audit.Event, 0)
	for rows.Next() {
		var evt audit.Event
		var before, after []byte
		if err := rows.Scan(&evt.ID, &evt.CompanyID, &evt.ActorUserID, &evt.Action, &evt.EntityType, &evt.EntityID, &before, &after, &evt.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan audit event: %w", err)
		}
		evt.Before, evt.After = before, after
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// nullableJSON stores an empty snapshot as SQL NULL
func nullableJSON(raw []byte) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
