package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/utils"
)

type AuditServiceImpl struct {
	audit.AuditRepository
}

func NewAuditService(auditRepository audit.AuditRepository) audit.AuditService {
	return &AuditServiceImpl{AuditRepository: auditRepository}
}

func snapshot(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", audit.ErrInvalidSnapshot, err)
	}
	return raw, nil
}

// Record implements audit.AuditService.
func (s *AuditServiceImpl) Record(ctx context.Context, action, entityType, entityID string, before, after any) error {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return err
	}

	beforeJSON, err := snapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := snapshot(after)
	if err != nil {
		return err
	}

	actor := claims.UserID
	_, err = s.AuditRepository.Create(ctx, audit.Event{
		CompanyID:   claims.CompanyID,
		ActorUserID: &actor,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Before:      beforeJSON,
		After:       afterJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}
	return nil
}

// List implements audit.AuditService.
func (s *AuditServiceImpl) List(ctx context.Context, filter audit.AuditFilter) (audit.ListAuditResponse, error) {
	if err := filter.Validate(); err != nil {
		return audit.ListAuditResponse{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return audit.ListAuditResponse{}, err
	}

	events, total, err := s.AuditRepository.List(ctx, filter, claims.CompanyID)
	if err != nil {
		return audit.ListAuditResponse{}, fmt.Errorf("failed to list audit events: %w", err)
	}

	responses := make([]audit.AuditEventResponse, 0, len(events))
	for _, event := range events {
		responses = append(responses, audit.AuditEventResponse{
			ID:          event.ID,
			ActorUserID: event.ActorUserID,
			Action:      event.Action,
			EntityType:  event.EntityType,
			EntityID:    event.EntityID,
			Before:      event.Before,
			After:       event.After,
			CreatedAt:   event.CreatedAt.Format(time.RFC3339),
		})
	}

	totalPages, showing := utils.Pagination(filter.Page, filter.Limit, total)

	return audit.ListAuditResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Events:     responses,
	}, nil
}
