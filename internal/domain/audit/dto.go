package audit

import (
	"encoding/json"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

type AuditFilter struct {
	Action      *string `json:"action,omitempty"`
	EntityType  *string `json:"entity_type,omitempty"`
	EntityID    *string `json:"entity_id,omitempty"`
	ActorUserID *string `json:"actor_user_id,omitempty"`

	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AuditFilter) Validate() error {
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

	if f.EntityType != nil && !validator.IsInSlice(*f.EntityType, []string{EntityTimeRecord, EntityEmployee}) {
		errs.Add("entity_type", "entity_type must be one of: time_record, employee")
	}

	return errs.Err()
}

type AuditEventResponse struct {
	ID          string          `json:"id"`
	ActorUserID *string         `json:"actor_user_id,omitempty"`
	Action      string          `json:"action"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	Before      json.RawMessage `json:"before,omitempty"`
	After       json.RawMessage `json:"after,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type ListAuditResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Showing    string               `json:"showing"`
	Events     []AuditEventResponse `json:"events"`
}
