package audit

import "context"

type AuditRepository interface {
	Create(ctx context.Context, event Event) (Event, error)
	List(ctx context.Context, filter AuditFilter, companyID string) ([]Event, int64, error)
}
