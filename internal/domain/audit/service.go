package audit

import "context"

// AuditService records and lists administrative changes
type AuditService interface {
	// Record writes an event; before and after are JSON-encoded snapshots and may be nil.
	// It joins the transaction carried by ctx, if any.
	Record(ctx context.Context, action, entityType, entityID string, before, after any) error

	// List returns the company's events, newest first (admin)
	List(ctx context.Context, filter AuditFilter) (ListAuditResponse, error)
}
