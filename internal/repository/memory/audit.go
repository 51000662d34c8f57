package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
)

type AuditRepository struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Create(ctx context.Context, event audit.Event) (audit.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.ID = newID()
	event.CreatedAt = now()
	r.events = append(r.events, event)
	return event, nil
}

func (r *AuditRepository) List(ctx context.Context, filter audit.AuditFilter, companyID string) ([]audit.Event, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := func(want *string, got string) bool {
		return want == nil || *want == "" || *want == got
	}

	// Newest first
	out := make([]audit.Event, 0)
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		actor := ""
		if e.ActorUserID != nil {
			actor = *e.ActorUserID
		}
		if e.CompanyID != companyID ||
			!matches(filter.Action, e.Action) ||
			!matches(filter.EntityType, e.EntityType) ||
			!matches(filter.EntityID, e.EntityID) ||
			!matches(filter.ActorUserID, actor) {
			continue
		}
		out = append(out, e)
	}
	return page(out, filter.Page, filter.Limit), int64(len(out)), nil
}

// Events returns every stored event, oldest first
func (r *AuditRepository) Events() []audit.Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]audit.Event(nil), r.events...)
}
