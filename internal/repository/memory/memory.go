// Package memory holds map-backed repositories with the same contracts as
// the PostgreSQL ones. Service tests run against them.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// txMu stands in for row locks: transactions run one at a time.
var txMu sync.Mutex

// Transactor runs fn under txMu; the maps have no rollback.
// RunInTx must not be nested.
type Transactor struct{}

func (Transactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	txMu.Lock()
	defer txMu.Unlock()
	return fn(ctx)
}

func now() time.Time {
	return time.Now().UTC()
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func page[T any](items []T, pageNum, limit int) []T {
	if limit <= 0 {
		return items
	}
	start := (pageNum - 1) * limit
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+limit, len(items))
	return items[start:end]
}
