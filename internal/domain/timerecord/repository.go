package timerecord

import (
	"context"
	"time"
)

// TimeRecordRepository defines data access methods for time records.
// All methods include companyID parameter to prevent cross-company data access.
type TimeRecordRepository interface {
	// Create inserts a record and returns it with generated fields
	Create(ctx context.Context, record TimeRecord) (TimeRecord, error)

	// GetByID returns ErrTimeRecordNotFound when the record does not exist in the company
	GetByID(ctx context.Context, id string, companyID string) (TimeRecord, error)

	// Update persists a corrected record
	Update(ctx context.Context, record TimeRecord) (TimeRecord, error)

	// GetLastByEmployee returns the most recent record, or nil if the employee has none
	GetLastByEmployee(ctx context.Context, employeeID string, companyID string) (*TimeRecord, error)

	// ListByEmployeeAndRange returns records with from <= timestamp < to, oldest first
	ListByEmployeeAndRange(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]TimeRecord, error)

	// List retrieves records with filters and pagination
	List(ctx context.Context, filter TimeRecordFilter, companyID string) ([]TimeRecord, int64, error)
}
