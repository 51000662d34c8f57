package timerecord

import (
	"context"
	"io"
)

// TimeRecordService defines business logic for clock events
type TimeRecordService interface {
	// ClockIn registers an "in" event for the authenticated employee
	ClockIn(ctx context.Context, req ClockRequest) (TimeRecordResponse, error)

	// ClockOut registers an "out" event for the authenticated employee
	ClockOut(ctx context.Context, req ClockRequest) (TimeRecordResponse, error)

	// GetStatus reports whether the authenticated employee is currently clocked in
	GetStatus(ctx context.Context) (ClockStatusResponse, error)

	// GetMyRecords lists the authenticated employee's own records
	GetMyRecords(ctx context.Context, filter TimeRecordFilter) (ListTimeRecordResponse, error)

	// List lists records of any employee of the company (admin)
	List(ctx context.Context, filter TimeRecordFilter) (ListTimeRecordResponse, error)

	// Get retrieves a single record by ID (admin)
	Get(ctx context.Context, id string) (TimeRecordResponse, error)

	// Create registers a record on an employee's behalf (admin, audited)
	Create(ctx context.Context, req CreateTimeRecordRequest) (TimeRecordResponse, error)

	// Correct changes the type or timestamp of a record (admin, audited)
	Correct(ctx context.Context, req CorrectTimeRecordRequest) (TimeRecordResponse, error)

	// OpenPhoto streams the photo of a record. Employees may only open their own.
	OpenPhoto(ctx context.Context, id string) (io.ReadCloser, error)
}
