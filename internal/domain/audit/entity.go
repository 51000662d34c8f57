package audit

import (
	"encoding/json"
	"time"
)

// Actions written by administrative changes to time records
const (
	ActionTimeRecordCreate  = "time_record.create"
	ActionTimeRecordCorrect = "time_record.correct"
	ActionEmployeeCreate    = "employee.create"
	ActionEmployeeUpdate    = "employee.update"
	ActionEmployeeDisable   = "employee.deactivate"
)

const (
	EntityTimeRecord = "time_record"
	EntityEmployee   = "employee"
)

// Event is an append-only record of who changed what.
type Event struct {
	ID          string
	CompanyID   string
	ActorUserID *string
	Action      string
	EntityType  string
	EntityID    string
	Before      json.RawMessage
	After       json.RawMessage
	CreatedAt   time.Time
}
