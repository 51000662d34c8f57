package timerecord

import (
	"mime/multipart"
	"strings"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
)

const MaxPhotoSize = 10 << 20 // 10MB

// ========================================
// CLOCK DTOs
// ========================================

// ClockRequest is shared by clock-in and clock-out; the event type comes from the endpoint.
type ClockRequest struct {
	Latitude   float64               `json:"latitude"`
	Longitude  float64               `json:"longitude"`
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	if r.FileHeader == nil || r.File == nil {
		errs.Add("photo", "clock photo is required")
	} else if !validator.IsValidImageFilename(r.FileHeader.Filename) {
		errs.Add("photo", "invalid file type: only jpg, jpeg, png allowed")
	} else if r.FileHeader.Size > MaxPhotoSize {
		errs.Add("photo", "clock photo size must not exceed 10MB")
	}

	return errs.Err()
}

// ========================================
// ADMIN DTOs
// ========================================

type CreateTimeRecordRequest struct {
	EmployeeID    string   `json:"employee_id"`
	Type          string   `json:"type"`      // in, out
	Timestamp     string   `json:"timestamp"` // RFC3339
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	Justification string   `json:"justification"`

	ParsedTimestamp time.Time `json:"-"`
}

func (r *CreateTimeRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}

	if !RecordType(r.Type).IsValid() {
		errs.Add("type", "type must be one of: in, out")
	}

	if validator.IsEmpty(r.Timestamp) {
		errs.Add("timestamp", "timestamp is required")
	} else if ts, ok := validator.IsValidDateTime(r.Timestamp); !ok {
		errs.Add("timestamp", "timestamp must be an ISO8601 date-time with offset, e.g. 2024-03-05T08:00:00-03:00")
	} else {
		r.ParsedTimestamp = ts.UTC()
	}

	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}

	validateJustification(&errs, r.Justification)

	return errs.Err()
}

type CorrectTimeRecordRequest struct {
	ID            string  `json:"-"`
	Type          *string `json:"type,omitempty"`
	Timestamp     *string `json:"timestamp,omitempty"`
	Justification string  `json:"justification"`

	ParsedTimestamp *time.Time `json:"-"`
}

func (r *CorrectTimeRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.Type == nil && r.Timestamp == nil {
		errs.Add("type", "type or timestamp must be provided")
	}

	if r.Type != nil && !RecordType(*r.Type).IsValid() {
		errs.Add("type", "type must be one of: in, out")
	}

	if r.Timestamp != nil {
		if ts, ok := validator.IsValidDateTime(*r.Timestamp); !ok {
			errs.Add("timestamp", "timestamp must be an ISO8601 date-time with offset, e.g. 2024-03-05T08:00:00-03:00")
		} else {
			utc := ts.UTC()
			r.ParsedTimestamp = &utc
		}
	}

	validateJustification(&errs, r.Justification)

	return errs.Err()
}

func validateJustification(errs *validator.ValidationErrors, justification string) {
	if validator.IsEmpty(justification) {
		errs.Add("justification", "justification is required for administrative changes")
	} else if len(justification) > 500 {
		errs.Add("justification", "justification must not exceed 500 characters")
	}
}

// ========================================
// QUERY DTOs
// ========================================

type TimeRecordFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Type       *string `json:"type,omitempty"`
	Corrected  *bool   `json:"corrected,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	SortOrder string `json:"sort_order"` // asc, desc by timestamp

	// Resolved by the service from StartDate/EndDate in the relevant timezone
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *TimeRecordFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if f.Page == 0 {
		f.Page = 1
	}

	// Limit validation
	if f.Limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs.Add("limit", "limit must not exceed 100")
	}

	if f.Type != nil && !RecordType(*f.Type).IsValid() {
		errs.Add("type", "type must be one of: in, out")
	}

	var start, end time.Time
	var hasStart, hasEnd bool
	if f.StartDate != nil && *f.StartDate != "" {
		if start, hasStart = validator.IsValidDate(*f.StartDate); !hasStart {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if end, hasEnd = validator.IsValidDate(*f.EndDate); !hasEnd {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}
	if hasStart && hasEnd && start.After(end) {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	if f.SortOrder == "" {
		f.SortOrder = "desc" // newest first
	} else if !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
		errs.Add("sort_order", "sort_order must be one of: asc, desc")
	}

	return errs.Err()
}

// ========================================
// RESPONSE DTOs
// ========================================

type TimeRecordResponse struct {
	ID            string   `json:"id"`
	EmployeeID    string   `json:"employee_id"`
	EmployeeName  *string  `json:"employee_name,omitempty"`
	Type          string   `json:"type"`
	Timestamp     string   `json:"timestamp"`  // RFC3339 in the employee's timezone
	LocalDate     string   `json:"local_date"` // dd/MM/yyyy
	LocalTime     string   `json:"local_time"` // HH:mm
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	PhotoURL      *string  `json:"photo_url,omitempty"`
	Justification *string  `json:"justification,omitempty"`
	Corrected     bool     `json:"corrected"`
	CorrectedBy   *string  `json:"corrected_by,omitempty"`
	CreatedAt     string   `json:"created_at"`
	UpdatedAt     string   `json:"updated_at"`
}

type ListTimeRecordResponse struct {
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
	TotalPages int                  `json:"total_pages"`
	Showing    string               `json:"showing"`
	Records    []TimeRecordResponse `json:"records"`
}

type ClockStatusResponse struct {
	EmployeeID string              `json:"employee_id"`
	ClockedIn  bool                `json:"clocked_in"`
	NextType   string              `json:"next_type"`
	LastRecord *TimeRecordResponse `json:"last_record,omitempty"`
}
