package timesheet

import "time"

// DateLayout is the key format of a local calendar day
const DateLayout = "2006-01-02"

// Interval is a worked span built from an "in" record followed by an "out" record.
type Interval struct {
	In          time.Time `json:"in"`
	Out         time.Time `json:"out"`
	InRecordID  string    `json:"in_record_id"`
	OutRecordID string    `json:"out_record_id"`
	Hours       float64   `json:"hours"`
}

// DaySummary is the derived view of one local calendar day. It is never persisted.
type DaySummary struct {
	Date       string     `json:"date"` // YYYY-MM-DD in the employee's timezone
	Entry      *time.Time `json:"entry,omitempty"`
	Exit       *time.Time `json:"exit,omitempty"`
	TotalHours float64    `json:"total_hours"`
	Incomplete bool       `json:"incomplete"`
	Corrected  bool       `json:"corrected"`
	Intervals  []Interval `json:"intervals"`
	RecordIDs  []string   `json:"record_ids"`
}

// Worked reports whether the day has at least one valid interval.
func (d DaySummary) Worked() bool {
	return len(d.Intervals) > 0
}

// RangeReport aggregates the days of one employee over [Start, End].
type RangeReport struct {
	EmployeeID        string       `json:"employee_id"`
	EmployeeName      string       `json:"employee_name,omitempty"`
	Start             string       `json:"start_date"`
	End               string       `json:"end_date"`
	Timezone          string       `json:"timezone"`
	TotalHours        float64      `json:"total_hours"`
	DaysWorked        int          `json:"days_worked"`
	AverageDailyHours float64      `json:"average_daily_hours"`
	PerDay            []DaySummary `json:"per_day"`
}

// SourceRecordIDs lists the IDs of every record that fed the report, day by day.
func (r RangeReport) SourceRecordIDs() []string {
	ids := make([]string, 0)
	for _, day := range r.PerDay {
		ids = append(ids, day.RecordIDs...)
	}
	return ids
}
