package timesheet

import (
	"sort"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
)

// GroupByDay buckets records by the calendar date of their timestamp in loc.
// The UTC date is never used.
func GroupByDay(records []timerecord.TimeRecord, loc *time.Location) map[string][]timerecord.TimeRecord {
	days := make(map[string][]timerecord.TimeRecord)
	for _, record := range records {
		key := record.Timestamp.In(loc).Format(DateLayout)
		days[key] = append(days[key], record)
	}
	return days
}

// PairIntervals sorts one day's records and pairs index 2i with 2i+1.
// Only a literal in→out pair with a positive duration becomes an interval;
// any other pair, an odd count or a non-positive duration marks the day incomplete.
func PairIntervals(records []timerecord.TimeRecord) (intervals []Interval, incomplete bool) {
	sorted := sortedByTimestamp(records)
	intervals = make([]Interval, 0, len(sorted)/2)

	for i := 0; i+1 < len(sorted); i += 2 {
		in, out := sorted[i], sorted[i+1]
		if in.Type != timerecord.TypeIn || out.Type != timerecord.TypeOut {
			incomplete = true
			continue
		}

		duration := out.Timestamp.Sub(in.Timestamp)
		if duration <= 0 {
			incomplete = true
			continue
		}

		intervals = append(intervals, Interval{
			In:          in.Timestamp,
			Out:         out.Timestamp,
			InRecordID:  in.ID,
			OutRecordID: out.ID,
			Hours:       duration.Hours(),
		})
	}

	if len(sorted)%2 == 1 {
		incomplete = true
	}

	return intervals, incomplete
}

// SummarizeDay builds the summary of a single day from that day's records.
func SummarizeDay(date string, records []timerecord.TimeRecord) DaySummary {
	intervals, incomplete := PairIntervals(records)

	summary := DaySummary{
		Date:       date,
		Incomplete: incomplete,
		Intervals:  intervals,
		RecordIDs:  make([]string, 0, len(records)),
	}

	var worked time.Duration
	for _, interval := range intervals {
		worked += interval.Out.Sub(interval.In)
	}
	summary.TotalHours = worked.Hours()

	for _, record := range sortedByTimestamp(records) {
		summary.RecordIDs = append(summary.RecordIDs, record.ID)
		if record.Corrected {
			summary.Corrected = true
		}

		ts := record.Timestamp
		switch record.Type {
		case timerecord.TypeIn:
			if summary.Entry == nil || ts.Before(*summary.Entry) {
				summary.Entry = &ts
			}
		case timerecord.TypeOut:
			if summary.Exit == nil || ts.After(*summary.Exit) {
				summary.Exit = &ts
			}
		}
	}

	return summary
}

// BuildReport aggregates an employee's records over the local dates
// [start, end]. Records whose local date lies outside the range are ignored.
func BuildReport(employeeID string, start, end time.Time, loc *time.Location, records []timerecord.TimeRecord) RangeReport {
	startKey := start.Format(DateLayout)
	endKey := end.Format(DateLayout)

	report := RangeReport{
		EmployeeID: employeeID,
		Start:      startKey,
		End:        endKey,
		Timezone:   loc.String(),
		PerDay:     make([]DaySummary, 0),
	}

	days := GroupByDay(records, loc)
	keys := make([]string, 0, len(days))
	for key := range days {
		if key < startKey || key > endKey {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		day := SummarizeDay(key, days[key])
		report.PerDay = append(report.PerDay, day)
		report.TotalHours += day.TotalHours
		if day.Worked() {
			report.DaysWorked++
		}
	}

	if report.DaysWorked > 0 {
		report.AverageDailyHours = report.TotalHours / float64(report.DaysWorked)
	}

	return report
}

// LocalRange converts the calendar dates [start, end] into the half-open
// instant range [start 00:00, end+1 00:00) in loc.
func LocalRange(start, end time.Time, loc *time.Location) (from, to time.Time) {
	from = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
	to = time.Date(end.Year(), end.Month(), end.Day()+1, 0, 0, 0, 0, loc)
	return from, to
}

func sortedByTimestamp(records []timerecord.TimeRecord) []timerecord.TimeRecord {
	sorted := make([]timerecord.TimeRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Timestamp.Equal(sorted[j].Timestamp) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}
