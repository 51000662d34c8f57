package timesheet

import (
	"fmt"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

type recordBuilder struct {
	loc *time.Location
	seq int
}

// at builds a record at local date/time "2024-03-05 08:00" in the builder's timezone.
func (b *recordBuilder) at(t *testing.T, typ timerecord.RecordType, local string) timerecord.TimeRecord {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", local, b.loc)
	require.NoError(t, err)
	b.seq++
	return timerecord.TimeRecord{
		ID:         fmt.Sprintf("r%02d", b.seq),
		EmployeeID: "employee-1",
		Type:       typ,
		Timestamp:  ts.UTC(),
	}
}

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestGroupByDay_UsesLocalCalendarDate(t *testing.T) {
	loc := saoPaulo(t)
	b := &recordBuilder{loc: loc}

	// 22:30 in São Paulo is already the next day in UTC
	late := b.at(t, timerecord.TypeOut, "2024-03-05 22:30")
	require.Equal(t, 6, late.Timestamp.Day())

	days := GroupByDay([]timerecord.TimeRecord{
		b.at(t, timerecord.TypeIn, "2024-03-05 14:00"),
		late,
		b.at(t, timerecord.TypeIn, "2024-03-06 08:00"),
	}, loc)

	require.Len(t, days, 2)
	assert.Len(t, days["2024-03-05"], 2)
	assert.Len(t, days["2024-03-06"], 1)
}

func TestPairIntervals(t *testing.T) {
	loc := saoPaulo(t)

	tests := []struct {
		name           string
		events         [][2]string
		wantIntervals  int
		wantHours      float64
		wantIncomplete bool
	}{
		{
			name:          "single pair",
			events:        [][2]string{{"in", "08:00"}, {"out", "12:00"}},
			wantIntervals: 1,
			wantHours:     4,
		},
		{
			name:          "full day with lunch break",
			events:        [][2]string{{"in", "08:00"}, {"out", "12:00"}, {"in", "13:00"}, {"out", "17:00"}},
			wantIntervals: 2,
			wantHours:     8,
		},
		{
			name:           "two ins",
			events:         [][2]string{{"in", "08:00"}, {"in", "09:00"}},
			wantIncomplete: true,
		},
		{
			name:           "only out",
			events:         [][2]string{{"out", "17:00"}},
			wantIncomplete: true,
		},
		{
			name:           "out before in",
			events:         [][2]string{{"out", "08:00"}, {"in", "12:00"}},
			wantIncomplete: true,
		},
		{
			name:           "trailing unpaired in",
			events:         [][2]string{{"in", "08:00"}, {"out", "12:00"}, {"in", "13:00"}, {"out", "17:00"}, {"in", "18:00"}},
			wantIntervals:  2,
			wantHours:      8,
			wantIncomplete: true,
		},
		{
			name:           "broken pair in the middle keeps the valid ones",
			events:         [][2]string{{"in", "08:00"}, {"out", "12:00"}, {"out", "13:00"}, {"in", "14:00"}, {"in", "15:00"}, {"out", "16:30"}},
			wantIntervals:  2,
			wantHours:      5.5,
			wantIncomplete: true,
		},
		{
			name:           "zero duration pair is excluded",
			events:         [][2]string{{"in", "08:00"}, {"out", "08:00"}},
			wantIncomplete: true,
		},
		{
			name:   "no events",
			events: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &recordBuilder{loc: loc}
			var records []timerecord.TimeRecord
			for _, e := range tt.events {
				records = append(records, b.at(t, timerecord.RecordType(e[0]), "2024-03-05 "+e[1]))
			}

			intervals, incomplete := PairIntervals(records)

			assert.Len(t, intervals, tt.wantIntervals)
			assert.Equal(t, tt.wantIncomplete, incomplete)

			var total float64
			for _, iv := range intervals {
				total += iv.Hours
			}
			assert.InDelta(t, tt.wantHours, total, 1e-9)
		})
	}
}

func TestPairIntervals_SortsInput(t *testing.T) {
	b := &recordBuilder{loc: saoPaulo(t)}
	out := b.at(t, timerecord.TypeOut, "2024-03-05 17:00")
	in := b.at(t, timerecord.TypeIn, "2024-03-05 09:00")

	intervals, incomplete := PairIntervals([]timerecord.TimeRecord{out, in})

	require.Len(t, intervals, 1)
	assert.False(t, incomplete)
	assert.Equal(t, in.ID, intervals[0].InRecordID)
	assert.Equal(t, out.ID, intervals[0].OutRecordID)
	assert.Equal(t, 8.0, intervals[0].Hours)
}

func TestPairIntervals_ExactHours(t *testing.T) {
	base := time.Date(2024, time.March, 5, 11, 0, 0, 0, time.UTC)
	for _, worked := range []time.Duration{time.Minute, 90 * time.Minute, 7*time.Hour + 59*time.Minute + 59*time.Second} {
		records := []timerecord.TimeRecord{
			{ID: "a", Type: timerecord.TypeIn, Timestamp: base},
			{ID: "b", Type: timerecord.TypeOut, Timestamp: base.Add(worked)},
		}
		intervals, incomplete := PairIntervals(records)
		require.Len(t, intervals, 1)
		assert.False(t, incomplete)
		assert.Equal(t, worked.Hours(), intervals[0].Hours)
	}
}

func TestSummarizeDay(t *testing.T) {
	b := &recordBuilder{loc: saoPaulo(t)}
	records := []timerecord.TimeRecord{
		b.at(t, timerecord.TypeIn, "2024-03-05 13:00"),
		b.at(t, timerecord.TypeOut, "2024-03-05 12:00"),
		b.at(t, timerecord.TypeIn, "2024-03-05 08:00"),
		b.at(t, timerecord.TypeOut, "2024-03-05 17:00"),
	}
	records[1].Corrected = true

	day := SummarizeDay("2024-03-05", records)

	assert.Equal(t, "2024-03-05", day.Date)
	assert.Equal(t, 8.0, day.TotalHours)
	assert.False(t, day.Incomplete)
	assert.True(t, day.Corrected)
	assert.True(t, day.Worked())
	require.NotNil(t, day.Entry)
	require.NotNil(t, day.Exit)
	assert.True(t, day.Entry.Equal(records[2].Timestamp))
	assert.True(t, day.Exit.Equal(records[3].Timestamp))
	assert.Equal(t, []string{"r03", "r02", "r01", "r04"}, day.RecordIDs)
}

func TestSummarizeDay_NoValidPair(t *testing.T) {
	b := &recordBuilder{loc: saoPaulo(t)}
	day := SummarizeDay("2024-03-05", []timerecord.TimeRecord{
		b.at(t, timerecord.TypeIn, "2024-03-05 08:00"),
		b.at(t, timerecord.TypeIn, "2024-03-05 09:00"),
	})

	assert.True(t, day.Incomplete)
	assert.Equal(t, 0.0, day.TotalHours)
	assert.False(t, day.Worked())
	require.NotNil(t, day.Entry)
	assert.Nil(t, day.Exit)
	assert.False(t, day.Corrected)
}

func TestBuildReport(t *testing.T) {
	loc := saoPaulo(t)
	b := &recordBuilder{loc: loc}

	records := []timerecord.TimeRecord{
		// 2024-03-04: 8h
		b.at(t, timerecord.TypeIn, "2024-03-04 08:00"),
		b.at(t, timerecord.TypeOut, "2024-03-04 12:00"),
		b.at(t, timerecord.TypeIn, "2024-03-04 13:00"),
		b.at(t, timerecord.TypeOut, "2024-03-04 17:00"),
		// 2024-03-05: 6h, then a forgotten clock-out
		b.at(t, timerecord.TypeIn, "2024-03-05 09:00"),
		b.at(t, timerecord.TypeOut, "2024-03-05 15:00"),
		b.at(t, timerecord.TypeIn, "2024-03-05 16:00"),
		// 2024-03-06: clock-in only, no worked interval
		b.at(t, timerecord.TypeIn, "2024-03-06 08:00"),
		// outside the range
		b.at(t, timerecord.TypeIn, "2024-03-08 08:00"),
		b.at(t, timerecord.TypeOut, "2024-03-08 12:00"),
	}

	report := BuildReport("employee-1", date(t, "2024-03-04"), date(t, "2024-03-07"), loc, records)

	assert.Equal(t, "employee-1", report.EmployeeID)
	assert.Equal(t, "2024-03-04", report.Start)
	assert.Equal(t, "2024-03-07", report.End)
	assert.Equal(t, "America/Sao_Paulo", report.Timezone)

	require.Len(t, report.PerDay, 3)
	assert.Equal(t, []string{"2024-03-04", "2024-03-05", "2024-03-06"}, []string{report.PerDay[0].Date, report.PerDay[1].Date, report.PerDay[2].Date})

	assert.False(t, report.PerDay[0].Incomplete)
	assert.True(t, report.PerDay[1].Incomplete)
	assert.True(t, report.PerDay[2].Incomplete)

	assert.InDelta(t, 14.0, report.TotalHours, 1e-9)
	assert.Equal(t, 2, report.DaysWorked)
	assert.InDelta(t, 7.0, report.AverageDailyHours, 1e-9)
	assert.InDelta(t, report.TotalHours, report.AverageDailyHours*float64(report.DaysWorked), 1e-9)

	assert.Len(t, report.SourceRecordIDs(), 8)
}

func TestBuildReport_NoWorkedDays(t *testing.T) {
	loc := saoPaulo(t)
	b := &recordBuilder{loc: loc}

	empty := BuildReport("employee-1", date(t, "2024-03-01"), date(t, "2024-03-31"), loc, nil)
	assert.Equal(t, 0.0, empty.TotalHours)
	assert.Equal(t, 0, empty.DaysWorked)
	assert.Equal(t, 0.0, empty.AverageDailyHours)
	assert.NotNil(t, empty.PerDay)
	assert.Empty(t, empty.PerDay)
	assert.Empty(t, empty.SourceRecordIDs())

	onlyIns := BuildReport("employee-1", date(t, "2024-03-01"), date(t, "2024-03-31"), loc, []timerecord.TimeRecord{
		b.at(t, timerecord.TypeIn, "2024-03-05 08:00"),
	})
	assert.Equal(t, 0, onlyIns.DaysWorked)
	assert.Equal(t, 0.0, onlyIns.AverageDailyHours)
	require.Len(t, onlyIns.PerDay, 1)
	assert.True(t, onlyIns.PerDay[0].Incomplete)
}

func TestBuildReport_NoCrossDayPairing(t *testing.T) {
	loc := saoPaulo(t)
	b := &recordBuilder{loc: loc}

	// Night shift crossing local midnight stays split into two incomplete days
	report := BuildReport("employee-1", date(t, "2024-03-05"), date(t, "2024-03-06"), loc, []timerecord.TimeRecord{
		b.at(t, timerecord.TypeIn, "2024-03-05 22:00"),
		b.at(t, timerecord.TypeOut, "2024-03-06 06:00"),
	})

	require.Len(t, report.PerDay, 2)
	for _, day := range report.PerDay {
		assert.True(t, day.Incomplete, day.Date)
		assert.Equal(t, 0.0, day.TotalHours, day.Date)
	}
	assert.Equal(t, 0, report.DaysWorked)
}

func TestBuildReport_TimezoneChangesBucketing(t *testing.T) {
	// 01:00-02:30 UTC is the evening of the previous day in São Paulo
	records := []timerecord.TimeRecord{
		{ID: "a", Type: timerecord.TypeIn, Timestamp: time.Date(2024, time.March, 6, 1, 0, 0, 0, time.UTC)},
		{ID: "b", Type: timerecord.TypeOut, Timestamp: time.Date(2024, time.March, 6, 2, 30, 0, 0, time.UTC)},
	}

	local := BuildReport("employee-1", date(t, "2024-03-05"), date(t, "2024-03-06"), saoPaulo(t), records)
	require.Len(t, local.PerDay, 1)
	assert.Equal(t, "2024-03-05", local.PerDay[0].Date)
	assert.Equal(t, 1.5, local.PerDay[0].TotalHours)

	utc := BuildReport("employee-1", date(t, "2024-03-05"), date(t, "2024-03-06"), time.UTC, records)
	require.Len(t, utc.PerDay, 1)
	assert.Equal(t, "2024-03-06", utc.PerDay[0].Date)
	assert.Equal(t, 1.5, utc.PerDay[0].TotalHours)
}

func TestBuildReport_LocalMidnightStartsNewDay(t *testing.T) {
	// 03:00 UTC is exactly 00:00 in São Paulo
	records := []timerecord.TimeRecord{
		{ID: "a", Type: timerecord.TypeIn, Timestamp: time.Date(2024, time.March, 6, 1, 0, 0, 0, time.UTC)},
		{ID: "b", Type: timerecord.TypeOut, Timestamp: time.Date(2024, time.March, 6, 3, 0, 0, 0, time.UTC)},
	}

	local := BuildReport("employee-1", date(t, "2024-03-05"), date(t, "2024-03-06"), saoPaulo(t), records)
	require.Len(t, local.PerDay, 2)
	assert.Equal(t, "2024-03-05", local.PerDay[0].Date)
	assert.Equal(t, "2024-03-06", local.PerDay[1].Date)
	for _, day := range local.PerDay {
		assert.True(t, day.Incomplete, day.Date)
	}
}

func TestLocalRange(t *testing.T) {
	loc := saoPaulo(t)
	from, to := LocalRange(date(t, "2024-03-01"), date(t, "2024-03-31"), loc)

	assert.Equal(t, time.Date(2024, time.March, 1, 3, 0, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, time.Date(2024, time.April, 1, 3, 0, 0, 0, time.UTC), to.UTC())
}
