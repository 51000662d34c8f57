package timesheet

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/memory"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timesheetFixture struct {
	svc       timesheet.TimesheetService
	employees *memory.EmployeeRepository
	records   *memory.TimeRecordRepository
}

func newTimesheetFixture(t *testing.T) timesheetFixture {
	t.Helper()
	employees := memory.NewEmployeeRepository()
	records := memory.NewTimeRecordRepository(employees)

	for _, emp := range []employee.Employee{
		{ID: "employee-1", CompanyID: "company-1", EmployeeCode: "E1", FullName: "Ana Souza", Timezone: "America/Sao_Paulo"},
		{ID: "employee-2", CompanyID: "company-1", EmployeeCode: "E2", FullName: "Kenji Sato", Timezone: "Asia/Tokyo"},
	} {
		_, err := employees.Create(context.Background(), emp)
		require.NoError(t, err)
	}

	return timesheetFixture{
		svc:       NewTimesheetService(records, employees, time.UTC),
		employees: employees,
		records:   records,
	}
}

func (f timesheetFixture) record(t *testing.T, employeeID string, typ timerecord.RecordType, rfc3339 string) {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, rfc3339)
	require.NoError(t, err)
	_, err = f.records.Create(context.Background(), timerecord.TimeRecord{CompanyID: "company-1", EmployeeID: employeeID, Type: typ, Timestamp: ts})
	require.NoError(t, err)
}

func contextWith(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("timesheet-test-secret"), nil)
	claims["company_id"] = "company-1"
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func TestGetReport_UsesEmployeeTimezone(t *testing.T) {
	f := newTimesheetFixture(t)
	// 08:00-12:00 and 13:00-17:00 on 2024-03-05 in Sao Paulo
	f.record(t, "employee-1", timerecord.TypeIn, "2024-03-05T08:00:00-03:00")
	f.record(t, "employee-1", timerecord.TypeOut, "2024-03-05T12:00:00-03:00")
	f.record(t, "employee-1", timerecord.TypeIn, "2024-03-05T13:00:00-03:00")
	f.record(t, "employee-1", timerecord.TypeOut, "2024-03-05T17:00:00-03:00")
	// 22:00-23:30 local is past UTC midnight but still 2024-03-06 locally
	f.record(t, "employee-1", timerecord.TypeIn, "2024-03-06T22:00:00-03:00")
	f.record(t, "employee-1", timerecord.TypeOut, "2024-03-06T23:30:00-03:00")
	// Outside the range
	f.record(t, "employee-1", timerecord.TypeIn, "2024-03-07T08:00:00-03:00")

	ctx := contextWith(t, map[string]interface{}{"user_id": "admin-1", "role": "admin"})
	report, err := f.svc.GetReport(ctx, timesheet.ReportRequest{EmployeeID: "employee-1", StartDate: "2024-03-05", EndDate: "2024-03-06"})
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", report.EmployeeName)
	assert.Equal(t, "America/Sao_Paulo", report.Timezone)
	assert.InDelta(t, 9.5, report.TotalHours, 1e-9)
	assert.Equal(t, 2, report.DaysWorked)
	assert.InDelta(t, 4.75, report.AverageDailyHours, 1e-9)
	require.Len(t, report.PerDay, 2)
	assert.Equal(t, "2024-03-05", report.PerDay[0].Date)
	assert.Equal(t, "2024-03-06", report.PerDay[1].Date)
	assert.False(t, report.PerDay[1].Incomplete)
}

func TestGetReport_OtherTimezone(t *testing.T) {
	f := newTimesheetFixture(t)
	// 23:00 UTC on 2024-03-04 is 08:00 on 2024-03-05 in Tokyo
	f.record(t, "employee-2", timerecord.TypeIn, "2024-03-04T23:00:00Z")
	f.record(t, "employee-2", timerecord.TypeOut, "2024-03-05T08:00:00Z")

	ctx := contextWith(t, map[string]interface{}{"user_id": "admin-1", "role": "admin"})
	report, err := f.svc.GetReport(ctx, timesheet.ReportRequest{EmployeeID: "employee-2", StartDate: "2024-03-05", EndDate: "2024-03-05"})
	require.NoError(t, err)

	require.Len(t, report.PerDay, 1)
	assert.Equal(t, "2024-03-05", report.PerDay[0].Date)
	assert.InDelta(t, 9.0, report.TotalHours, 1e-9)
}

func TestGetMyReport(t *testing.T) {
	f := newTimesheetFixture(t)
	f.record(t, "employee-1", timerecord.TypeIn, "2024-03-05T08:00:00-03:00")

	ctx := contextWith(t, map[string]interface{}{"user_id": "user-1", "employee_id": "employee-1", "role": "employee"})
	report, err := f.svc.GetMyReport(ctx, timesheet.ReportRequest{EmployeeID: "employee-2", StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)

	assert.Equal(t, "employee-1", report.EmployeeID, "employee_id in the request is ignored")
	require.Len(t, report.PerDay, 1)
	assert.True(t, report.PerDay[0].Incomplete)
	assert.Equal(t, 0, report.DaysWorked)
	assert.Equal(t, 0.0, report.AverageDailyHours)

	admin := contextWith(t, map[string]interface{}{"user_id": "admin-1", "role": "admin"})
	_, err = f.svc.GetMyReport(admin, timesheet.ReportRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.ErrorIs(t, err, auth.ErrEmployeeProfileRequired)
}

func TestGetReport_Errors(t *testing.T) {
	f := newTimesheetFixture(t)
	ctx := contextWith(t, map[string]interface{}{"user_id": "admin-1", "role": "admin"})

	_, err := f.svc.GetReport(ctx, timesheet.ReportRequest{EmployeeID: "employee-1", StartDate: "2024-03-31", EndDate: "2024-03-01"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "end_date")

	_, err = f.svc.GetReport(ctx, timesheet.ReportRequest{EmployeeID: "ghost", StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	boom := errors.New("connection reset")
	f.records.Fail("employee-1", boom)
	_, err = f.svc.GetReport(ctx, timesheet.ReportRequest{EmployeeID: "employee-1", StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.ErrorIs(t, err, boom)
}
