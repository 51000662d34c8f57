package payroll

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/memory"
	timesheetservice "github.com/cmlabs-hris/ponto-backend-go/internal/service/timesheet"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payrollFixture struct {
	svc       payroll.PayrollService
	employees *memory.EmployeeRepository
	records   *memory.TimeRecordRepository
	ctx       context.Context
}

func newPayrollFixture(t *testing.T) payrollFixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	employees := memory.NewEmployeeRepository()
	records := memory.NewTimeRecordRepository(employees)
	timesheets := timesheetservice.NewTimesheetService(records, employees, loc)

	ja := jwtauth.New("HS256", []byte("payroll-test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{"user_id": "admin-1", "company_id": "company-1", "role": "admin"})
	require.NoError(t, err)

	return payrollFixture{
		svc:       NewPayrollService(employees, timesheets, 2),
		employees: employees,
		records:   records,
		ctx:       jwtauth.NewContext(context.Background(), token, nil),
	}
}

func (f payrollFixture) addEmployee(t *testing.T, id, name, rate string) {
	t.Helper()
	_, err := f.employees.Create(context.Background(), employee.Employee{
		ID:           id,
		CompanyID:    "company-1",
		EmployeeCode: id,
		FullName:     name,
		HourlyRate:   decimal.RequireFromString(rate),
		Timezone:     "America/Sao_Paulo",
	})
	require.NoError(t, err)
}

// workDay stores an in/out pair on the given local date
func (f payrollFixture) workDay(t *testing.T, employeeID, date, in, out string) {
	t.Helper()
	for typ, clock := range map[timerecord.RecordType]string{timerecord.TypeIn: in, timerecord.TypeOut: out} {
		ts, err := time.Parse(time.RFC3339, date+"T"+clock+":00-03:00")
		require.NoError(t, err)
		_, err = f.records.Create(context.Background(), timerecord.TimeRecord{CompanyID: "company-1", EmployeeID: employeeID, Type: typ, Timestamp: ts})
		require.NoError(t, err)
	}
}

func TestPayrollService_Calculate(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee(t, "e1", "Ana Souza", "25.50")
	f.workDay(t, "e1", "2024-03-05", "08:00", "16:00")

	calc, err := f.svc.Calculate(f.ctx, payroll.CalculateRequest{EmployeeID: "e1", StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)

	assert.Equal(t, "Ana Souza", calc.EmployeeName)
	assert.InDelta(t, 8.0, calc.TotalHours, 1e-9)
	assert.Equal(t, "204.00", calc.TotalPayment.StringFixed(2))
	assert.Len(t, calc.SourceRecords, 2)

	override := decimal.RequireFromString("10")
	calc, err = f.svc.Calculate(f.ctx, payroll.CalculateRequest{EmployeeID: "e1", HourlyRate: &override, StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)
	assert.Equal(t, "80.00", calc.TotalPayment.StringFixed(2))
}

func TestPayrollService_Calculate_InvalidInput(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee(t, "e1", "Ana Souza", "25.50")
	f.addEmployee(t, "e2", "Sem Taxa", "0")

	zero := decimal.Zero
	_, err := f.svc.Calculate(f.ctx, payroll.CalculateRequest{EmployeeID: "e1", HourlyRate: &zero, StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.ErrorIs(t, err, payroll.ErrInvalidInput)

	_, err = f.svc.Calculate(f.ctx, payroll.CalculateRequest{EmployeeID: "e2", StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.ErrorIs(t, err, payroll.ErrInvalidInput)

	_, err = f.svc.Calculate(f.ctx, payroll.CalculateRequest{EmployeeID: "e1", StartDate: "2024-03-31", EndDate: "2024-03-01"})
	var inputErr *payroll.InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "end_date", inputErr.Field)

	_, err = f.svc.Calculate(f.ctx, payroll.CalculateRequest{EmployeeID: "ghost", StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestPayrollService_CalculateAll(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee(t, "e1", "Ana Souza", "25.50")
	f.addEmployee(t, "e2", "Bruno Lima", "30.00")
	f.addEmployee(t, "e3", "Carla Dias", "20.00")
	f.addEmployee(t, "e4", "Davi Rocha", "0")

	f.workDay(t, "e1", "2024-03-05", "08:00", "16:00")
	f.workDay(t, "e2", "2024-03-05", "09:00", "11:00")
	f.workDay(t, "e3", "2024-03-05", "08:00", "12:00")
	f.records.Fail("e2", errors.New("connection reset"))

	result, err := f.svc.CalculateAll(f.ctx, payroll.BatchCalculateRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)

	require.Len(t, result.Rows, 4)
	names := []string{result.Rows[0].EmployeeName, result.Rows[1].EmployeeName, result.Rows[2].EmployeeName, result.Rows[3].EmployeeName}
	assert.Equal(t, []string{"Ana Souza", "Bruno Lima", "Carla Dias", "Davi Rocha"}, names)

	assert.Equal(t, "204.00", result.Rows[0].TotalPayment.StringFixed(2))
	require.NotNil(t, result.Rows[1].Error)
	assert.Contains(t, *result.Rows[1].Error, "connection reset")
	assert.True(t, result.Rows[1].TotalPayment.IsZero())
	assert.Equal(t, "80.00", result.Rows[2].TotalPayment.StringFixed(2))
	require.NotNil(t, result.Rows[3].Error)
	assert.Equal(t, payroll.ErrHourlyRateMissing.Error(), *result.Rows[3].Error)

	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, "284.00", result.GrandTotal.StringFixed(2))
	assert.InDelta(t, 12.0, result.TotalHours, 1e-9)
	assert.Equal(t, "2024-03-01", result.Start)
}

func TestPayrollService_CalculateAll_RateOverride(t *testing.T) {
	f := newPayrollFixture(t)
	f.addEmployee(t, "e1", "Ana Souza", "25.50")
	f.addEmployee(t, "e2", "Davi Rocha", "0")
	f.workDay(t, "e1", "2024-03-05", "08:00", "10:00")
	f.workDay(t, "e2", "2024-03-05", "08:00", "09:00")

	rate := decimal.RequireFromString("50")
	result, err := f.svc.CalculateAll(f.ctx, payroll.BatchCalculateRequest{HourlyRate: &rate, StartDate: "2024-03-01", EndDate: "2024-03-31"})
	require.NoError(t, err)

	assert.Equal(t, 0, result.Failed)
	assert.Equal(t, "150.00", result.GrandTotal.StringFixed(2))

	negative := decimal.RequireFromString("-1")
	_, err = f.svc.CalculateAll(f.ctx, payroll.BatchCalculateRequest{HourlyRate: &negative, StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.ErrorIs(t, err, payroll.ErrInvalidInput)

	_, err = f.svc.CalculateAll(f.ctx, payroll.BatchCalculateRequest{StartDate: "2024-03-31", EndDate: "2024-03-01"})
	assert.ErrorIs(t, err, payroll.ErrInvalidInput)
}

func TestPayrollService_CalculateAll_ListFailure(t *testing.T) {
	f := newPayrollFixture(t)
	f.employees.FailList = errors.New("database unavailable")

	_, err := f.svc.CalculateAll(f.ctx, payroll.BatchCalculateRequest{StartDate: "2024-03-01", EndDate: "2024-03-31"})
	assert.Error(t, err)
}
