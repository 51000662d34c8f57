package timerecord

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"strings"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/memory"
	auditservice "github.com/cmlabs-hris/ponto-backend-go/internal/service/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

type clockFixture struct {
	svc       *TimeRecordServiceImpl
	employees *memory.EmployeeRepository
	records   *memory.TimeRecordRepository
	audits    *memory.AuditRepository
	loc       *time.Location
	clock     time.Time
}

func newClockFixture(t *testing.T) *clockFixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	employees := memory.NewEmployeeRepository()
	records := memory.NewTimeRecordRepository(employees)
	audits := memory.NewAuditRepository()

	local, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/uploads")
	require.NoError(t, err)

	f := &clockFixture{employees: employees, records: records, audits: audits, loc: loc}
	f.svc = NewTimeRecordService(
		memory.Transactor{},
		records,
		employees,
		file.NewFileService(local),
		auditservice.NewAuditService(audits),
		loc,
	).(*TimeRecordServiceImpl)
	f.svc.now = func() time.Time { return f.clock }

	f.addEmployee(t, "employee-1", "user-1", "Ana Souza")
	return f
}

func (f *clockFixture) addEmployee(t *testing.T, id, userID, name string) {
	t.Helper()
	_, err := f.employees.Create(context.Background(), employee.Employee{
		ID:           id,
		CompanyID:    "company-1",
		UserID:       &userID,
		EmployeeCode: strings.ToUpper(id),
		FullName:     name,
		HourlyRate:   decimal.NewFromInt(20),
		Timezone:     "America/Sao_Paulo",
	})
	require.NoError(t, err)
}

// at sets the service clock to a Sao Paulo wall time
func (f *clockFixture) at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, f.loc)
	require.NoError(t, err)
	f.clock = ts
	return ts
}

func tokenContext(t *testing.T, claims map[string]interface{}) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("timerecord-test-secret"), nil)
	claims["company_id"] = "company-1"
	claims["type"] = "access"
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func employeeContext(t *testing.T, userID, employeeID string) context.Context {
	return tokenContext(t, map[string]interface{}{"user_id": userID, "employee_id": employeeID, "role": "employee"})
}

func adminContext(t *testing.T) context.Context {
	return tokenContext(t, map[string]interface{}{"user_id": "admin-1", "role": "admin"})
}

func clockRequest(t *testing.T) timerecord.ClockRequest {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		for y := 0; y < 48; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 4), G: uint8(y * 5), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))

	var photo multipart.File = memFile{bytes.NewReader(buf.Bytes())}
	return timerecord.ClockRequest{
		Latitude:   -23.5505,
		Longitude:  -46.6333,
		File:       photo,
		FileHeader: &multipart.FileHeader{Filename: "selfie.png", Size: int64(buf.Len())},
	}
}

func TestClock_InThenOut(t *testing.T) {
	f := newClockFixture(t)
	ctx := employeeContext(t, "user-1", "employee-1")

	f.at(t, "2024-03-05 08:00")
	in, err := f.svc.ClockIn(ctx, clockRequest(t))
	require.NoError(t, err)

	assert.Equal(t, "in", in.Type)
	assert.Equal(t, "2024-03-05T08:00:00-03:00", in.Timestamp)
	assert.Equal(t, "05/03/2024", in.LocalDate)
	assert.Equal(t, "08:00", in.LocalTime)
	assert.False(t, in.Corrected)
	require.NotNil(t, in.EmployeeName)
	assert.Equal(t, "Ana Souza", *in.EmployeeName)
	require.NotNil(t, in.PhotoURL)
	assert.True(t, strings.HasPrefix(*in.PhotoURL, "http://localhost:8080/uploads/time_records/2024-03-05/employee-1-in-"))

	f.at(t, "2024-03-05 09:00")
	_, err = f.svc.ClockIn(ctx, clockRequest(t))
	assert.ErrorIs(t, err, timerecord.ErrAlreadyClockedIn)

	f.at(t, "2024-03-05 12:00")
	out, err := f.svc.ClockOut(ctx, clockRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "out", out.Type)
	assert.Equal(t, "12:00", out.LocalTime)

	_, err = f.svc.ClockOut(ctx, clockRequest(t))
	assert.ErrorIs(t, err, timerecord.ErrNotClockedIn)
}

func TestClock_ConcurrentOutsPairWithOneIn(t *testing.T) {
	f := newClockFixture(t)
	ctx := employeeContext(t, "user-1", "employee-1")

	f.at(t, "2024-03-05 08:00")
	_, err := f.svc.ClockIn(ctx, clockRequest(t))
	require.NoError(t, err)
	f.at(t, "2024-03-05 12:00")

	const attempts = 8
	requests := make([]timerecord.ClockRequest, attempts)
	for i := range requests {
		requests[i] = clockRequest(t)
	}

	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range requests {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.ClockOut(ctx, requests[i])
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, timerecord.ErrNotClockedIn)
	}
	assert.Equal(t, 1, succeeded)

	employeeID := "employee-1"
	_, total, err := f.records.List(context.Background(), timerecord.TimeRecordFilter{EmployeeID: &employeeID}, "company-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestClock_OutWithoutIn(t *testing.T) {
	f := newClockFixture(t)
	f.at(t, "2024-03-05 08:00")

	_, err := f.svc.ClockOut(employeeContext(t, "user-1", "employee-1"), clockRequest(t))
	assert.ErrorIs(t, err, timerecord.ErrNotClockedIn)
}

func TestClock_SameLocalDayAcrossUTCMidnight(t *testing.T) {
	f := newClockFixture(t)
	ctx := employeeContext(t, "user-1", "employee-1")

	// 22:30 in Sao Paulo is already the next day in UTC
	f.at(t, "2024-03-05 22:30")
	in, err := f.svc.ClockIn(ctx, clockRequest(t))
	require.NoError(t, err)
	assert.Equal(t, "05/03/2024", in.LocalDate)

	f.at(t, "2024-03-05 23:00")
	_, err = f.svc.ClockIn(ctx, clockRequest(t))
	assert.ErrorIs(t, err, timerecord.ErrAlreadyClockedIn)
}

func TestClock_OpenInFromPreviousDay(t *testing.T) {
	f := newClockFixture(t)
	ctx := employeeContext(t, "user-1", "employee-1")

	f.at(t, "2024-03-05 08:00")
	_, err := f.svc.ClockIn(ctx, clockRequest(t))
	require.NoError(t, err)

	f.at(t, "2024-03-06 08:00")
	_, err = f.svc.ClockIn(ctx, clockRequest(t))
	assert.NoError(t, err)
}

func TestClock_Rejections(t *testing.T) {
	f := newClockFixture(t)
	f.at(t, "2024-03-05 08:00")

	_, err := f.svc.ClockIn(adminContext(t), clockRequest(t))
	assert.ErrorIs(t, err, auth.ErrEmployeeProfileRequired)

	f.addEmployee(t, "employee-2", "user-2", "Bruno Lima")
	emp, err := f.employees.GetByID(context.Background(), "employee-2", "company-1")
	require.NoError(t, err)
	emp.Status = employee.StatusInactive
	_, err = f.employees.Update(context.Background(), emp)
	require.NoError(t, err)

	_, err = f.svc.ClockIn(employeeContext(t, "user-2", "employee-2"), clockRequest(t))
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)

	_, err = f.svc.ClockIn(employeeContext(t, "user-1", "employee-1"), timerecord.ClockRequest{Latitude: 100})
	assert.Error(t, err)
}

func TestGetStatus(t *testing.T) {
	f := newClockFixture(t)
	ctx := employeeContext(t, "user-1", "employee-1")

	status, err := f.svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.False(t, status.ClockedIn)
	assert.Equal(t, "in", status.NextType)
	assert.Nil(t, status.LastRecord)

	f.at(t, "2024-03-05 08:00")
	_, err = f.svc.ClockIn(ctx, clockRequest(t))
	require.NoError(t, err)

	status, err = f.svc.GetStatus(ctx)
	require.NoError(t, err)
	assert.True(t, status.ClockedIn)
	assert.Equal(t, "out", status.NextType)
	require.NotNil(t, status.LastRecord)
	assert.Equal(t, "08:00", status.LastRecord.LocalTime)
}

func TestAdminCreate(t *testing.T) {
	f := newClockFixture(t)
	ctx := adminContext(t)
	f.at(t, "2024-03-06 10:00")

	resp, err := f.svc.Create(ctx, timerecord.CreateTimeRecordRequest{
		EmployeeID:    "employee-1",
		Type:          "out",
		Timestamp:     "2024-03-05T17:00:00-03:00",
		Justification: "Esqueceu de registrar a saída",
	})
	require.NoError(t, err)

	assert.True(t, resp.Corrected)
	require.NotNil(t, resp.CorrectedBy)
	assert.Equal(t, "admin-1", *resp.CorrectedBy)
	assert.Equal(t, "17:00", resp.LocalTime)
	assert.Nil(t, resp.PhotoURL)

	events := f.audits.Events()
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionTimeRecordCreate, events[0].Action)
	assert.Equal(t, resp.ID, events[0].EntityID)

	_, err = f.svc.Create(ctx, timerecord.CreateTimeRecordRequest{
		EmployeeID:    "employee-1",
		Type:          "in",
		Timestamp:     "2024-03-07T08:00:00-03:00",
		Justification: "Adiantado",
	})
	assert.ErrorIs(t, err, timerecord.ErrFutureTimestamp)

	_, err = f.svc.Create(ctx, timerecord.CreateTimeRecordRequest{
		EmployeeID:    "nobody",
		Type:          "in",
		Timestamp:     "2024-03-05T08:00:00-03:00",
		Justification: "Teste",
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestAdminCorrect(t *testing.T) {
	f := newClockFixture(t)
	f.at(t, "2024-03-05 08:10")
	in, err := f.svc.ClockIn(employeeContext(t, "user-1", "employee-1"), clockRequest(t))
	require.NoError(t, err)

	f.at(t, "2024-03-06 09:00")
	ctx := adminContext(t)
	ts := "2024-03-05T08:00:00-03:00"
	resp, err := f.svc.Correct(ctx, timerecord.CorrectTimeRecordRequest{ID: in.ID, Timestamp: &ts, Justification: "Relógio atrasado"})
	require.NoError(t, err)

	assert.Equal(t, "08:00", resp.LocalTime)
	assert.True(t, resp.Corrected)
	require.NotNil(t, resp.Justification)
	assert.Equal(t, "Relógio atrasado", *resp.Justification)

	events := f.audits.Events()
	require.Len(t, events, 1)
	assert.Equal(t, audit.ActionTimeRecordCorrect, events[0].Action)
	assert.Contains(t, string(events[0].Before), `"local_time":"08:10"`)
	assert.Contains(t, string(events[0].After), `"local_time":"08:00"`)

	_, err = f.svc.Correct(ctx, timerecord.CorrectTimeRecordRequest{ID: in.ID, Timestamp: &ts, Justification: "De novo"})
	assert.ErrorIs(t, err, timerecord.ErrNothingToCorrect)

	_, err = f.svc.Correct(ctx, timerecord.CorrectTimeRecordRequest{ID: "missing", Timestamp: &ts, Justification: "x"})
	assert.ErrorIs(t, err, timerecord.ErrTimeRecordNotFound)
}

func TestGetMyRecords_LocalDateRange(t *testing.T) {
	f := newClockFixture(t)
	ctx := employeeContext(t, "user-1", "employee-1")

	f.at(t, "2024-03-05 22:30")
	_, err := f.svc.ClockIn(ctx, clockRequest(t))
	require.NoError(t, err)
	f.at(t, "2024-03-05 23:30")
	_, err = f.svc.ClockOut(ctx, clockRequest(t))
	require.NoError(t, err)
	f.at(t, "2024-03-06 08:00")
	_, err = f.svc.ClockIn(ctx, clockRequest(t))
	require.NoError(t, err)

	day := "2024-03-05"
	resp, err := f.svc.GetMyRecords(ctx, timerecord.TimeRecordFilter{StartDate: &day, EndDate: &day})
	require.NoError(t, err)

	assert.Equal(t, int64(2), resp.TotalCount)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "out", resp.Records[0].Type, "newest first")
	for _, record := range resp.Records {
		assert.Equal(t, "05/03/2024", record.LocalDate)
	}
}

func TestAdminList(t *testing.T) {
	f := newClockFixture(t)
	f.addEmployee(t, "employee-2", "user-2", "Bruno Lima")

	f.at(t, "2024-03-05 08:00")
	_, err := f.svc.ClockIn(employeeContext(t, "user-1", "employee-1"), clockRequest(t))
	require.NoError(t, err)
	_, err = f.svc.ClockIn(employeeContext(t, "user-2", "employee-2"), clockRequest(t))
	require.NoError(t, err)

	resp, err := f.svc.List(adminContext(t), timerecord.TimeRecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.TotalCount)

	only := "employee-2"
	resp, err = f.svc.List(adminContext(t), timerecord.TimeRecordFilter{EmployeeID: &only})
	require.NoError(t, err)
	require.Len(t, resp.Records, 1)
	require.NotNil(t, resp.Records[0].EmployeeName)
	assert.Equal(t, "Bruno Lima", *resp.Records[0].EmployeeName)

	got, err := f.svc.Get(adminContext(t), resp.Records[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "employee-2", got.EmployeeID)
}

func TestOpenPhoto(t *testing.T) {
	f := newClockFixture(t)
	f.addEmployee(t, "employee-2", "user-2", "Bruno Lima")
	owner := employeeContext(t, "user-1", "employee-1")

	f.at(t, "2024-03-05 08:00")
	in, err := f.svc.ClockIn(owner, clockRequest(t))
	require.NoError(t, err)

	rc, err := f.svc.OpenPhoto(owner, in.ID)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xD8}, data[:2], "stored as JPEG")

	_, err = f.svc.OpenPhoto(employeeContext(t, "user-2", "employee-2"), in.ID)
	assert.ErrorIs(t, err, user.ErrInsufficientPermissions)

	rc, err = f.svc.OpenPhoto(adminContext(t), in.ID)
	require.NoError(t, err)
	require.NoError(t, rc.Close())

	f.at(t, "2024-03-06 10:00")
	manual, err := f.svc.Create(adminContext(t), timerecord.CreateTimeRecordRequest{
		EmployeeID:    "employee-1",
		Type:          "out",
		Timestamp:     "2024-03-05T12:00:00-03:00",
		Justification: "Registro manual",
	})
	require.NoError(t, err)

	_, err = f.svc.OpenPhoto(adminContext(t), manual.ID)
	assert.ErrorIs(t, err, timerecord.ErrPhotoNotFound)
}
