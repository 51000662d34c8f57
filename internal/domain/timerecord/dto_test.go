package timerecord

import (
	"bytes"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func photo(name string, size int64) (multipart.File, *multipart.FileHeader) {
	return memFile{bytes.NewReader([]byte("img"))}, &multipart.FileHeader{Filename: name, Size: size}
}

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	return verrs.ToMap()
}

func TestClockRequest_Validate(t *testing.T) {
	file, header := photo("selfie.jpg", 1024)
	req := ClockRequest{Latitude: -23.5505, Longitude: -46.6333, File: file, FileHeader: header}
	assert.NoError(t, req.Validate())

	t.Run("missing photo", func(t *testing.T) {
		req := ClockRequest{Latitude: 0, Longitude: 0}
		assert.Contains(t, fieldErrors(t, req.Validate()), "photo")
	})

	t.Run("bad coordinates", func(t *testing.T) {
		file, header := photo("selfie.png", 1024)
		req := ClockRequest{Latitude: 91, Longitude: -181, File: file, FileHeader: header}
		errs := fieldErrors(t, req.Validate())
		assert.Contains(t, errs, "latitude")
		assert.Contains(t, errs, "longitude")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		file, header := photo("selfie.gif", 1024)
		req := ClockRequest{File: file, FileHeader: header}
		assert.Equal(t, "invalid file type: only jpg, jpeg, png allowed", fieldErrors(t, req.Validate())["photo"])
	})

	t.Run("too large", func(t *testing.T) {
		file, header := photo("selfie.jpeg", MaxPhotoSize+1)
		req := ClockRequest{File: file, FileHeader: header}
		assert.Contains(t, fieldErrors(t, req.Validate()), "photo")
	})
}

func TestCreateTimeRecordRequest_Validate(t *testing.T) {
	req := CreateTimeRecordRequest{
		EmployeeID:    "employee-1",
		Type:          "in",
		Timestamp:     "2024-03-05T08:00:00-03:00",
		Justification: "Esqueceu de registrar a entrada",
	}
	require.NoError(t, req.Validate())
	assert.Equal(t, time.Date(2024, time.March, 5, 11, 0, 0, 0, time.UTC), req.ParsedTimestamp)

	bad := CreateTimeRecordRequest{Type: "lunch", Timestamp: "05/03/2024 08:00"}
	errs := fieldErrors(t, bad.Validate())
	assert.Contains(t, errs, "employee_id")
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "timestamp")
	assert.Contains(t, errs, "justification")

	long := req
	long.Justification = strings.Repeat("a", 501)
	assert.Contains(t, fieldErrors(t, long.Validate()), "justification")
}

func TestCorrectTimeRecordRequest_Validate(t *testing.T) {
	ts := "2024-03-05T17:00:00Z"
	req := CorrectTimeRecordRequest{ID: "record-1", Timestamp: &ts, Justification: "Horário ajustado"}
	require.NoError(t, req.Validate())
	require.NotNil(t, req.ParsedTimestamp)
	assert.Equal(t, 17, req.ParsedTimestamp.Hour())

	empty := CorrectTimeRecordRequest{ID: "record-1", Justification: "nada"}
	assert.Equal(t, "type or timestamp must be provided", fieldErrors(t, empty.Validate())["type"])

	noReason := CorrectTimeRecordRequest{ID: "record-1", Timestamp: &ts}
	assert.Contains(t, fieldErrors(t, noReason.Validate()), "justification")
}

func TestTimeRecordFilter_Validate(t *testing.T) {
	var f TimeRecordFilter
	require.NoError(t, f.Validate())
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, "desc", f.SortOrder)

	start, end := "2024-03-10", "2024-03-01"
	inverted := TimeRecordFilter{StartDate: &start, EndDate: &end}
	assert.Contains(t, fieldErrors(t, inverted.Validate()), "end_date")

	typ := "break"
	badType := TimeRecordFilter{Type: &typ, Limit: 500}
	errs := fieldErrors(t, badType.Validate())
	assert.Contains(t, errs, "type")
	assert.Contains(t, errs, "limit")
}

func TestRecordType(t *testing.T) {
	assert.True(t, TypeIn.IsValid())
	assert.False(t, RecordType("IN").IsValid())
	assert.Equal(t, TypeOut, TypeIn.Next())
	assert.Equal(t, TypeIn, TypeOut.Next())
}
