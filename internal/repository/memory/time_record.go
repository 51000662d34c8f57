package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
)

type TimeRecordRepository struct {
	mu      sync.RWMutex
	records map[string]timerecord.TimeRecord
	names   func(employeeID string) *string
	failFor map[string]error // set by Fail
}

// NewTimeRecordRepository fills EmployeeName from employees, which may be nil.
func NewTimeRecordRepository(employees *EmployeeRepository) *TimeRecordRepository {
	repo := &TimeRecordRepository{records: make(map[string]timerecord.TimeRecord), failFor: make(map[string]error)}
	if employees != nil {
		repo.names = func(employeeID string) *string {
			employees.mu.RLock()
			defer employees.mu.RUnlock()
			if e, ok := employees.employees[employeeID]; ok {
				name := e.FullName
				return &name
			}
			return nil
		}
	}
	return repo
}

func (r *TimeRecordRepository) withName(record timerecord.TimeRecord) timerecord.TimeRecord {
	if r.names != nil {
		record.EmployeeName = r.names(record.EmployeeID)
	}
	return record
}

func (r *TimeRecordRepository) Create(ctx context.Context, record timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = newID()
	}
	record.Timestamp = record.Timestamp.UTC()
	record.CreatedAt = now()
	record.UpdatedAt = record.CreatedAt
	record.EmployeeName = nil
	r.records[record.ID] = record
	return record, nil
}

func (r *TimeRecordRepository) GetByID(ctx context.Context, id string, companyID string) (timerecord.TimeRecord, error) {
	r.mu.RLock()
	record, ok := r.records[id]
	r.mu.RUnlock()

	if !ok || record.CompanyID != companyID {
		return timerecord.TimeRecord{}, timerecord.ErrTimeRecordNotFound
	}
	return r.withName(record), nil
}

func (r *TimeRecordRepository) Update(ctx context.Context, record timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.records[record.ID]
	if !ok || current.CompanyID != record.CompanyID {
		return timerecord.TimeRecord{}, timerecord.ErrTimeRecordNotFound
	}
	record.Timestamp = record.Timestamp.UTC()
	record.CreatedAt = current.CreatedAt
	record.UpdatedAt = now()
	record.EmployeeName = nil
	r.records[record.ID] = record
	return record, nil
}

func (r *TimeRecordRepository) sorted(keep func(timerecord.TimeRecord) bool, desc bool) []timerecord.TimeRecord {
	r.mu.RLock()
	out := make([]timerecord.TimeRecord, 0)
	for _, record := range r.records {
		if keep(record) {
			out = append(out, r.withName(record))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if desc {
			a, b = b, a
		}
		if a.Timestamp.Equal(b.Timestamp) {
			return a.ID < b.ID
		}
		return a.Timestamp.Before(b.Timestamp)
	})
	return out
}

func (r *TimeRecordRepository) GetLastByEmployee(ctx context.Context, employeeID string, companyID string) (*timerecord.TimeRecord, error) {
	records := r.sorted(func(t timerecord.TimeRecord) bool {
		return t.EmployeeID == employeeID && t.CompanyID == companyID
	}, true)
	if len(records) == 0 {
		return nil, nil
	}
	last := records[0]
	last.EmployeeName = nil
	return &last, nil
}

func (r *TimeRecordRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]timerecord.TimeRecord, error) {
	r.mu.RLock()
	failure := r.failFor[employeeID]
	r.mu.RUnlock()
	if failure != nil {
		return nil, failure
	}

	records := r.sorted(func(t timerecord.TimeRecord) bool {
		return t.EmployeeID == employeeID && t.CompanyID == companyID &&
			!t.Timestamp.Before(from) && t.Timestamp.Before(to)
	}, false)
	for i := range records {
		records[i].EmployeeName = nil
	}
	return records, nil
}

func (r *TimeRecordRepository) List(ctx context.Context, filter timerecord.TimeRecordFilter, companyID string) ([]timerecord.TimeRecord, int64, error) {
	records := r.sorted(func(t timerecord.TimeRecord) bool {
		switch {
		case t.CompanyID != companyID:
			return false
		case filter.EmployeeID != nil && *filter.EmployeeID != "" && t.EmployeeID != *filter.EmployeeID:
			return false
		case filter.Type != nil && *filter.Type != "" && string(t.Type) != *filter.Type:
			return false
		case filter.Corrected != nil && t.Corrected != *filter.Corrected:
			return false
		case filter.From != nil && t.Timestamp.Before(*filter.From):
			return false
		case filter.To != nil && !t.Timestamp.Before(*filter.To):
			return false
		}
		return true
	}, !strings.EqualFold(filter.SortOrder, "asc"))

	return page(records, filter.Page, filter.Limit), int64(len(records)), nil
}

// Fail makes every range query of employeeID return err
func (r *TimeRecordRepository) Fail(employeeID string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failFor[employeeID] = err
}
