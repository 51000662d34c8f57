package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
)

type EmployeeRepository struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee

	// FailList makes ListActive and ListAllActive return this error
	FailList error
}

func NewEmployeeRepository() *EmployeeRepository {
	return &EmployeeRepository{employees: make(map[string]employee.Employee)}
}

func (r *EmployeeRepository) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range r.employees {
		if e.CompanyID == newEmployee.CompanyID && e.EmployeeCode == newEmployee.EmployeeCode {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
	}
	if newEmployee.ID == "" {
		newEmployee.ID = newID()
	}
	if newEmployee.Status == "" {
		newEmployee.Status = employee.StatusActive
	}
	newEmployee.CreatedAt = now()
	newEmployee.UpdatedAt = newEmployee.CreatedAt
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.employees[id]
	if !ok || e.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

// LockForUpdate relies on Transactor for exclusion and reads like GetByID.
func (r *EmployeeRepository) LockForUpdate(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	return r.GetByID(ctx, id, companyID)
}

func (r *EmployeeRepository) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (r *EmployeeRepository) exists(companyID string, match func(employee.Employee) bool, excludeID *string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.employees {
		if e.CompanyID != companyID || (excludeID != nil && e.ID == *excludeID) {
			continue
		}
		if match(e) {
			return true
		}
	}
	return false
}

func (r *EmployeeRepository) ExistsByCode(ctx context.Context, companyID string, employeeCode string, excludeID *string) (bool, error) {
	return r.exists(companyID, func(e employee.Employee) bool { return e.EmployeeCode == employeeCode }, excludeID), nil
}

func (r *EmployeeRepository) ExistsByEmail(ctx context.Context, companyID string, email string, excludeID *string) (bool, error) {
	return r.exists(companyID, func(e employee.Employee) bool { return e.Email == email }, excludeID), nil
}

func (r *EmployeeRepository) Update(ctx context.Context, updated employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.employees[updated.ID]
	if !ok || current.CompanyID != updated.CompanyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	updated.CreatedAt = current.CreatedAt
	updated.UpdatedAt = now()
	r.employees[updated.ID] = updated
	return updated, nil
}

func (r *EmployeeRepository) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	r.mu.RLock()
	matched := make([]employee.Employee, 0)
	for _, e := range r.employees {
		if e.CompanyID != companyID {
			continue
		}
		if filter.Status != nil && string(e.Status) != *filter.Status {
			continue
		}
		if filter.Search != nil && *filter.Search != "" {
			needle := strings.ToLower(*filter.Search)
			haystack := strings.ToLower(e.FullName + " " + e.Email + " " + e.EmployeeCode)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		matched = append(matched, e)
	}
	r.mu.RUnlock()

	key := func(e employee.Employee) string {
		switch filter.SortBy {
		case "employee_code":
			return e.EmployeeCode
		case "created_at":
			return e.CreatedAt.Format("20060102150405.000000000")
		default:
			return e.FullName
		}
	}
	desc := strings.EqualFold(filter.SortOrder, "desc")
	sort.SliceStable(matched, func(i, j int) bool {
		if desc {
			return key(matched[i]) > key(matched[j])
		}
		return key(matched[i]) < key(matched[j])
	})

	return page(matched, filter.Page, filter.Limit), int64(len(matched)), nil
}

func (r *EmployeeRepository) ListActive(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return r.listActive(func(e employee.Employee) bool { return e.CompanyID == companyID })
}

func (r *EmployeeRepository) ListAllActive(ctx context.Context) ([]employee.Employee, error) {
	return r.listActive(func(employee.Employee) bool { return true })
}

func (r *EmployeeRepository) listActive(keep func(employee.Employee) bool) ([]employee.Employee, error) {
	if r.FailList != nil {
		return nil, r.FailList
	}

	r.mu.RLock()
	active := make([]employee.Employee, 0)
	for _, e := range r.employees {
		if e.IsActive() && keep(e) {
			active = append(active, e)
		}
	}
	r.mu.RUnlock()

	sort.Slice(active, func(i, j int) bool {
		if active[i].FullName == active[j].FullName {
			return active[i].ID < active[j].ID
		}
		return active[i].FullName < active[j].FullName
	})
	return active, nil
}
