package employee

import "context"

// EmployeeRepository defines data access methods for employees.
// Methods taking companyID never return rows of another company.
type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)

	// LockForUpdate loads the employee and holds its row lock until the
	// surrounding transaction ends. Clock events for one employee serialize on it.
	LockForUpdate(ctx context.Context, id string, companyID string) (Employee, error)

	ExistsByCode(ctx context.Context, companyID string, employeeCode string, excludeID *string) (bool, error)
	ExistsByEmail(ctx context.Context, companyID string, email string, excludeID *string) (bool, error)
	Update(ctx context.Context, updated Employee) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter, companyID string) ([]Employee, int64, error)

	// ListActive returns active employees of a company ordered by full name
	ListActive(ctx context.Context, companyID string) ([]Employee, error)

	// ListAllActive returns active employees across companies, used by scheduled jobs
	ListAllActive(ctx context.Context) ([]Employee, error)
}
