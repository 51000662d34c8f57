package memory

import (
	"context"
	"sync"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
)

type UserRepository struct {
	mu        sync.RWMutex
	users     map[string]user.User
	employees *EmployeeRepository // resolves User.EmployeeID like the SQL join
}

func NewUserRepository(employees *EmployeeRepository) *UserRepository {
	return &UserRepository{users: make(map[string]user.User), employees: employees}
}

func (r *UserRepository) withEmployee(u user.User) user.User {
	if r.employees == nil {
		return u
	}
	if emp, err := r.employees.GetByUserID(context.Background(), u.ID); err == nil {
		u.EmployeeID = &emp.ID
	}
	return u
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	r.mu.RLock()
	var found *user.User
	for _, u := range r.users {
		if u.Email == email {
			u := u
			found = &u
			break
		}
	}
	r.mu.RUnlock()

	if found == nil {
		return user.User{}, user.ErrUserNotFound
	}
	return r.withEmployee(*found), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	r.mu.RLock()
	u, ok := r.users[id]
	r.mu.RUnlock()

	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return r.withEmployee(u), nil
}

func (r *UserRepository) Create(ctx context.Context, newUser user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == newUser.Email {
			return user.User{}, user.ErrUserEmailExists
		}
	}
	newUser.ID = newID()
	newUser.CreatedAt = now()
	newUser.UpdatedAt = newUser.CreatedAt
	newUser.EmployeeID = nil
	r.users[newUser.ID] = newUser
	return newUser, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[userID]
	if !ok {
		return user.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = now()
	r.users[userID] = u
	return nil
}

type CompanyRepository struct {
	mu        sync.RWMutex
	companies map[string]company.Company
}

func NewCompanyRepository() *CompanyRepository {
	return &CompanyRepository{companies: make(map[string]company.Company)}
}

func (r *CompanyRepository) GetByID(ctx context.Context, id string) (company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[id]
	if !ok {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return c, nil
}

func (r *CompanyRepository) GetByName(ctx context.Context, name string) (company.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.companies {
		if c.Name == name {
			return c, nil
		}
	}
	return company.Company{}, company.ErrCompanyNotFound
}

func (r *CompanyRepository) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	newCompany.ID = newID()
	newCompany.CreatedAt = now()
	newCompany.UpdatedAt = newCompany.CreatedAt
	r.companies[newCompany.ID] = newCompany
	return newCompany, nil
}

// Len reports how many companies are stored
func (r *CompanyRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.companies)
}
