package company

import "context"

type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (Company, error)
	// GetByName returns ErrCompanyNotFound when no company has that name.
	// Only the admin bootstrap looks companies up by name.
	GetByName(ctx context.Context, name string) (Company, error)
	Create(ctx context.Context, newCompany Company) (Company, error)
}
