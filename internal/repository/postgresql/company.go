package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/company"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// Create implements company.CompanyRepository.
func (c *companyRepositoryImpl) Create(ctx context.Context, newCompany company.Company) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		INSERT INTO companies (name)
		VALUES ($1)
		RETURNING id, name, created_at, updated_at
	`

	var created company.Company
	err := q.QueryRow(ctx, query, newCompany.Name).Scan(&created.ID, &created.Name, &created.CreatedAt, &created.UpdatedAt)
	if err != nil {
		return company.Company{}, fmt.Errorf("failed to create company: %w", err)
	}
	return created, nil
}

// GetByID implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	return c.getBy(ctx, "id", id)
}

// GetByName implements company.CompanyRepository.
func (c *companyRepositoryImpl) GetByName(ctx context.Context, name string) (company.Company, error) {
	return c.getBy(ctx, "name", name)
}

func (c *companyRepositoryImpl) getBy(ctx context.Context, column, value string) (company.Company, error) {
	q := GetQuerier(ctx, c.db)

	query := fmt.Sprintf(`SELECT id, name, created_at, updated_at FROM companies WHERE %s = $1`, column)

	var found company.Company
	err := q.QueryRow(ctx, query, value).Scan(&found.ID, &found.Name, &found.CreatedAt, &found.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.Company{}, company.ErrCompanyNotFound
		}
		return company.Company{}, fmt.Errorf("failed to get company by %s: %w", column, err)
	}
	return found, nil
}
