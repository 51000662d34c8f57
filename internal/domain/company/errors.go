package company

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	// ErrInvalidCompanyName rejects an empty SEED_COMPANY_NAME
	ErrInvalidCompanyName = errors.New("company name cannot be empty")
)
