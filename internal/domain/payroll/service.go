package payroll

import "context"

// PayrollService derives payments from worked hours
type PayrollService interface {
	// Calculate computes the payment of one employee
	Calculate(ctx context.Context, req CalculateRequest) (PayrollCalculation, error)

	// CalculateAll computes the payment of every active employee of the company.
	// One employee failing never aborts the batch.
	CalculateAll(ctx context.Context, req BatchCalculateRequest) (BatchResult, error)
}
