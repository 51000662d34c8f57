package company

import "time"

// Company scopes employees, time records and audit events. Every repository
// query takes a company id from the token claims. Companies are created only
// by the admin bootstrap at startup; GetByName exists so that seed is idempotent.
type Company struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
