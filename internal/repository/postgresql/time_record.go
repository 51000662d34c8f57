package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type timeRecordRepositoryImpl struct {
	db *database.DB
}

func NewTimeRecordRepository(db *database.DB) timerecord.TimeRecordRepository {
	return &timeRecordRepositoryImpl{db: db}
}

const timeRecordColumns = `
	tr.id, tr.company_id, tr.employee_id, tr.type, tr.recorded_at, tr.latitude, tr.longitude,
	tr.photo_url, tr.justification, tr.corrected, tr.corrected_by, tr.created_by,
	tr.created_at, tr.updated_at
`

func scanTimeRecord(row pgx.Row, extra ...interface{}) (timerecord.TimeRecord, error) {
	var r timerecord.TimeRecord
	dest := []interface{}{
		&r.ID, &r.CompanyID, &r.EmployeeID, &r.Type, &r.Timestamp, &r.Latitude, &r.Longitude,
		&r.PhotoURL, &r.Justification, &r.Corrected, &r.CorrectedBy, &r.CreatedBy,
		&r.CreatedAt, &r.UpdatedAt,
	}
	err := row.Scan(append(dest, extra...)...)
	r.Timestamp = r.Timestamp.UTC()
	return r, err
}

// Create implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) Create(ctx context.Context, record timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO time_records AS tr (
			company_id, employee_id, type, recorded_at, latitude, longitude,
			photo_url, justification, corrected, corrected_by, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + timeRecordColumns

	created, err := scanTimeRecord(q.QueryRow(ctx, query,
		record.CompanyID,
		record.EmployeeID,
		record.Type,
		record.Timestamp.UTC(),
		record.Latitude,
		record.Longitude,
		record.PhotoURL,
		record.Justification,
		record.Corrected,
		record.CorrectedBy,
		record.CreatedBy,
	))
	if err != nil {
		return timerecord.TimeRecord{}, fmt.Errorf("failed to create time record: %w", err)
	}
	return created, nil
}

// GetByID implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + timeRecordColumns + `, e.full_name
		FROM time_records tr
		JOIN employees e ON e.id = tr.employee_id
		WHERE tr.id = $1 AND tr.company_id = $2
	`

	var employeeName string
	record, err := scanTimeRecord(q.QueryRow(ctx, query, id, companyID), &employeeName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timerecord.TimeRecord{}, timerecord.ErrTimeRecordNotFound
		}
		return timerecord.TimeRecord{}, fmt.Errorf("failed to get time record by id: %w", err)
	}
	record.EmployeeName = &employeeName
	return record, nil
}

// Update implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) Update(ctx context.Context, record timerecord.TimeRecord) (timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		UPDATE time_records AS tr
		SET type = $1, recorded_at = $2, justification = $3, corrected = $4,
			corrected_by = $5, updated_at = NOW()
		WHERE tr.id = $6 AND tr.company_id = $7
		RETURNING ` + timeRecordColumns

	updated, err := scanTimeRecord(q.QueryRow(ctx, query,
		record.Type,
		record.Timestamp.UTC(),
		record.Justification,
		record.Corrected,
		record.CorrectedBy,
		record.ID,
		record.CompanyID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timerecord.TimeRecord{}, timerecord.ErrTimeRecordNotFound
		}
		return timerecord.TimeRecord{}, fmt.Errorf("failed to update time record with id %s: %w", record.ID, err)
	}
	return updated, nil
}

// GetLastByEmployee implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) GetLastByEmployee(ctx context.Context, employeeID string, companyID string) (*timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records tr
		WHERE tr.employee_id = $1 AND tr.company_id = $2
		ORDER BY tr.recorded_at DESC, tr.id DESC
		LIMIT 1
	`

	record, err := scanTimeRecord(q.QueryRow(ctx, query, employeeID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last time record: %w", err)
	}
	return &record, nil
}

// ListByEmployeeAndRange implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, companyID string, from, to time.Time) ([]timerecord.TimeRecord, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT ` + timeRecordColumns + `
		FROM time_records tr
		WHERE tr.employee_id = $1 AND tr.company_id = $2
			AND tr.recorded_at >= $3 AND tr.recorded_at < $4
		ORDER BY tr.recorded_at ASC, tr.id ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to list time records by range: %w", err)
	}
	defer rows.Close()

	records := make([]timerecord.TimeRecord, 0)
	for rows.Next() {
		record, err := scanTimeRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// List implements timerecord.TimeRecordRepository.
func (t *timeRecordRepositoryImpl) List(ctx context.Context, filter timerecord.TimeRecordFilter, companyID string) ([]timerecord.TimeRecord, int64, error) {
	q := GetQuerier(ctx, t.db)

	conditions := []string{"tr.company_id = $1"}
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("tr.employee_id = $%d", argIdx))
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Type != nil && *filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("tr.type = $%d", argIdx))
		args = append(args, *filter.Type)
		argIdx++
	}
	if filter.Corrected != nil {
		conditions = append(conditions, fmt.Sprintf("tr.corrected = $%d", argIdx))
		args = append(args, *filter.Corrected)
		argIdx++
	}
	if filter.From != nil {
		conditions = append(conditions, fmt.Sprintf("tr.recorded_at >= $%d", argIdx))
		args = append(args, filter.From.UTC())
		argIdx++
	}
	if filter.To != nil {
		conditions = append(conditions, fmt.Sprintf("tr.recorded_at < $%d", argIdx))
		args = append(args, filter.To.UTC())
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM time_records tr WHERE %s", whereClause)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count time records: %w", err)
	}

	sortOrder := "DESC"
	if strings.ToUpper(filter.SortOrder) == "ASC" {
		sortOrder = "ASC"
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s, e.full_name
		FROM time_records tr
		JOIN employees e ON e.id = tr.employee_id
		WHERE %s
		ORDER BY tr.recorded_at %s, tr.id %s
		LIMIT $%d OFFSET $%d
	`, timeRecordColumns, whereClause, sortOrder, sortOrder, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list time records: %w", err)
	}
	defer rows.Close()

	records := make([]timerecord.TimeRecord, 0)
	for rows.Next() {
		var employeeName string
		record, err := scanTimeRecord(rows, &employeeName)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan time record: %w", err)
		}
		record.EmployeeName = &employeeName
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}
