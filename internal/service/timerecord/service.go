package timerecord

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/audit"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/format"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/file"
)

type TimeRecordServiceImpl struct {
	tx postgresql.Transactor
	timerecord.TimeRecordRepository
	employee.EmployeeRepository
	fileService  file.FileService
	auditService audit.AuditService
	defaultLoc   *time.Location
	now          func() time.Time
}

func NewTimeRecordService(
	tx postgresql.Transactor,
	timeRecordRepository timerecord.TimeRecordRepository,
	employeeRepository employee.EmployeeRepository,
	fileService file.FileService,
	auditService audit.AuditService,
	defaultLoc *time.Location,
) timerecord.TimeRecordService {
	return &TimeRecordServiceImpl{
		tx:                   tx,
		TimeRecordRepository: timeRecordRepository,
		EmployeeRepository:   employeeRepository,
		fileService:          fileService,
		auditService:         auditService,
		defaultLoc:           defaultLoc,
		now:                  time.Now,
	}
}

func (s *TimeRecordServiceImpl) toResponse(ctx context.Context, record timerecord.TimeRecord, loc *time.Location) timerecord.TimeRecordResponse {
	local := record.Timestamp.In(loc)

	var photoURL *string
	if record.PhotoURL != nil {
		url, err := s.fileService.GetFileURL(ctx, *record.PhotoURL)
		if err != nil {
			slog.Warn("failed to resolve photo url", "time_record_id", record.ID, "error", err)
		} else {
			photoURL = &url
		}
	}

	return timerecord.TimeRecordResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		EmployeeName:  record.EmployeeName,
		Type:          string(record.Type),
		Timestamp:     local.Format(time.RFC3339),
		LocalDate:     format.Date(local),
		LocalTime:     format.Clock(local),
		Latitude:      record.Latitude,
		Longitude:     record.Longitude,
		PhotoURL:      photoURL,
		Justification: record.Justification,
		Corrected:     record.Corrected,
		CorrectedBy:   record.CorrectedBy,
		CreatedAt:     record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     record.UpdatedAt.Format(time.RFC3339),
	}
}

// currentEmployee resolves the active employee bound to the token
func (s *TimeRecordServiceImpl) currentEmployee(ctx context.Context) (auth.Claims, employee.Employee, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return auth.Claims{}, employee.Employee{}, err
	}

	employeeID, err := claims.RequireEmployee()
	if err != nil {
		return auth.Claims{}, employee.Employee{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, claims.CompanyID)
	if err != nil {
		return auth.Claims{}, employee.Employee{}, err
	}
	return claims, emp, nil
}

// ClockIn implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) ClockIn(ctx context.Context, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
	return s.clock(ctx, timerecord.TypeIn, req)
}

// ClockOut implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) ClockOut(ctx context.Context, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
	return s.clock(ctx, timerecord.TypeOut, req)
}

func (s *TimeRecordServiceImpl) clock(ctx context.Context, recordType timerecord.RecordType, req timerecord.ClockRequest) (timerecord.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}
	nowUTC := s.now().UTC()

	claims, emp, err := s.currentEmployee(ctx)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	loc := emp.Location(s.defaultLoc)
	dateLocal := nowUTC.In(loc).Format(timesheet.DateLayout)

	// The employee row lock keeps the last-record check and the insert atomic
	var created timerecord.TimeRecord
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		locked, err := s.EmployeeRepository.LockForUpdate(txCtx, emp.ID, claims.CompanyID)
		if err != nil {
			return err
		}
		if !locked.IsActive() {
			return employee.ErrEmployeeInactive
		}
		emp = locked

		last, err := s.TimeRecordRepository.GetLastByEmployee(txCtx, emp.ID, claims.CompanyID)
		if err != nil {
			return fmt.Errorf("failed to get last time record: %w", err)
		}

		switch recordType {
		case timerecord.TypeIn:
			// An "in" left open on an earlier day does not block today's entry
			if last != nil && last.Type == timerecord.TypeIn && last.Timestamp.In(loc).Format(timesheet.DateLayout) == dateLocal {
				return timerecord.ErrAlreadyClockedIn
			}
		case timerecord.TypeOut:
			if last == nil || last.Type != timerecord.TypeIn {
				return timerecord.ErrNotClockedIn
			}
		}

		photoKey, err := s.fileService.UploadClockPhoto(txCtx, emp.ID, dateLocal, req.File, req.FileHeader.Filename, string(recordType))
		if err != nil {
			return fmt.Errorf("failed to upload clock photo: %w", err)
		}

		actor := claims.UserID
		created, err = s.TimeRecordRepository.Create(txCtx, timerecord.TimeRecord{
			CompanyID:  claims.CompanyID,
			EmployeeID: emp.ID,
			Type:       recordType,
			Timestamp:  nowUTC,
			Latitude:   &req.Latitude,
			Longitude:  &req.Longitude,
			PhotoURL:   &photoKey,
			CreatedBy:  &actor,
		})
		if err != nil {
			if delErr := s.fileService.DeleteFile(ctx, photoKey); delErr != nil {
				slog.Warn("failed to remove orphaned clock photo", "key", photoKey, "error", delErr)
			}
			return fmt.Errorf("failed to create time record: %w", err)
		}
		return nil
	})
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	slog.Info("clock event registered", "employee_id", emp.ID, "type", recordType, "local_date", dateLocal)

	name := emp.FullName
	created.EmployeeName = &name
	return s.toResponse(ctx, created, loc), nil
}

// GetStatus implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) GetStatus(ctx context.Context) (timerecord.ClockStatusResponse, error) {
	claims, emp, err := s.currentEmployee(ctx)
	if err != nil {
		return timerecord.ClockStatusResponse{}, err
	}

	last, err := s.TimeRecordRepository.GetLastByEmployee(ctx, emp.ID, claims.CompanyID)
	if err != nil {
		return timerecord.ClockStatusResponse{}, fmt.Errorf("failed to get last time record: %w", err)
	}

	status := timerecord.ClockStatusResponse{
		EmployeeID: emp.ID,
		NextType:   string(timerecord.TypeIn),
	}
	if last != nil {
		resp := s.toResponse(ctx, *last, emp.Location(s.defaultLoc))
		status.LastRecord = &resp
		status.ClockedIn = last.Type == timerecord.TypeIn
		status.NextType = string(last.Type.Next())
	}
	return status, nil
}

// resolveRange turns the filter's local dates into UTC instants in loc
func resolveRange(filter *timerecord.TimeRecordFilter, loc *time.Location) {
	if filter.StartDate != nil && *filter.StartDate != "" {
		start, _ := validator.IsValidDate(*filter.StartDate)
		from, _ := timesheet.LocalRange(start, start, loc)
		from = from.UTC()
		filter.From = &from
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		end, _ := validator.IsValidDate(*filter.EndDate)
		_, to := timesheet.LocalRange(end, end, loc)
		to = to.UTC()
		filter.To = &to
	}
}

func (s *TimeRecordServiceImpl) listResponse(filter timerecord.TimeRecordFilter, total int64, records []timerecord.TimeRecordResponse) timerecord.ListTimeRecordResponse {
	totalPages, showing := utils.Pagination(filter.Page, filter.Limit, total)
	return timerecord.ListTimeRecordResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Records:    records,
	}
}

// GetMyRecords implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) GetMyRecords(ctx context.Context, filter timerecord.TimeRecordFilter) (timerecord.ListTimeRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}

	claims, emp, err := s.currentEmployee(ctx)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}

	loc := emp.Location(s.defaultLoc)
	filter.EmployeeID = &emp.ID
	resolveRange(&filter, loc)

	records, total, err := s.TimeRecordRepository.List(ctx, filter, claims.CompanyID)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	responses := make([]timerecord.TimeRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, s.toResponse(ctx, record, loc))
	}
	return s.listResponse(filter, total, responses), nil
}

// List implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) List(ctx context.Context, filter timerecord.TimeRecordFilter) (timerecord.ListTimeRecordResponse, error) {
	if err := filter.Validate(); err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, err
	}

	locations := newLocationCache(s, claims.CompanyID)

	// Dates are read in the filtered employee's timezone, or the default one
	rangeLoc := s.defaultLoc
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		emp, err := s.EmployeeRepository.GetByID(ctx, *filter.EmployeeID, claims.CompanyID)
		if err != nil {
			return timerecord.ListTimeRecordResponse{}, err
		}
		rangeLoc = locations.put(emp)
	}
	resolveRange(&filter, rangeLoc)

	records, total, err := s.TimeRecordRepository.List(ctx, filter, claims.CompanyID)
	if err != nil {
		return timerecord.ListTimeRecordResponse{}, fmt.Errorf("failed to list time records: %w", err)
	}

	responses := make([]timerecord.TimeRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, s.toResponse(ctx, record, locations.get(ctx, record.EmployeeID)))
	}
	return s.listResponse(filter, total, responses), nil
}

// Get implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) Get(ctx context.Context, id string) (timerecord.TimeRecordResponse, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	record, err := s.TimeRecordRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	return s.toResponse(ctx, record, newLocationCache(s, claims.CompanyID).get(ctx, record.EmployeeID)), nil
}

// Create implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) Create(ctx context.Context, req timerecord.CreateTimeRecordRequest) (timerecord.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, claims.CompanyID)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	if req.ParsedTimestamp.After(s.now()) {
		return timerecord.TimeRecordResponse{}, timerecord.ErrFutureTimestamp
	}

	actor := claims.UserID
	justification := req.Justification
	record := timerecord.TimeRecord{
		CompanyID:     claims.CompanyID,
		EmployeeID:    emp.ID,
		Type:          timerecord.RecordType(req.Type),
		Timestamp:     req.ParsedTimestamp,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Justification: &justification,
		Corrected:     true,
		CorrectedBy:   &actor,
		CreatedBy:     &actor,
	}

	loc := emp.Location(s.defaultLoc)
	var resp timerecord.TimeRecordResponse
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		created, err := s.TimeRecordRepository.Create(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to create time record: %w", err)
		}

		name := emp.FullName
		created.EmployeeName = &name
		resp = s.toResponse(txCtx, created, loc)

		return s.auditService.Record(txCtx, audit.ActionTimeRecordCreate, audit.EntityTimeRecord, created.ID, nil, resp)
	})
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	slog.Info("time record created by admin", "time_record_id", resp.ID, "employee_id", emp.ID, "actor_user_id", actor)
	return resp, nil
}

// Correct implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) Correct(ctx context.Context, req timerecord.CorrectTimeRecordRequest) (timerecord.TimeRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	current, err := s.TimeRecordRepository.GetByID(ctx, req.ID, claims.CompanyID)
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	updated := current
	if req.Type != nil {
		updated.Type = timerecord.RecordType(*req.Type)
	}
	if req.ParsedTimestamp != nil {
		updated.Timestamp = *req.ParsedTimestamp
	}

	if updated.Type == current.Type && updated.Timestamp.Equal(current.Timestamp) {
		return timerecord.TimeRecordResponse{}, timerecord.ErrNothingToCorrect
	}
	if updated.Timestamp.After(s.now()) {
		return timerecord.TimeRecordResponse{}, timerecord.ErrFutureTimestamp
	}

	actor := claims.UserID
	justification := req.Justification
	updated.Corrected = true
	updated.CorrectedBy = &actor
	updated.Justification = &justification

	loc := newLocationCache(s, claims.CompanyID).get(ctx, current.EmployeeID)
	before := s.toResponse(ctx, current, loc)

	var resp timerecord.TimeRecordResponse
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		saved, err := s.TimeRecordRepository.Update(txCtx, updated)
		if err != nil {
			return fmt.Errorf("failed to correct time record: %w", err)
		}

		saved.EmployeeName = current.EmployeeName
		resp = s.toResponse(txCtx, saved, loc)

		return s.auditService.Record(txCtx, audit.ActionTimeRecordCorrect, audit.EntityTimeRecord, saved.ID, before, resp)
	})
	if err != nil {
		return timerecord.TimeRecordResponse{}, err
	}

	slog.Info("time record corrected", "time_record_id", resp.ID, "employee_id", current.EmployeeID, "actor_user_id", actor)
	return resp, nil
}

// OpenPhoto implements timerecord.TimeRecordService.
func (s *TimeRecordServiceImpl) OpenPhoto(ctx context.Context, id string) (io.ReadCloser, error) {
	claims, err := auth.ClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	record, err := s.TimeRecordRepository.GetByID(ctx, id, claims.CompanyID)
	if err != nil {
		return nil, err
	}

	if !claims.IsAdmin() && (claims.EmployeeID == nil || *claims.EmployeeID != record.EmployeeID) {
		return nil, user.ErrInsufficientPermissions
	}
	if record.PhotoURL == nil {
		return nil, timerecord.ErrPhotoNotFound
	}

	return s.fileService.OpenFile(ctx, *record.PhotoURL)
}

// locationCache loads each employee's timezone at most once per request
type locationCache struct {
	svc       *TimeRecordServiceImpl
	companyID string
	byID      map[string]*time.Location
}

func newLocationCache(svc *TimeRecordServiceImpl, companyID string) *locationCache {
	return &locationCache{svc: svc, companyID: companyID, byID: make(map[string]*time.Location)}
}

func (c *locationCache) put(emp employee.Employee) *time.Location {
	loc := emp.Location(c.svc.defaultLoc)
	c.byID[emp.ID] = loc
	return loc
}

func (c *locationCache) get(ctx context.Context, employeeID string) *time.Location {
	if loc, ok := c.byID[employeeID]; ok {
		return loc
	}

	emp, err := c.svc.EmployeeRepository.GetByID(ctx, employeeID, c.companyID)
	if err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Warn("failed to load employee timezone", "employee_id", employeeID, "error", err)
		}
		c.byID[employeeID] = c.svc.defaultLoc
		return c.svc.defaultLoc
	}
	return c.put(emp)
}
