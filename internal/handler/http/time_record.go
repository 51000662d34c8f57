package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/timerecord"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TimeRecordHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetMyRecords(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Correct(w http.ResponseWriter, r *http.Request)
	GetPhoto(w http.ResponseWriter, r *http.Request)
}

type timeRecordHandlerImpl struct {
	timeRecordService timerecord.TimeRecordService
}

func NewTimeRecordHandler(timeRecordService timerecord.TimeRecordService) TimeRecordHandler {
	return &timeRecordHandlerImpl{
		timeRecordService: timeRecordService,
	}
}

// ClockIn implements TimeRecordHandler.
func (h *timeRecordHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	req, file, ok := parseClockForm(w, r)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	result, err := h.timeRecordService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", result)
}

// ClockOut implements TimeRecordHandler.
func (h *timeRecordHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	req, file, ok := parseClockForm(w, r)
	if !ok {
		return
	}
	if file != nil {
		defer file.Close()
	}

	result, err := h.timeRecordService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked out successfully", result)
}

// parseClockForm reads the "data" JSON field and the "photo" file. A missing
// photo is left for ClockRequest.Validate to report.
func parseClockForm(w http.ResponseWriter, r *http.Request) (timerecord.ClockRequest, io.Closer, bool) {
	var req timerecord.ClockRequest

	// Parse multipart form (max 10MB in memory, the rest spills to disk)
	if err := r.ParseMultipartForm(timerecord.MaxPhotoSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return req, nil, false
	}

	// Get JSON data from 'data' field
	dataJSON := r.FormValue("data")
	if dataJSON == "" {
		response.BadRequest(w, "Field 'data' is required", nil)
		return req, nil, false
	}

	if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
		slog.Error("Failed to unmarshal JSON data", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, nil, false
	}

	file, fileHeader, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return req, nil, true
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return req, nil, false
	}

	req.File = file
	req.FileHeader = fileHeader
	return req, file, true
}

// GetStatus implements TimeRecordHandler.
func (h *timeRecordHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.timeRecordService.GetStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, status)
}

func parseTimeRecordFilter(r *http.Request) timerecord.TimeRecordFilter {
	filter := timerecord.TimeRecordFilter{
		EmployeeID: queryString(r, "employee_id"),
		StartDate:  queryString(r, "start_date"),
		EndDate:    queryString(r, "end_date"),
		Type:       queryString(r, "type"),
		Page:       queryInt(r, "page"),
		Limit:      queryInt(r, "limit"),
		SortOrder:  r.URL.Query().Get("sort_order"),
	}

	if corrected := r.URL.Query().Get("corrected"); corrected != "" {
		if value, err := strconv.ParseBool(corrected); err == nil {
			filter.Corrected = &value
		}
	}

	return filter
}

// GetMyRecords implements TimeRecordHandler.
func (h *timeRecordHandlerImpl) GetMyRecords(w http.ResponseWriter, r *http.Request) {
	filter := parseTimeRecordFilter(r)
	filter.EmployeeID = nil // always the caller

	results, err := h.timeRecordService.GetMyRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// List implements TimeRecordHandler.
func (h *timeRecordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	results, err := h.timeRecordService.List(r.Context(), parseTimeRecordFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Get implements TimeRecordHandler.
func (h *timeRecordHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Time record ID is required", nil)
		return
	}

	result, err := h.timeRecordService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements TimeRecordHandler.
func (h *timeRecordHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timerecord.CreateTimeRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timeRecordService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Time record created successfully", result)
}

// Correct implements TimeRecordHandler.
func (h *timeRecordHandlerImpl) Correct(w http.ResponseWriter, r *http.Request) {
	var req timerecord.CorrectTimeRecordRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.timeRecordService.Correct(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time record corrected successfully", result)
}

// GetPhoto streams the stored clock photo.
func (h *timeRecordHandlerImpl) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, err := h.timeRecordService.OpenPhoto(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer photo.Close()

	// Stored photos are always re-encoded as JPEG
	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, photo); err != nil {
		slog.Warn("Failed to stream photo", "id", chi.URLParam(r, "id"), "error", err)
	}
}
