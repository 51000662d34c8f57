package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/ponto-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	TimeRecord TimeRecordHandler
	Timesheet  TimesheetHandler
	Payroll    PayrollHandler
	Report     ReportHandler
	Audit      AuditHandler
}

type RouterOptions struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LogLevel       slog.Level
}

func NewRouter(opts RouterOptions, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))
			r.Use(middleware.RequireCompany)

			r.Route("/auth", func(r chi.Router) {
				r.Get("/me", h.Auth.Me)
				r.Post("/logout", h.Auth.Logout)
				r.Post("/change-password", h.Auth.ChangePassword)
			})

			r.Route("/time-records", func(r chi.Router) {
				// Self service
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployeeProfile)

					r.With(middleware.RequirePermission(user.PermissionClock)).Post("/clock-in", h.TimeRecord.ClockIn)
					r.With(middleware.RequirePermission(user.PermissionClock)).Post("/clock-out", h.TimeRecord.ClockOut)
					r.With(middleware.RequirePermission(user.PermissionTimeRecordOwn)).Get("/status", h.TimeRecord.GetStatus)
					r.With(middleware.RequirePermission(user.PermissionTimeRecordOwn)).Get("/me", h.TimeRecord.GetMyRecords)
				})

				// Ownership is checked by the service for non-admins
				r.With(middleware.RequirePermission(user.PermissionTimeRecordOwn)).Get("/{id}/photo", h.TimeRecord.GetPhoto)

				// Admin
				r.Group(func(r chi.Router) {
					r.With(middleware.RequirePermission(user.PermissionTimeRecordViewAll)).Get("/", h.TimeRecord.List)
					r.With(middleware.RequirePermission(user.PermissionTimeRecordViewAll)).Get("/{id}", h.TimeRecord.Get)
					r.With(middleware.RequirePermission(user.PermissionTimeRecordCorrect)).Post("/", h.TimeRecord.Create)
					r.With(middleware.RequirePermission(user.PermissionTimeRecordCorrect)).Put("/{id}", h.TimeRecord.Correct)
				})
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.With(middleware.RequireEmployeeProfile, middleware.RequirePermission(user.PermissionTimesheetOwn)).Get("/me", h.Timesheet.GetMyReport)
				r.With(middleware.RequirePermission(user.PermissionTimesheetViewAll)).Get("/", h.Timesheet.GetReport)
			})

			r.Route("/employees", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))

				r.Get("/", h.Employee.ListEmployees)
				r.Post("/", h.Employee.CreateEmployee)
				r.Get("/{id}", h.Employee.GetEmployee)
				r.Put("/{id}", h.Employee.UpdateEmployee)
				r.Delete("/{id}", h.Employee.DeactivateEmployee)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionPayrollCalculate))

				r.Post("/calculate", h.Payroll.Calculate)
				r.Post("/batch", h.Payroll.CalculateAll)
			})

			r.Route("/reports", func(r chi.Router) {
				r.With(middleware.RequireEmployeeProfile, middleware.RequirePermission(user.PermissionTimesheetOwn)).Get("/timesheet/me", h.Report.ExportMyTimesheet)
				r.With(middleware.RequirePermission(user.PermissionReportsExport)).Get("/timesheet", h.Report.ExportTimesheet)
				r.With(middleware.RequirePermission(user.PermissionReportsExport)).Get("/payroll", h.Report.ExportPayroll)
			})

			r.With(middleware.AdminOnly, middleware.RequirePermission(user.PermissionAuditView)).Get("/audit-events", h.Audit.List)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})

	return r
}
