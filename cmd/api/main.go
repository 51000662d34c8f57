package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/ponto-backend-go/internal/config"
	"github.com/cmlabs-hris/ponto-backend-go/internal/domain/auth"
	appHTTP "github.com/cmlabs-hris/ponto-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/ponto-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/ponto-backend-go/internal/repository/postgresql"
	auditService "github.com/cmlabs-hris/ponto-backend-go/internal/service/audit"
	serviceAuth "github.com/cmlabs-hris/ponto-backend-go/internal/service/auth"
	employeeService "github.com/cmlabs-hris/ponto-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/ponto-backend-go/internal/service/file"
	payrollService "github.com/cmlabs-hris/ponto-backend-go/internal/service/payroll"
	reportService "github.com/cmlabs-hris/ponto-backend-go/internal/service/report"
	timeRecordService "github.com/cmlabs-hris/ponto-backend-go/internal/service/timerecord"
	timesheetService "github.com/cmlabs-hris/ponto-backend-go/internal/service/timesheet"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "development")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.SlogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "ponto-backend"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx, cfg.Database.MigrationsDir); err != nil {
		return fmt.Errorf("error applying migrations: %w", err)
	}

	tx := postgresql.NewTransactor(db)
	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	timeRecordRepo := postgresql.NewTimeRecordRepository(db)
	auditRepo := postgresql.NewAuditRepository(db)

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Storage.Type)
	}

	defaultLoc := cfg.DefaultLocation()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.AccessTTL())
	fileService := file.NewFileService(fileStorage)
	auditSvc := auditService.NewAuditService(auditRepo)
	authSvc := serviceAuth.NewAuthService(tx, userRepo, companyRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(tx, employeeRepo, userRepo, auditSvc, cfg.App.DefaultTimezone)
	timeRecordSvc := timeRecordService.NewTimeRecordService(tx, timeRecordRepo, employeeRepo, fileService, auditSvc, defaultLoc)
	timesheetSvc := timesheetService.NewTimesheetService(timeRecordRepo, employeeRepo, defaultLoc)
	payrollSvc := payrollService.NewPayrollService(employeeRepo, timesheetSvc, cfg.Payroll.BatchConcurrency)
	reportSvc := reportService.NewReportService(timesheetSvc, payrollSvc)

	if err := authSvc.Bootstrap(ctx, auth.BootstrapRequest{
		CompanyName:   cfg.Seed.CompanyName,
		AdminEmail:    cfg.Seed.AdminEmail,
		AdminPassword: cfg.Seed.AdminPassword,
	}); err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	if cfg.Cron.Enabled {
		scheduler := cron.NewScheduler(ctx)
		cron.NewTimesheetJobs(employeeRepo, timesheetSvc, defaultLoc).RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Logger:         logger,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(JWTService, authSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			TimeRecord: appHTTP.NewTimeRecordHandler(timeRecordSvc),
			Timesheet:  appHTTP.NewTimesheetHandler(timesheetSvc),
			Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
			Audit:      appHTTP.NewAuditHandler(auditSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server running", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
