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

	"github.com/cmlabs-hris/attendance-tracker/internal/config"
	appHTTP "github.com/cmlabs-hris/attendance-tracker/internal/handler/http"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-tracker/internal/repository/postgresql"
	analyticsService "github.com/cmlabs-hris/attendance-tracker/internal/service/analytics"
	attendanceService "github.com/cmlabs-hris/attendance-tracker/internal/service/attendance"
	authService "github.com/cmlabs-hris/attendance-tracker/internal/service/auth"
	employeeService "github.com/cmlabs-hris/attendance-tracker/internal/service/employee"
	holidayService "github.com/cmlabs-hris/attendance-tracker/internal/service/holiday"
	leaveService "github.com/cmlabs-hris/attendance-tracker/internal/service/leave"
	settingsService "github.com/cmlabs-hris/attendance-tracker/internal/service/settings"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	logger.New(cfg.App.LogLevel, cfg.App.Env)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "timezone", cfg.App.Timezone, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	analyticsRepo := postgresql.NewAnalyticsRepository(db)
	transactor := postgresql.NewTransactor(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	settingsSvc := settingsService.NewSettingsService(settingsRepo, transactor)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, leaveRepo, holidayRepo, employeeRepo, settingsSvc, loc, nil)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, attendanceRepo, settingsSvc, loc, nil)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, attendanceSvc, leaveSvc)
	holidaySvc := holidayService.NewHolidayService(holidayRepo)
	analyticsSvc := analyticsService.NewAnalyticsService(analyticsRepo, attendanceRepo, employeeRepo, leaveSvc, loc, nil)
	authSvc := authService.NewAuthService(userRepo, JWTService)

	if err := authSvc.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		slog.Error("Failed to bootstrap admin user", "error", err)
		os.Exit(1)
	}

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
		},
		JWTService,
		appHTTP.Handlers{
			Auth:       appHTTP.NewAuthHandler(authSvc),
			Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Analytics:  appHTTP.NewAnalyticsHandler(analyticsSvc),
			Settings:   appHTTP.NewSettingsHandler(settingsSvc),
			Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
			Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		slog.Error("Server error", "error", err)
	case <-ctx.Done():
		slog.Info("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
