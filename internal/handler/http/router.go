package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/cmlabs-hris/attendance-tracker/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-tracker/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterConfig carries the process settings the router needs.
type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	Version        string
	// LogLevel is the minimum level written by the access log
	LogLevel slog.Level
}

type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Analytics  AnalyticsHandler
	Settings   SettingsHandler
	Holiday    HolidayHandler
	Leave      LeaveHandler
}

func NewRouter(cfg RouterConfig, JWTService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.LogLevel,
	})).With(
		slog.String("app", "attendance-tracker"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", newHealthHandler(time.Now))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
		})

		// Dashboard, admin token required
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminRequired(JWTService.JWTAuth()))

			r.Route("/employees", func(r chi.Router) {
				r.Get("/", h.Employee.List)
				r.Get("/{id}", h.Employee.Get)
				r.Put("/{id}", h.Employee.Update)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/matrix", h.Attendance.Matrix)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/stats", h.Analytics.Stats)
				r.Get("/kpis", h.Analytics.KPIs)
				r.Get("/today-records", h.Analytics.TodayRecords)
				r.Get("/checkin-status", h.Analytics.CheckInStatus)
				r.Get("/employee-leave-summary", h.Analytics.EmployeeLeaveSummary)
			})

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", h.Settings.Get)
				r.Put("/", h.Settings.Update)
				r.Put("/start-date", h.Settings.UpdateStartDate)
				r.Put("/annual-leave", h.Settings.UpdateAnnualLeave)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Post("/", h.Holiday.Create)
				r.Delete("/{id}", h.Holiday.Delete)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", h.Leave.List)
				r.Get("/date/{date}", h.Leave.ListByDate)
				r.Get("/balance/{employeeId}", h.Leave.Balance)
				r.Get("/{employeeId}", h.Leave.ListByEmployee)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.NotFound(w, "Route not found")
	})
	return r
}
