package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http/middleware"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/authz"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/jwt"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/service/session"
	"github.com/ulule/limiter/v3"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *slog.Logger
	LoginLimiter   *limiter.Limiter
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	sessions *session.Manager,
	authorizer *authz.Authorizer,
	authHandler AuthHandler,
	payrollHandler PayrollHandler,
	reportHandler ReportHandler,
	employeeHandler EmployeeHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-RateLimit-Remaining"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	requirePermission := func(p user.Permission) func(http.Handler) http.Handler {
		return middleware.RequirePermission(authorizer, p)
	}

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				if cfg.LoginLimiter != nil {
					r.Use(middleware.RateLimit(cfg.LoginLimiter, logger))
				}
				r.Post("/login", authHandler.Login)
			})

			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.SessionRequired(sessions))
				r.Post("/logout", authHandler.Logout)
			})
		})

		// Requires a live session
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.SessionRequired(sessions))

			r.With(requirePermission(user.PermissionViewOwnProfile)).Get("/me", authHandler.Me)

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Delete("/{id}", notificationHandler.Dismiss)
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Use(requirePermission(user.PermissionPayslipViewOwn))
				r.Get("/", payrollHandler.ListPayslips)
				r.Get("/{runId}", payrollHandler.GetPayslip)
			})

			r.Route("/payroll/runs", func(r chi.Router) {
				r.Use(requirePermission(user.PermissionPayrollManage))
				r.Get("/", payrollHandler.ListRuns)
				r.Post("/", payrollHandler.CreateRun)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", payrollHandler.GetRun)
					r.Get("/statistics", payrollHandler.GetRunStatistics)
					r.Post("/process", payrollHandler.ProcessRun)
					r.Post("/lock", payrollHandler.LockRun)
					r.Get("/items", payrollHandler.OpenItems)
					r.Delete("/items", payrollHandler.CloseItems)
					r.Get("/items/export", payrollHandler.ExportItems)
				})
			})

			r.Route("/payroll/employees/{employeeId}/payslips", func(r chi.Router) {
				r.Use(requirePermission(user.PermissionPayrollManage))
				r.Get("/", payrollHandler.ListEmployeePayslips)
				r.Get("/{runId}", payrollHandler.GetEmployeePayslip)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(requirePermission(user.PermissionReportsView))
				r.Get("/department-cost", reportHandler.GetDepartmentCost)
				r.Get("/leave-trends/monthly", reportHandler.GetMonthlyLeaveTrends)
				r.Get("/payroll-summary", reportHandler.GetPayrollSummary)
				r.Get("/departments/top-spending", reportHandler.GetTopSpendingDepartments)
				r.Get("/dashboard", reportHandler.GetDashboard)
			})

			r.Route("/employees/wizard", func(r chi.Router) {
				r.Use(requirePermission(user.PermissionEmployeeManage))
				r.Post("/", employeeHandler.StartWizard)
				r.Get("/", employeeHandler.GetWizard)
				r.Put("/", employeeHandler.UpdateWizard)
				r.Delete("/", employeeHandler.CancelWizard)
				r.Post("/next", employeeHandler.NextStep)
				r.Post("/back", employeeHandler.PreviousStep)
				r.Post("/submit", employeeHandler.SubmitWizard)
			})
		})
	})
	return r
}
