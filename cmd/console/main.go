package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/httplog/v3"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/config"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	appHTTP "github.com/lalithaAmmu28/payrollManagementSystem/internal/handler/http"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/apiclient"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/authz"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/cron"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/jwt"
	payrollService "github.com/lalithaAmmu28/payrollManagementSystem/internal/service/payroll"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/service/session"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       cfg.LogLevel(),
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-console"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(logger)

	apiConfig := apiclient.Config{BaseURL: cfg.API.BaseURL, Timeout: cfg.API.Timeout}

	// Login goes out without a bearer token
	authRepo := apiclient.NewAuthClient(apiclient.New(apiConfig, nil, apiclient.WithLogger(logger)))

	JWTService := jwt.NewJWTService(cfg.Session.Secret, cfg.Session.TTL)
	sessions := session.NewManager(session.Config{
		API:             apiConfig,
		NotificationTTL: cfg.Notification.TTL,
		YearBounds:      payrollService.YearBounds{Min: cfg.Payroll.MinYear, Max: cfg.Payroll.MaxYear},
	}, authRepo, JWTService, logger)

	authorizer, err := authz.NewAuthorizer(user.RolePermissions)
	if err != nil {
		log.Fatal("Failed to initialize authorizer:", err)
	}

	rate, err := limiter.NewRateFromFormatted(cfg.App.LoginRateLimit)
	if err != nil {
		log.Fatal("Invalid LOGIN_RATE_LIMIT:", err)
	}
	loginLimiter := limiter.New(memory.NewStore(), rate)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Logger:         logger,
			LoginLimiter:   loginLimiter,
		},
		JWTService,
		sessions,
		authorizer,
		appHTTP.NewAuthHandler(sessions),
		appHTTP.NewPayrollHandler(),
		appHTTP.NewReportHandler(),
		appHTTP.NewEmployeeHandler(),
		appHTTP.NewNotificationHandler(),
	)

	scheduler := cron.NewScheduler(logger)
	cron.NewSessionJobs(sessions, time.Minute, time.Second).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.App.Port, "backend", cfg.API.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	scheduler.Stop()
	logger.Info("Server exited")
}
