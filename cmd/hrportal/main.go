package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/innovatech/hr-portal/internal/app"
	"github.com/innovatech/hr-portal/internal/auth"
	"github.com/innovatech/hr-portal/internal/employees"
	"github.com/innovatech/hr-portal/internal/observability"
	"github.com/innovatech/hr-portal/internal/platform/db"
	"github.com/innovatech/hr-portal/internal/shared"
	"github.com/innovatech/hr-portal/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dsn, err := cfg.DSN()
	if err != nil {
		logger.Error("database config", slog.Any("error", err))
		os.Exit(1)
	}
	dbpool, err := db.New(ctx, dsn)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "hr_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	endpoints := auth.KeycloakEndpoints(cfg.KeycloakBaseURL, cfg.KeycloakRealm)

	// Signing keys are fetched once at startup. A key rotation on the
	// provider side requires a restart.
	providerClient := &http.Client{Timeout: cfg.ProviderTimeout}
	keys, err := auth.FetchKeys(ctx, endpoints.Certs, providerClient)
	if err != nil {
		logger.Error("fetch signing keys", slog.Any("error", err))
		os.Exit(1)
	}
	validator := auth.NewTokenValidator(keys, cfg.KeycloakClientID)
	identity := auth.NewIdentity(validator)
	guard := auth.Guard{Identity: identity, Logger: logger}

	oauthCfg := endpoints.OAuthConfig(cfg.KeycloakClientID, cfg.KeycloakClientSecret, cfg.AppBaseURL+"/oidc/callback")
	authHandler := auth.NewHandler(logger, endpoints, oauthCfg, sessionManager, cfg.KeycloakClientID, cfg.AppBaseURL, cfg.ProviderTimeout)

	employeeRepo := employees.NewRepository(dbpool)
	employeeService := employees.NewService(employeeRepo)
	employeeHandler := employees.NewHandler(logger, employeeService, templates, csrfManager, identity, guard, cfg.EditorRoles)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		Templates:       templates,
		SessionManager:  sessionManager,
		CSRFManager:     csrfManager,
		AuthHandler:     authHandler,
		EmployeeHandler: employeeHandler,
		Guard:           guard,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
