package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/AnshRaj112/dhrms-backend/internal/config"
	"github.com/AnshRaj112/dhrms-backend/internal/database"
	"github.com/AnshRaj112/dhrms-backend/internal/handlers"
	"github.com/AnshRaj112/dhrms-backend/internal/middleware"
	"github.com/AnshRaj112/dhrms-backend/internal/routes"
	"github.com/AnshRaj112/dhrms-backend/internal/services"
)

func main() {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	if err := godotenv.Load(); err != nil {
		level.Info(logger).Log("msg", "no .env file found")
	}
	cfg := config.Load()
	logger = level.NewFilter(logger, levelOption(cfg.LogLevel))

	level.Info(logger).Log(
		"msg", "configuration loaded",
		"env", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.StoreBackend,
		"password_scheme", cfg.PasswordScheme,
		"dashboard_refresh", cfg.DashboardRefresh,
	)
	if err := cfg.Validate(); err != nil {
		level.Error(logger).Log("msg", "invalid configuration", "err", err)
		os.Exit(1)
	}
	if cfg.UsesDefaultSecret() {
		level.Warn(logger).Log("msg", "PROFILE_SECRET not set, using the development secret")
	}
	if cfg.UsesDefaultAdminPassword() {
		level.Warn(logger).Log("msg", "ADMIN_PASSWORD not set, using the demo password")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := database.OpenStore(ctx, cfg, logger)
	if err != nil {
		level.Error(logger).Log("msg", "failed to open profile store", "err", err)
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(); err != nil {
			level.Warn(logger).Log("msg", "failed to close profile store", "err", err)
		}
	}()

	repo := services.NewRepository(store, logger)
	sessions := services.NewSessionManager(repo, services.AdminCredentials{
		Username: cfg.AdminUsername,
		Password: cfg.AdminPassword,
		Email:    cfg.AdminEmail,
	}, services.ParsePasswordScheme(cfg.PasswordScheme), logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(reg)

	h, err := handlers.New(handlers.Options{
		Sessions:         sessions,
		Dashboards:       services.NewDashboardAggregator(repo, nil),
		Repository:       repo,
		Metrics:          metrics,
		Logger:           logger,
		DashboardRefresh: cfg.DashboardRefresh,
		AllowedOrigins:   cfg.AllowedOrigins,
	})
	if err != nil {
		level.Error(logger).Log("msg", "failed to parse templates", "err", err)
		os.Exit(1)
	}

	router := routes.NewRouter(routes.Options{
		Config:   cfg,
		Handler:  h,
		Tokens:   services.NewProfileTokens(cfg.ProfileSecret),
		Metrics:  metrics,
		Gatherer: reg,
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		level.Info(logger).Log("msg", "DHRMS server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			level.Error(logger).Log("msg", "server failed", "err", err)
		}
		return
	case <-ctx.Done():
	}

	level.Info(logger).Log("msg", "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "graceful shutdown failed", "err", err)
	}
}

func levelOption(s string) level.Option {
	switch s {
	case "debug":
		return level.AllowDebug()
	case "warn":
		return level.AllowWarn()
	case "error":
		return level.AllowError()
	default:
		return level.AllowInfo()
	}
}
