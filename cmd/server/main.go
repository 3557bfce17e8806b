package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hccpay/approval-reminder/internal/api"
	"github.com/hccpay/approval-reminder/internal/config"
	"github.com/hccpay/approval-reminder/internal/db"
	"github.com/hccpay/approval-reminder/internal/metrics"
	"github.com/hccpay/approval-reminder/internal/notifier"
	"github.com/hccpay/approval-reminder/internal/ratelimiter"
	"github.com/hccpay/approval-reminder/internal/reminder"
	"github.com/hccpay/approval-reminder/internal/repository"
	"github.com/hccpay/approval-reminder/internal/worker"
)

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync() //nolint:errcheck

	// ---- configuration ----
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	// ---- database ----
	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}
	logger.Info("database migrations applied")

	// ---- core dependencies ----
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	repo := repository.NewPgReminderRepository(pool)
	channel := notifier.NewWebhookChannel(cfg.ChannelBaseURL, cfg.ChannelTimeout)
	limiter := ratelimiter.New(cfg.SendRatePerMinute)

	onSent, onFailed, onRun := m.EngineHooks()
	svc := reminder.NewService(repo, channel, limiter, cfg.PortalBaseURL, reminder.Hooks{
		OnSent:   onSent,
		OnFailed: onFailed,
		OnRun:    onRun,
	}, logger)

	// ---- scheduled runs ----
	// Context for background goroutines; cancelled on shutdown signal.
	runnerCtx, cancelRunner := context.WithCancel(ctx)
	defer cancelRunner()

	if cfg.ReminderCron != "" {
		cronRunner := worker.NewCronRunner(svc, cfg.ReminderCron, logger)
		if err := cronRunner.Start(runnerCtx); err != nil {
			logger.Fatal("failed to start cron runner", zap.Error(err))
		}
	}

	// ---- HTTP server ----
	router := api.NewRouter(svc, reg, logger)
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start server in a goroutine so it does not block the shutdown listener.
	go func() {
		logger.Info("server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// ---- graceful shutdown ----
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received")

	// 1. Stop accepting new HTTP requests.
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	// 2. Stop the cron runner; an in-flight run finishes its dispatch loop.
	cancelRunner()

	logger.Info("server stopped cleanly")
}
