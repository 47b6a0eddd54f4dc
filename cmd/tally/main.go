package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aevon-lab/project-tally/internal/config"
	"github.com/aevon-lab/project-tally/internal/core/storage/postgres"
	"github.com/aevon-lab/project-tally/internal/engine"
	"github.com/aevon-lab/project-tally/internal/migrations"
	"github.com/aevon-lab/project-tally/internal/projection"
	"github.com/aevon-lab/project-tally/internal/resilience"
	"github.com/aevon-lab/project-tally/internal/reviews"
	"github.com/aevon-lab/project-tally/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Resilience Stack
	retry := resilience.NewRetryExecutor(resilience.RetryPolicy{
		MaxAttempts:   cfg.Engine.Retry.MaxAttempts,
		BaseDelay:     config.Duration(cfg.Engine.Retry.BaseDelay),
		BackoffFactor: cfg.Engine.Retry.BackoffFactor,
		JitterRatio:   cfg.Engine.Retry.JitterRatio,
		IsRetryable:   engine.IsRetryableStoreError,
	})
	breaker := resilience.NewCircuitBreaker("aggregate-store", resilience.CircuitPolicy{
		FailureThreshold: cfg.Engine.Circuit.FailureThreshold,
		CooldownPeriod:   config.Duration(cfg.Engine.Circuit.CooldownPeriod),
		IsFailure:        engine.IsStoreFailure,
	})

	// 4. Initialize the Consistency Engine
	cache := engine.NewAggregateCache(config.Duration(cfg.Engine.CacheTTL))
	maintainer := engine.NewMaintainer(dbAdapter, cache, retry, breaker, cfg.Engine.MaxConflictRetries)
	reader := engine.NewReader(dbAdapter, cache, retry, breaker)

	dispatcher, err := engine.NewDispatcher(maintainer, engine.DispatcherOptions{
		Mode:        engine.DispatchMode(cfg.Engine.Dispatch.Mode),
		WorkerCount: cfg.Engine.Dispatch.WorkerCount,
		BufferSize:  cfg.Engine.Dispatch.ChannelBufferSize,
	})
	if err != nil {
		slog.Error("Failed to initialize dispatcher", "error", err)
		os.Exit(1)
	}

	reconciler := engine.NewReconciler(maintainer, config.Duration(cfg.Engine.ReconcileInterval))

	slog.Info("Consistency engine initialized",
		"dispatch_mode", cfg.Engine.Dispatch.Mode,
		"cache_ttl", cfg.Engine.CacheTTL,
		"retry_max_attempts", cfg.Engine.Retry.MaxAttempts,
		"circuit_failure_threshold", cfg.Engine.Circuit.FailureThreshold,
	)

	// 5. Initialize API Services
	reviewsSvc := reviews.NewService(dbAdapter, dispatcher, cfg.Server.MaxBodySizeMB)
	projectionSvc := projection.NewService(reader)

	// 6. Initialize Server
	srv := server.New(fmtAddr(cfg.Server.Host, cfg.Server.Port), dbAdapter.DB(), cfg.Server.Mode, breaker, maintainer)
	reviewsSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 7. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go dispatcher.Start(ctx)
	go func() {
		if err := reconciler.Start(ctx); err != nil {
			slog.Error("Reconciler stopped with error", "error", err)
		}
	}()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

func fmtAddr(host string, port int) string {
	return fmt.Sprintf("%s:%d", host, port)
}
