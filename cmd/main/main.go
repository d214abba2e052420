package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/hestia/internal/config"
	"github.com/UnknownOlympus/hestia/internal/lib/logger/sl"
	"github.com/UnknownOlympus/hestia/internal/metrics"
	"github.com/UnknownOlympus/hestia/internal/repository"
	"github.com/UnknownOlympus/hestia/internal/server"
	"github.com/UnknownOlympus/hestia/internal/services/employees"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// storage bundles the selected backend with what the health check and shutdown need.
type storage struct {
	repo  repository.EmployeeRepoIface
	db    server.DBPinger
	close func()
}

// main is the entry point of the application.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run owns every resource, so its deferred closes finish before main exits.
func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()

	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics with exemplar
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	store, err := openStorage(cfg, appMetrics)
	if err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	defer store.close()

	staff, err := employees.NewStaff(logger, store.repo, appMetrics)
	if err != nil {
		return fmt.Errorf("failed to create employee service: %w", err)
	}

	srv, err := server.New(logger, cfg.HTTP, staff, store.db, reg, appMetrics)
	if err != nil {
		return fmt.Errorf("failed to create HTTP server: %w", err)
	}

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "storage", cfg.Storage.Driver)

	if err = srv.Run(ctx); err != nil {
		logger.ErrorContext(ctx, "HTTP server failed", sl.Err(err))
		return err
	}

	logger.InfoContext(ctx, "Application stopped gracefully...")

	return nil
}

func openStorage(cfg *config.Config, appMetrics *metrics.Metrics) (*storage, error) {
	if cfg.Storage.Driver == config.DriverMySQL {
		gdb, err := repository.NewMySQL(cfg.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		repo := repository.NewMySQLEmployeeRepository(gdb, appMetrics)

		return &storage{
			repo: repo,
			db:   repo,
			close: func() {
				if sqlDB, dbErr := gdb.DB(); dbErr == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	}

	pool, err := repository.NewDatabase(
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password,
		cfg.Postgres.Dbname, cfg.Postgres.SSLMode)
	if err != nil {
		return nil, err
	}

	return &storage{
		repo:  repository.NewEmployeeRepository(pool, appMetrics),
		db:    pool,
		close: pool.Close,
	}, nil
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelWarn,
			ReplaceAttr: dropTime,
		}))
	default:
		log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelError,
			ReplaceAttr: dropTime,
		}))
		log.Error(
			"The env parameter was not specified, or was invalid. Logging will be minimal, by default." +
				" Please specify the value of `env`: local, development, production")

		return log
	}
}
