package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	clientdistribution "roster/contexts/sales-ops/client-distribution"
	"roster/contexts/sales-ops/client-distribution/adapters/cache"
	"roster/contexts/sales-ops/client-distribution/adapters/importfile"
	"roster/contexts/sales-ops/client-distribution/adapters/memory"
	postgresadapter "roster/contexts/sales-ops/client-distribution/adapters/postgres"
	sqliteadapter "roster/contexts/sales-ops/client-distribution/adapters/sqlite"
	"roster/contexts/sales-ops/client-distribution/adapters/system"
	"roster/internal/platform/config"
	"roster/internal/platform/db"
	"roster/internal/platform/httpserver"
	"roster/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

// Runtime is the wired distribution module plus the resources behind it.
// The API process and the CLI share it.
type Runtime struct {
	Config  config.Config
	Logger  *slog.Logger
	Module  clientdistribution.Module
	Metrics *metrics.Registry

	postgres *db.Postgres
	sqlite   *db.SQLite
	pgRepo   *postgresadapter.Repository
}

type APIApp struct {
	runtime *Runtime
	server  *httpserver.Server
	logger  *slog.Logger
}

func NewLogger(cfg config.Config, process string, out io.Writer) *slog.Logger {
	if out == nil {
		out = os.Stderr
	}
	options := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(out, options)
	} else {
		handler = slog.NewJSONHandler(out, options)
	}
	return slog.New(handler).With("service", cfg.ServiceName, "process", process)
}

// BuildRuntime opens the configured store and wires the module on top of it.
func BuildRuntime(cfg config.Config, logger *slog.Logger) (*Runtime, error) {
	if logger == nil {
		logger = slog.Default()
	}
	registry := metrics.NewRegistry()

	runtime := &Runtime{
		Config:  cfg,
		Logger:  logger,
		Metrics: registry,
	}
	deps := clientdistribution.Dependencies{
		Metrics:   registry,
		Extractor: importfile.NewReader(cfg.ImportMaxBytes),
		Logger:    logger,
	}

	switch cfg.StoreDriver {
	case config.StorePostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, errors.New("POSTGRES_DSN is required")
		}
		pg, err := db.ConnectContext(context.Background(), cfg.PostgresDSN, db.DefaultPool)
		if err != nil {
			return nil, err
		}
		repo := postgresadapter.NewRepository(pg.DB, logger)
		runtime.postgres = pg
		runtime.pgRepo = repo
		deps.Executives = repo
		deps.Clients = repo
		deps.Clock = system.Clock{}
		deps.IDGenerator = system.UUIDGenerator{}
	case config.StoreSQLite:
		lite, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo := sqliteadapter.NewRepository(lite.DB, logger)
		runtime.sqlite = lite
		deps.Executives = repo
		deps.Clients = repo
		deps.Clock = system.Clock{}
		deps.IDGenerator = system.UUIDGenerator{}
	case config.StoreMemory, "":
		// Only a process-local store can be cached: every write to it runs
		// through this module and invalidates the cache. SQLite and Postgres
		// files are shared with the CLI, so their stats are always recomputed.
		statsCache, err := cache.NewStatsCache(cfg.StatsCacheSize)
		if err != nil {
			return nil, fmt.Errorf("build stats cache: %w", err)
		}
		store := memory.NewStore(nil, logger)
		deps.Stats = statsCache
		deps.Executives = store
		deps.Clients = store
		deps.Clock = store
		deps.IDGenerator = system.UUIDGenerator{}
		runtime.Module = clientdistribution.NewModule(deps)
		runtime.Module.Store = store
		return runtime, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	runtime.Module = clientdistribution.NewModule(deps)
	return runtime, nil
}

// Migrate brings the configured store schema up to date. The in-memory store
// has nothing to migrate.
func (r *Runtime) Migrate(ctx context.Context) error {
	switch {
	case r.pgRepo != nil:
		return r.pgRepo.AutoMigrate(ctx)
	case r.sqlite != nil:
		return r.sqlite.Migrate(ctx)
	default:
		return nil
	}
}

func (r *Runtime) Close() error {
	var errs []error
	if r.postgres != nil {
		errs = append(errs, r.postgres.Close())
	}
	if r.sqlite != nil {
		errs = append(errs, r.sqlite.Close())
	}
	return errors.Join(errs...)
}

func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg, "api", nil)

	runtime, err := BuildRuntime(cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewAPIApp(runtime), nil
}

func NewAPIApp(runtime *Runtime) *APIApp {
	options := httpserver.Options{
		EnableSwagger:  runtime.Config.EnableSwagger,
		MaxUploadBytes: runtime.Config.ImportMaxBytes,
	}
	if runtime.Config.EnableMetrics {
		options.Metrics = runtime.Metrics.Handler()
	}
	server := httpserver.New(runtime.Module, runtime.Logger, normalizeAddr(runtime.Config.HTTPPort), options)
	return &APIApp{
		runtime: runtime,
		server:  server,
		logger:  runtime.Logger,
	}
}

func (a *APIApp) Run(ctx context.Context) error {
	if err := a.runtime.Migrate(ctx); err != nil {
		return err
	}
	a.logger.Info("api app started",
		"event", "bootstrap_api_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"store_driver", a.runtime.Config.StoreDriver,
	)
	return a.server.Run(ctx)
}

func (a *APIApp) Close() error {
	return a.runtime.Close()
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
