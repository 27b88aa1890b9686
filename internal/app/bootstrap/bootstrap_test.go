package bootstrap

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/contexts/sales-ops/client-distribution/application/commands"
	"roster/internal/platform/config"
)

func testConfig() config.Config {
	return config.Config{
		ServiceName:    "roster",
		HTTPPort:       "0",
		StoreDriver:    config.StoreMemory,
		LogLevel:       "info",
		LogFormat:      "json",
		StatsCacheSize: 4,
		ImportMaxBytes: 1 << 20,
	}
}

func TestBuildRuntimeMemory(t *testing.T) {
	runtime, err := BuildRuntime(testConfig(), nil)
	require.NoError(t, err)
	defer runtime.Close()

	require.NotNil(t, runtime.Module.Store)
	require.NoError(t, runtime.Migrate(context.Background()))

	created, err := runtime.Module.Handler.CreateExecutive.Execute(context.Background(), commands.CreateExecutiveCommand{Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Executive.ID)
}

func TestBuildRuntimeSQLite(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "roster.db")

	runtime, err := BuildRuntime(cfg, nil)
	require.NoError(t, err)
	defer runtime.Close()
	require.NoError(t, runtime.Migrate(context.Background()))

	ctx := context.Background()
	_, err = runtime.Module.Handler.CreateExecutive.Execute(ctx, commands.CreateExecutiveCommand{Name: "Ana"})
	require.NoError(t, err)
	assigned, err := runtime.Module.Handler.AssignClient.Execute(ctx, commands.AssignClientCommand{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", assigned.Executive.Name)

	result, err := runtime.Module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"acme", "Globex"},
		ExecutiveID: assigned.Executive.ID,
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.Len(t, result.Rejected, 1)
	assert.Len(t, result.BatchID, 36)
}

func TestSharedSQLiteStatsSeeWritesFromAnotherRuntime(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = config.StoreSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "roster.db")
	ctx := context.Background()

	api, err := BuildRuntime(cfg, nil)
	require.NoError(t, err)
	defer api.Close()
	require.NoError(t, api.Migrate(ctx))

	created, err := api.Module.Handler.CreateExecutive.Execute(ctx, commands.CreateExecutiveCommand{Name: "Ana"})
	require.NoError(t, err)

	before, err := api.Module.Handler.DashboardStats.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, before.Stats.TotalClients)

	cli, err := BuildRuntime(cfg, nil)
	require.NoError(t, err)
	defer cli.Close()
	require.NoError(t, cli.Migrate(ctx))

	imported, err := cli.Module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"Acme", "Globex"},
		ExecutiveID: created.Executive.ID,
	})
	require.NoError(t, err)
	require.Len(t, imported.Created, 2)

	after, err := api.Module.Handler.DashboardStats.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, after.Stats.TotalClients)
	assert.False(t, after.FromCache)
}

func TestMemoryRuntimeCachesStats(t *testing.T) {
	runtime, err := BuildRuntime(testConfig(), nil)
	require.NoError(t, err)
	defer runtime.Close()
	ctx := context.Background()

	first, err := runtime.Module.Handler.DashboardStats.Execute(ctx)
	require.NoError(t, err)
	assert.False(t, first.FromCache)

	second, err := runtime.Module.Handler.DashboardStats.Execute(ctx)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
}

func TestBuildRuntimeRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StoreDriver = "mongo"
	_, err := BuildRuntime(cfg, nil)
	assert.ErrorContains(t, err, "unknown store driver")
}

func TestNewLoggerHonorsFormatAndLevel(t *testing.T) {
	cfg := testConfig()
	cfg.LogFormat = "text"
	cfg.LogLevel = "warn"

	var out bytes.Buffer
	logger := NewLogger(cfg, "cli", &out)
	logger.Info("hidden")
	logger.Warn("shown", "event", "level_check")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "event=level_check")
	assert.Contains(t, out.String(), "process=cli")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("loud"))
	assert.Equal(t, ":8080", normalizeAddr(""))
	assert.Equal(t, ":9000", normalizeAddr("9000"))
}
