package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"ROSTER_CONFIG", "SERVICE_NAME", "HTTP_PORT", "STORE_DRIVER", "POSTGRES_DSN",
		"SQLITE_PATH", "LOG_LEVEL", "LOG_FORMAT", "STATS_CACHE_SIZE", "ENABLE_METRICS",
		"ENABLE_SWAGGER", "IMPORT_MAX_BYTES",
	} {
		t.Setenv(name, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "roster", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StoreMemory, cfg.StoreDriver)
	assert.Equal(t, int64(5<<20), cfg.ImportMaxBytes)
	assert.True(t, cfg.EnableMetrics)
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"store_driver: sqlite\nsqlite_path: /tmp/roster.db\nhttp_port: \"9000\"\nenable_swagger: false\n",
	), 0o600))
	t.Setenv("ROSTER_CONFIG", path)
	t.Setenv("HTTP_PORT", "9100")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.StoreDriver)
	assert.Equal(t, "/tmp/roster.db", cfg.SQLitePath)
	assert.Equal(t, "9100", cfg.HTTPPort)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.EnableSwagger)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	_, err := Load()
	assert.ErrorContains(t, err, "POSTGRES_DSN")

	clearEnv(t)
	t.Setenv("STORE_DRIVER", "mongo")
	_, err = Load()
	assert.ErrorContains(t, err, "unknown STORE_DRIVER")

	clearEnv(t)
	t.Setenv("STATS_CACHE_SIZE", "lots")
	_, err = Load()
	assert.ErrorContains(t, err, "STATS_CACHE_SIZE")
}

func TestEnvBoolFallsBackOnGarbage(t *testing.T) {
	t.Setenv("ROSTER_FLAG", "maybe")
	assert.True(t, envBool("ROSTER_FLAG", true))
	t.Setenv("ROSTER_FLAG", "off")
	assert.False(t, envBool("ROSTER_FLAG", true))
}
