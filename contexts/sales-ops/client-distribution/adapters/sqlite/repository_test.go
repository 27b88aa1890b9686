package sqliteadapter

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/contexts/sales-ops/client-distribution/adapters/storetest"
	"roster/contexts/sales-ops/client-distribution/ports"
	"roster/internal/platform/db"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	handle, err := db.OpenSQLite(filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = handle.Close() })
	require.NoError(t, handle.Migrate(context.Background()))
	return NewRepository(handle.DB, nil)
}

func TestRepositoryContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ports.RecordStore {
		return newTestRepository(t)
	})
}

func TestTimestampsKeepOrderAcrossZones(t *testing.T) {
	local := time.FixedZone("BRT", -3*60*60)
	early := time.Date(2025, 3, 1, 9, 0, 0, 5, local)
	late := early.Add(time.Nanosecond)

	assert.Less(t, formatTime(early), formatTime(late))

	parsed, err := parseTime(formatTime(early))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(early))
	assert.Equal(t, time.UTC, parsed.Location())
}
