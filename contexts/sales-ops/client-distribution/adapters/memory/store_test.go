package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/contexts/sales-ops/client-distribution/adapters/storetest"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/ports"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) ports.RecordStore {
		return NewStore(nil, nil)
	})
}

func TestNewStoreSeedsExecutives(t *testing.T) {
	store := NewStore([]entities.Executive{
		{ID: 7, Name: "Ana", Color: "#3B82F6"},
		{Name: "Bob", Color: "#10B981"},
	}, nil)
	ctx := context.Background()

	items, err := store.ListExecutives(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, int64(8), items[1].ID)
	assert.False(t, items[1].CreatedAt.IsZero())

	_, err = store.CreateExecutive(ctx, ports.NewExecutive{Name: "ana", NameKey: "ana"})
	assert.ErrorIs(t, err, domainerrors.ErrExecutiveExists)
}

func TestNewIDIsUniquePerCall(t *testing.T) {
	store := NewStore(nil, nil)

	first, err := store.NewID(context.Background())
	require.NoError(t, err)
	second, err := store.NewID(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
