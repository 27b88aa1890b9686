// Package storetest holds the behavior every record store adapter must share.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

// Factory returns an empty store. Cleanup is registered on t.
type Factory func(t *testing.T) ports.RecordStore

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

// Run exercises the record store contract against stores built by factory.
func Run(t *testing.T, factory Factory) {
	t.Run("executives ordered and unique", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()

		bob := mustExecutive(t, store, "Bob", 1)
		ana := mustExecutive(t, store, "Ana", 0)
		require.Less(t, bob.ID, ana.ID)

		items, err := store.ListExecutives(ctx)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, bob.ID, items[0].ID)
		assert.Equal(t, ana.ID, items[1].ID)
		assert.Equal(t, "#10B981", items[0].Color)

		_, err = store.CreateExecutive(ctx, newExecutive("  ANA ", 0))
		assert.ErrorIs(t, err, domainerrors.ErrExecutiveExists)

		_, err = store.GetExecutive(ctx, ana.ID+100)
		assert.ErrorIs(t, err, domainerrors.ErrExecutiveNotFound)
	})

	t.Run("create client enforces name key and owner", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		ana := mustExecutive(t, store, "Ana", 0)

		created, err := store.CreateClient(ctx, newClient("Acme", ana.ID, 0))
		require.NoError(t, err)
		assert.Positive(t, created.ID)
		assert.False(t, created.ProposalSent)

		fetched, err := store.GetClient(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", fetched.Name)
		assert.Equal(t, ana.ID, fetched.ExecutiveID)
		assert.WithinDuration(t, base, fetched.CreatedAt, time.Millisecond)

		_, err = store.CreateClient(ctx, newClient("ACME", ana.ID, 1))
		assert.ErrorIs(t, err, domainerrors.ErrClientExists)

		_, err = store.CreateClient(ctx, newClient("Globex", ana.ID+100, 1))
		assert.ErrorIs(t, err, domainerrors.ErrExecutiveNotFound)

		_, err = store.GetClient(ctx, created.ID+100)
		assert.ErrorIs(t, err, domainerrors.ErrClientNotFound)
	})

	t.Run("list clients newest first with filters", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		ana := mustExecutive(t, store, "Ana", 0)
		bob := mustExecutive(t, store, "Bob", 1)

		acme := mustClient(t, store, newClient("Acme", ana.ID, 0))
		globex := mustClient(t, store, newClient("Globex", bob.ID, 1))
		initech := mustClient(t, store, newClient("Initech", ana.ID, 2))
		sent := true
		_, err := store.UpdateClient(ctx, globex.ID, ports.ClientPatch{ProposalSent: &sent})
		require.NoError(t, err)

		all, err := store.ListClients(ctx, ports.ClientFilter{})
		require.NoError(t, err)
		assert.Equal(t, []int64{initech.ID, globex.ID, acme.ID}, viewIDs(all))
		assert.Equal(t, "Bob", all[1].ExecutiveName)
		assert.Equal(t, "#10B981", all[1].ExecutiveColor)

		byExecutive, err := store.ListClients(ctx, ports.ClientFilter{ExecutiveID: ana.ID})
		require.NoError(t, err)
		assert.Equal(t, []int64{initech.ID, acme.ID}, viewIDs(byExecutive))

		proposals, err := store.ListClients(ctx, ports.ClientFilter{ProposalSent: &sent})
		require.NoError(t, err)
		assert.Equal(t, []int64{globex.ID}, viewIDs(proposals))

		byClientName, err := store.ListClients(ctx, ports.ClientFilter{Query: "TECH"})
		require.NoError(t, err)
		assert.Equal(t, []int64{initech.ID}, viewIDs(byClientName))

		byExecutiveName, err := store.ListClients(ctx, ports.ClientFilter{Query: "bo"})
		require.NoError(t, err)
		assert.Equal(t, []int64{globex.ID}, viewIDs(byExecutiveName))

		owned, err := store.ListClientsByExecutive(ctx, ana.ID)
		require.NoError(t, err)
		require.Len(t, owned, 2)
		assert.Equal(t, initech.ID, owned[0].ID)
	})

	t.Run("bulk create skips taken name keys", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		ana := mustExecutive(t, store, "Ana", 0)
		mustClient(t, store, newClient("Acme", ana.ID, 0))

		empty, err := store.BulkCreateClients(ctx, nil)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		created, err := store.BulkCreateClients(ctx, []ports.NewClient{
			newClient("acme", ana.ID, 1),
			newClient("Globex", ana.ID, 1),
			newClient("Initech", ana.ID, 1),
		})
		require.NoError(t, err)
		require.Len(t, created, 2)
		assert.Equal(t, "Globex", created[0].Name)
		assert.Equal(t, "Initech", created[1].Name)
		assert.NotEqual(t, created[0].ID, created[1].ID)

		for _, client := range created {
			fetched, err := store.GetClient(ctx, client.ID)
			require.NoError(t, err)
			assert.Equal(t, client.Name, fetched.Name)
		}

		_, err = store.BulkCreateClients(ctx, []ports.NewClient{newClient("Hooli", ana.ID+100, 1)})
		assert.ErrorIs(t, err, domainerrors.ErrExecutiveNotFound)
	})

	t.Run("update and delete client", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		ana := mustExecutive(t, store, "Ana", 0)
		acme := mustClient(t, store, newClient("Acme", ana.ID, 0))

		sent := true
		updated, err := store.UpdateClient(ctx, acme.ID, ports.ClientPatch{ProposalSent: &sent})
		require.NoError(t, err)
		assert.True(t, updated.ProposalSent)
		assert.Equal(t, "Acme", updated.Name)

		_, err = store.UpdateClient(ctx, acme.ID+100, ports.ClientPatch{ProposalSent: &sent})
		assert.ErrorIs(t, err, domainerrors.ErrClientNotFound)

		require.NoError(t, store.DeleteClient(ctx, acme.ID))
		assert.ErrorIs(t, store.DeleteClient(ctx, acme.ID), domainerrors.ErrClientNotFound)

		again, err := store.CreateClient(ctx, newClient("ACME", ana.ID, 1))
		require.NoError(t, err)
		assert.NotEqual(t, acme.ID, again.ID)
	})

	t.Run("delete executive cascades", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		ana := mustExecutive(t, store, "Ana", 0)
		bob := mustExecutive(t, store, "Bob", 1)
		mustClient(t, store, newClient("Acme", ana.ID, 0))
		mustClient(t, store, newClient("Globex", ana.ID, 1))
		kept := mustClient(t, store, newClient("Initech", bob.ID, 2))

		require.NoError(t, store.DeleteExecutive(ctx, ana.ID))

		_, err := store.GetExecutive(ctx, ana.ID)
		assert.ErrorIs(t, err, domainerrors.ErrExecutiveNotFound)
		remaining, err := store.ListClients(ctx, ports.ClientFilter{})
		require.NoError(t, err)
		assert.Equal(t, []int64{kept.ID}, viewIDs(remaining))

		// Name keys of cascaded clients are free again.
		_, err = store.CreateClient(ctx, newClient("acme", bob.ID, 3))
		require.NoError(t, err)

		assert.ErrorIs(t, store.DeleteExecutive(ctx, ana.ID), domainerrors.ErrExecutiveNotFound)

		carol := mustExecutive(t, store, "Carol", 2)
		assert.Greater(t, carol.ID, bob.ID)
	})

	t.Run("last executive cannot be deleted", func(t *testing.T) {
		store := factory(t)
		ctx := context.Background()
		solo := mustExecutive(t, store, "Solo", 0)
		client := mustClient(t, store, newClient("Acme", solo.ID, 0))

		err := store.DeleteExecutive(ctx, solo.ID)
		require.ErrorIs(t, err, domainerrors.ErrLastExecutive)
		assert.ErrorIs(t, err, domainerrors.ErrConflict)

		_, err = store.GetExecutive(ctx, solo.ID)
		require.NoError(t, err)
		_, err = store.GetClient(ctx, client.ID)
		require.NoError(t, err)
	})
}

func newExecutive(name string, n int) ports.NewExecutive {
	return ports.NewExecutive{
		Name:      services.NormalizeName(name),
		NameKey:   services.NameKey(name),
		Color:     entities.PaletteColor(n),
		CreatedAt: base,
	}
}

func newClient(name string, executiveID int64, offset int) ports.NewClient {
	return ports.NewClient{
		Name:        services.NormalizeName(name),
		NameKey:     services.NameKey(name),
		ExecutiveID: executiveID,
		CreatedAt:   base.Add(time.Duration(offset) * time.Second),
	}
}

func mustExecutive(t *testing.T, store ports.RecordStore, name string, n int) entities.Executive {
	t.Helper()
	executive, err := store.CreateExecutive(context.Background(), newExecutive(name, n))
	require.NoError(t, err)
	return executive
}

func mustClient(t *testing.T, store ports.RecordStore, input ports.NewClient) entities.Client {
	t.Helper()
	client, err := store.CreateClient(context.Background(), input)
	require.NoError(t, err)
	return client
}

func viewIDs(items []entities.ClientView) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
