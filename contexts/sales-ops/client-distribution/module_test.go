package clientdistribution

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/contexts/sales-ops/client-distribution/application/commands"
	"roster/contexts/sales-ops/client-distribution/application/queries"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

func newAnaBobModule() Module {
	return NewInMemoryModule([]entities.Executive{
		{ID: 1, Name: "Ana", Color: "#3B82F6"},
		{ID: 2, Name: "Bob", Color: "#10B981"},
	}, nil)
}

func TestRotatedAssignmentWrapsAcrossExecutives(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()
	assign := module.Handler.AssignClient

	first, err := assign.Execute(ctx, commands.AssignClientCommand{Name: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", first.Executive.Name)
	require.NotNil(t, first.Cursor)
	assert.Equal(t, int64(1), *first.Cursor)

	second, err := assign.Execute(ctx, commands.AssignClientCommand{Name: "Globex", Cursor: first.Cursor})
	require.NoError(t, err)
	assert.Equal(t, "Bob", second.Executive.Name)

	third, err := assign.Execute(ctx, commands.AssignClientCommand{Name: "Initech", Cursor: second.Cursor})
	require.NoError(t, err)
	assert.Equal(t, "Ana", third.Executive.Name)
	assert.True(t, third.Rotated)
}

func TestDirectAssignmentKeepsCursor(t *testing.T) {
	module := newAnaBobModule()
	cursor := int64(1)

	result, err := module.Handler.AssignClient.Execute(context.Background(), commands.AssignClientCommand{
		Name:        "Acme",
		ExecutiveID: 2,
		Cursor:      &cursor,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Client.ExecutiveID)
	assert.False(t, result.Rotated)
	require.NotNil(t, result.Cursor)
	assert.Equal(t, int64(1), *result.Cursor)
}

func TestSingleCreateRejectsDuplicateNamingOwner(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()

	_, err := module.Handler.AssignClient.Execute(ctx, commands.AssignClientCommand{Name: "Acme", ExecutiveID: 2})
	require.NoError(t, err)

	_, err = module.Handler.AssignClient.Execute(ctx, commands.AssignClientCommand{Name: "  ACME "})
	require.ErrorIs(t, err, domainerrors.ErrClientExists)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
	assert.Contains(t, err.Error(), "Bob")

	_, err = module.Handler.AssignClient.Execute(ctx, commands.AssignClientCommand{Name: "  "})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)

	_, err = module.Handler.AssignClient.Execute(ctx, commands.AssignClientCommand{Name: "Hooli", ExecutiveID: 99})
	assert.ErrorIs(t, err, domainerrors.ErrExecutiveNotFound)
}

func TestSkipAdvancesRotation(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()

	skipped, err := module.Handler.SkipExecutive.Execute(ctx, commands.SkipExecutiveCommand{})
	require.NoError(t, err)
	assert.Equal(t, "Ana", skipped.Skipped.Name)
	assert.Equal(t, int64(1), skipped.Cursor)
	assert.Equal(t, "Bob", skipped.Next.Name)

	next, err := module.Handler.NextExecutive.Execute(ctx, queries.NextExecutiveQuery{Cursor: &skipped.Cursor})
	require.NoError(t, err)
	assert.Equal(t, "Bob", next.Executive.Name)
}

func TestSkipWithSingleExecutiveReturnsSameExecutive(t *testing.T) {
	module := NewInMemoryModule([]entities.Executive{{ID: 5, Name: "Solo"}}, nil)

	result, err := module.Handler.SkipExecutive.Execute(context.Background(), commands.SkipExecutiveCommand{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Skipped.ID)
	assert.Equal(t, int64(5), result.Next.ID)
}

func TestRotationWithoutExecutivesConflicts(t *testing.T) {
	module := NewInMemoryModule(nil, nil)

	_, err := module.Handler.NextExecutive.Execute(context.Background(), queries.NextExecutiveQuery{})
	assert.ErrorIs(t, err, domainerrors.ErrNoExecutivesAvailable)

	_, err = module.Handler.AssignClient.Execute(context.Background(), commands.AssignClientCommand{Name: "Acme"})
	assert.ErrorIs(t, err, domainerrors.ErrNoExecutivesAvailable)
}

func TestBulkImportJoaoMariaScenario(t *testing.T) {
	module := NewInMemoryModule([]entities.Executive{
		{ID: 1, Name: "Ana"},
		{ID: 3, Name: "Carla"},
	}, nil)
	ctx := context.Background()

	_, err := module.Handler.AssignClient.Execute(ctx, commands.AssignClientCommand{Name: "joão", ExecutiveID: 1})
	require.NoError(t, err)

	result, err := module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"João", "Maria", "joão"},
		ExecutiveID: 3,
	})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "Maria", result.Created[0].Name)
	assert.Equal(t, int64(3), result.Created[0].ExecutiveID)
	assert.False(t, result.Created[0].ProposalSent)
	assert.Len(t, result.Rejected, 2)
	assert.Contains(t, result.Rejected[0], "Ana")
	assert.Equal(t, "1 client(s) created", result.Message)
	assert.NotEmpty(t, result.BatchID)
}

func TestBulkImportAllDuplicatesIsSuccess(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()

	_, err := module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"Acme", "Globex"},
		ExecutiveID: 1,
	})
	require.NoError(t, err)

	again, err := module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"acme", "GLOBEX"},
		ExecutiveID: 2,
	})
	require.NoError(t, err)
	assert.Empty(t, again.Created)
	assert.Len(t, again.Rejected, 2)
	assert.Equal(t, "no clients created, all already exist", again.Message)
}

func TestBulkImportValidatesInput(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()

	_, err := module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"", "   "},
		ExecutiveID: 1,
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyInput)

	_, err = module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"Acme"},
		ExecutiveID: 42,
	})
	assert.ErrorIs(t, err, domainerrors.ErrExecutiveNotFound)
}

// racingClients inserts a clashing client between the import's read and its
// bulk write.
type racingClients struct {
	ports.ClientRepository
	intruder ports.NewClient
	once     bool
}

func (r *racingClients) BulkCreateClients(ctx context.Context, clients []ports.NewClient) ([]entities.Client, error) {
	if !r.once {
		r.once = true
		if _, err := r.ClientRepository.CreateClient(ctx, r.intruder); err != nil {
			return nil, err
		}
	}
	return r.ClientRepository.BulkCreateClients(ctx, clients)
}

func TestBulkImportReportsConcurrentInsertAsRejection(t *testing.T) {
	module := newAnaBobModule()
	racing := &racingClients{
		ClientRepository: module.Store,
		intruder: ports.NewClient{
			Name:        "Globex",
			NameKey:     services.NameKey("Globex"),
			ExecutiveID: 2,
		},
	}
	bulk := module.Handler.BulkImport
	bulk.Clients = racing

	result, err := bulk.Execute(context.Background(), commands.BulkImportCommand{
		Names:       []string{"Acme", "globex"},
		ExecutiveID: 1,
	})
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, "Acme", result.Created[0].Name)
	require.Len(t, result.Rejections, 1)
	assert.Equal(t, services.RejectionExistingClient, result.Rejections[0].Kind)
	assert.Contains(t, result.Rejected[0], "concurrent")
}

func TestImportFileUsesSamePipeline(t *testing.T) {
	module := newAnaBobModule()

	result, err := module.Handler.ImportFile.Execute(context.Background(), commands.ImportFileCommand{
		Filename:    "leads.txt",
		ContentType: "text/plain",
		Body:        strings.NewReader("Acme;Globex\nacme\n"),
		ExecutiveID: 2,
	})
	require.NoError(t, err)
	assert.Len(t, result.Created, 2)
	assert.Len(t, result.Rejected, 1)

	_, err = module.Handler.ImportFile.Execute(context.Background(), commands.ImportFileCommand{
		Filename:    "leads.xls",
		Body:        strings.NewReader(""),
		ExecutiveID: 2,
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnsupportedFile)
}

func TestDeletingLastExecutiveLeavesStoreUnchanged(t *testing.T) {
	module := NewInMemoryModule([]entities.Executive{{ID: 1, Name: "Solo"}}, nil)
	ctx := context.Background()

	_, err := module.Handler.AssignClient.Execute(ctx, commands.AssignClientCommand{Name: "Acme"})
	require.NoError(t, err)

	_, err = module.Handler.DeleteExecutive.Execute(ctx, commands.DeleteExecutiveCommand{ExecutiveID: 1})
	require.ErrorIs(t, err, domainerrors.ErrLastExecutive)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	executives, err := module.Store.ListExecutives(ctx)
	require.NoError(t, err)
	assert.Len(t, executives, 1)
	clients, err := module.Store.ListClients(ctx, ports.ClientFilter{})
	require.NoError(t, err)
	assert.Len(t, clients, 1)
}

func TestDeleteExecutiveCascadesClients(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()

	_, err := module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"Acme", "Globex"},
		ExecutiveID: 1,
	})
	require.NoError(t, err)

	result, err := module.Handler.DeleteExecutive.Execute(ctx, commands.DeleteExecutiveCommand{ExecutiveID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RemovedClients)

	clients, err := module.Store.ListClients(ctx, ports.ClientFilter{})
	require.NoError(t, err)
	assert.Empty(t, clients)
}

func TestCreateExecutivePicksPaletteColor(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()

	created, err := module.Handler.CreateExecutive.Execute(ctx, commands.CreateExecutiveCommand{Name: " Carla "})
	require.NoError(t, err)
	assert.Equal(t, "Carla", created.Executive.Name)
	assert.Equal(t, entities.DefaultPalette[2], created.Executive.Color)

	custom, err := module.Handler.CreateExecutive.Execute(ctx, commands.CreateExecutiveCommand{Name: "Dana", Color: "#000000"})
	require.NoError(t, err)
	assert.Equal(t, "#000000", custom.Executive.Color)

	_, err = module.Handler.CreateExecutive.Execute(ctx, commands.CreateExecutiveCommand{Name: "carla"})
	assert.ErrorIs(t, err, domainerrors.ErrExecutiveExists)
}

func TestDashboardStatsFollowMutations(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()
	stats := module.Handler.DashboardStats

	empty, err := stats.Execute(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.Stats.TotalClients)
	require.Len(t, empty.Stats.Executives, 2)

	cached, err := stats.Execute(ctx)
	require.NoError(t, err)
	assert.True(t, cached.FromCache)

	imported, err := module.Handler.BulkImport.Execute(ctx, commands.BulkImportCommand{
		Names:       []string{"A1", "A2", "A3", "A4", "A5"},
		ExecutiveID: 1,
	})
	require.NoError(t, err)
	sent := true
	for _, client := range imported.Created[:2] {
		_, err := module.Handler.UpdateClient.Execute(ctx, commands.UpdateClientCommand{
			ClientID:     client.ID,
			ProposalSent: &sent,
		})
		require.NoError(t, err)
	}

	fresh, err := stats.Execute(ctx)
	require.NoError(t, err)
	assert.False(t, fresh.FromCache)
	assert.Equal(t, 5, fresh.Stats.TotalClients)
	assert.Equal(t, 2, fresh.Stats.TotalProposals)
	assert.InDelta(t, 40.0, fresh.Stats.ConversionRate, 1e-9)
	assert.Equal(t, 3, fresh.Stats.Executives[0].PendingCount)
	assert.Zero(t, fresh.Stats.Executives[1].ConversionRate)

	require.NoError(t, module.Handler.DeleteClient.Execute(ctx, commands.DeleteClientCommand{ClientID: imported.Created[4].ID}))
	afterDelete, err := stats.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, afterDelete.Stats.TotalClients)
	assert.InDelta(t, 50.0, afterDelete.Stats.ConversionRate, 1e-9)
}

func TestUpdateClientValidation(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()

	_, err := module.Handler.UpdateClient.Execute(ctx, commands.UpdateClientCommand{ClientID: 1})
	assert.ErrorIs(t, err, domainerrors.ErrEmptyPatch)

	sent := true
	_, err = module.Handler.UpdateClient.Execute(ctx, commands.UpdateClientCommand{ClientID: 99, ProposalSent: &sent})
	assert.ErrorIs(t, err, domainerrors.ErrClientNotFound)

	_, err = module.Handler.UpdateClient.Execute(ctx, commands.UpdateClientCommand{ClientID: 0, ProposalSent: &sent})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidClientID)
}

func TestUpdateClientResolvesExecutive(t *testing.T) {
	module := newAnaBobModule()
	ctx := context.Background()

	assigned, err := module.Handler.AssignClient.Execute(ctx, commands.AssignClientCommand{Name: "Acme", ExecutiveID: 2})
	require.NoError(t, err)

	sent := true
	updated, err := module.Handler.UpdateClient.Execute(ctx, commands.UpdateClientCommand{
		ClientID:     assigned.Client.ID,
		ProposalSent: &sent,
	})
	require.NoError(t, err)
	assert.True(t, updated.Client.ProposalSent)
	assert.Equal(t, "Bob", updated.Executive.Name)
	assert.Equal(t, "#10B981", updated.Executive.Color)
}
