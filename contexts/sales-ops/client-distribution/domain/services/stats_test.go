package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
)

func TestComputeStatsEmpty(t *testing.T) {
	result := ComputeStats(nil, nil)

	assert.Zero(t, result.Stats.TotalClients)
	assert.Zero(t, result.Stats.TotalProposals)
	assert.Zero(t, result.Stats.ConversionRate)
	assert.Empty(t, result.Stats.Executives)
	assert.Empty(t, result.Orphans)
}

func TestComputeStatsConversionRate(t *testing.T) {
	executives := []entities.Executive{
		{ID: 2, Name: "Idle", Color: "#10B981"},
		{ID: 1, Name: "Busy", Color: "#3B82F6"},
	}
	var clients []entities.Client
	for i := 0; i < 10; i++ {
		clients = append(clients, entities.Client{
			ID:           int64(i + 1),
			ExecutiveID:  1,
			ProposalSent: i < 4,
		})
	}

	result := ComputeStats(executives, clients)

	require.Len(t, result.Stats.Executives, 2)
	busy := result.Stats.Executives[0]
	assert.Equal(t, int64(1), busy.ExecutiveID)
	assert.Equal(t, 10, busy.ClientCount)
	assert.Equal(t, 4, busy.ProposalCount)
	assert.Equal(t, 6, busy.PendingCount)
	assert.InDelta(t, 40.0, busy.ConversionRate, 1e-9)

	idle := result.Stats.Executives[1]
	assert.Equal(t, "Idle", idle.Name)
	assert.Zero(t, idle.ClientCount)
	assert.Zero(t, idle.ConversionRate)

	assert.Equal(t, 10, result.Stats.TotalClients)
	assert.Equal(t, 4, result.Stats.TotalProposals)
	assert.InDelta(t, 40.0, result.Stats.ConversionRate, 1e-9)
}

func TestComputeStatsReportsOrphans(t *testing.T) {
	executives := []entities.Executive{{ID: 1, Name: "Ana"}}
	clients := []entities.Client{
		{ID: 1, Name: "Kept", ExecutiveID: 1, ProposalSent: true},
		{ID: 2, Name: "Lost", ExecutiveID: 99, ProposalSent: true},
	}

	result := ComputeStats(executives, clients)

	assert.Equal(t, 1, result.Stats.TotalClients)
	assert.Equal(t, 1, result.Stats.TotalProposals)
	assert.InDelta(t, 100.0, result.Stats.ConversionRate, 1e-9)
	require.Len(t, result.Orphans, 1)
	assert.Equal(t, entities.OrphanClient{ClientID: 2, Name: "Lost", ExecutiveID: 99}, result.Orphans[0])
}
