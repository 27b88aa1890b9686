package services

import (
	"sort"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
)

type StatsResult struct {
	Stats   entities.DashboardStats
	Orphans []entities.OrphanClient
}

// ComputeStats aggregates totals and per-executive counts. Every executive is
// reported, ordered by id. Clients whose executive is missing are left out of
// every count and returned as orphans instead.
func ComputeStats(executives []entities.Executive, clients []entities.Client) StatsResult {
	ordered := append([]entities.Executive(nil), executives...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	index := make(map[int64]int, len(ordered))
	perExecutive := make([]entities.ExecutiveStats, len(ordered))
	for i, executive := range ordered {
		index[executive.ID] = i
		perExecutive[i] = entities.ExecutiveStats{
			ExecutiveID: executive.ID,
			Name:        executive.Name,
			Color:       executive.Color,
		}
	}

	var result StatsResult
	for _, client := range clients {
		i, ok := index[client.ExecutiveID]
		if !ok {
			result.Orphans = append(result.Orphans, entities.OrphanClient{
				ClientID:    client.ID,
				Name:        client.Name,
				ExecutiveID: client.ExecutiveID,
			})
			continue
		}
		result.Stats.TotalClients++
		perExecutive[i].ClientCount++
		if client.ProposalSent {
			result.Stats.TotalProposals++
			perExecutive[i].ProposalCount++
		}
	}

	for i := range perExecutive {
		perExecutive[i].PendingCount = perExecutive[i].ClientCount - perExecutive[i].ProposalCount
		perExecutive[i].ConversionRate = conversionRate(perExecutive[i].ProposalCount, perExecutive[i].ClientCount)
	}
	result.Stats.ConversionRate = conversionRate(result.Stats.TotalProposals, result.Stats.TotalClients)
	result.Stats.Executives = perExecutive
	return result
}

func conversionRate(proposals, clients int) float64 {
	if clients == 0 {
		return 0
	}
	return float64(proposals) / float64(clients) * 100
}
