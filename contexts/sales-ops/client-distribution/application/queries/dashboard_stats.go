package queries

import (
	"context"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type DashboardStatsResult struct {
	Stats     entities.DashboardStats
	Orphans   []entities.OrphanClient
	FromCache bool
}

type DashboardStatsUseCase struct {
	Executives ports.ExecutiveRepository
	Clients    ports.ClientRepository
	Cache      ports.StatsCache
	Metrics    ports.Metrics
	Logger     *slog.Logger
}

func (u DashboardStatsUseCase) Execute(ctx context.Context) (DashboardStatsResult, error) {
	logger := application.ResolveLogger(u.Logger)

	var generation uint64
	if u.Cache != nil {
		generation = u.Cache.Generation()
		if stats, ok := u.Cache.Get(generation); ok {
			return DashboardStatsResult{Stats: stats, FromCache: true}, nil
		}
	}

	executives, err := u.Executives.ListExecutives(ctx)
	if err != nil {
		logger.Error("dashboard stats failed listing executives",
			"event", "dashboard_stats_executives_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return DashboardStatsResult{}, err
	}
	views, err := u.Clients.ListClients(ctx, ports.ClientFilter{})
	if err != nil {
		logger.Error("dashboard stats failed listing clients",
			"event", "dashboard_stats_clients_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return DashboardStatsResult{}, err
	}
	clients := make([]entities.Client, 0, len(views))
	for _, view := range views {
		clients = append(clients, view.Client)
	}

	result := services.ComputeStats(executives, clients)
	if len(result.Orphans) > 0 {
		application.ResolveMetrics(u.Metrics).ObserveOrphans(len(result.Orphans))
		for _, orphan := range result.Orphans {
			logger.Warn("dashboard stats skipped orphan client",
				"event", "dashboard_stats_orphan_client",
				"module", "sales-ops/client-distribution",
				"layer", "application",
				"client_id", orphan.ClientID,
				"executive_id", orphan.ExecutiveID,
				"error", domainerrors.ErrOrphanClient.Error(),
			)
		}
	}

	if u.Cache != nil {
		u.Cache.Put(generation, result.Stats)
	}

	logger.Info("dashboard stats computed",
		"event", "dashboard_stats_computed",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"total_clients", result.Stats.TotalClients,
		"executives_count", len(result.Stats.Executives),
		"orphans_count", len(result.Orphans),
	)
	return DashboardStatsResult{
		Stats:   result.Stats,
		Orphans: result.Orphans,
	}, nil
}
