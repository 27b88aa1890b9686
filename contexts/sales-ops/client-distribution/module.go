package clientdistribution

import (
	"log/slog"

	"roster/contexts/sales-ops/client-distribution/adapters/cache"
	httpadapter "roster/contexts/sales-ops/client-distribution/adapters/http"
	"roster/contexts/sales-ops/client-distribution/adapters/importfile"
	"roster/contexts/sales-ops/client-distribution/adapters/memory"
	"roster/contexts/sales-ops/client-distribution/application/commands"
	"roster/contexts/sales-ops/client-distribution/application/queries"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	"roster/contexts/sales-ops/client-distribution/ports"
)

// Module is the composition surface for client distribution.
// Runtime wiring should consume Handler; Store is exposed for tests/inspection.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Executives  ports.ExecutiveRepository
	Clients     ports.ClientRepository
	Stats       ports.StatsCache
	Metrics     ports.Metrics
	Extractor   ports.NameExtractor
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// NewModule wires the use cases against explicit ports.
func NewModule(deps Dependencies) Module {
	extractor := deps.Extractor
	if extractor == nil {
		extractor = importfile.NewReader(importfile.DefaultMaxBytes)
	}

	bulkImport := commands.BulkImportUseCase{
		Executives:  deps.Executives,
		Clients:     deps.Clients,
		Stats:       deps.Stats,
		Metrics:     deps.Metrics,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Logger:      deps.Logger,
	}

	handler := httpadapter.Handler{
		ListExecutives: queries.ListExecutivesUseCase{
			Executives: deps.Executives,
			Logger:     deps.Logger,
		},
		NextExecutive: queries.NextExecutiveUseCase{
			Executives: deps.Executives,
			Logger:     deps.Logger,
		},
		ListClients: queries.ListClientsUseCase{
			Clients: deps.Clients,
			Logger:  deps.Logger,
		},
		DashboardStats: queries.DashboardStatsUseCase{
			Executives: deps.Executives,
			Clients:    deps.Clients,
			Cache:      deps.Stats,
			Metrics:    deps.Metrics,
			Logger:     deps.Logger,
		},
		CreateExecutive: commands.CreateExecutiveUseCase{
			Executives: deps.Executives,
			Stats:      deps.Stats,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		DeleteExecutive: commands.DeleteExecutiveUseCase{
			Executives: deps.Executives,
			Clients:    deps.Clients,
			Stats:      deps.Stats,
			Logger:     deps.Logger,
		},
		SkipExecutive: commands.SkipExecutiveUseCase{
			Executives: deps.Executives,
			Metrics:    deps.Metrics,
			Logger:     deps.Logger,
		},
		AssignClient: commands.AssignClientUseCase{
			Executives: deps.Executives,
			Clients:    deps.Clients,
			Stats:      deps.Stats,
			Metrics:    deps.Metrics,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
		UpdateClient: commands.UpdateClientUseCase{
			Clients:    deps.Clients,
			Executives: deps.Executives,
			Stats:      deps.Stats,
			Logger:     deps.Logger,
		},
		DeleteClient: commands.DeleteClientUseCase{
			Clients: deps.Clients,
			Stats:   deps.Stats,
			Logger:  deps.Logger,
		},
		BulkImport: bulkImport,
		ImportFile: commands.ImportFileUseCase{
			Extractor: extractor,
			Import:    bulkImport,
			Logger:    deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{Handler: handler}
}

// NewInMemoryModule wires the use cases against the in-memory store with a
// stats cache in front of it.
func NewInMemoryModule(seedExecutives []entities.Executive, logger *slog.Logger) Module {
	store := memory.NewStore(seedExecutives, logger)
	deps := Dependencies{
		Executives:  store,
		Clients:     store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	}
	if statsCache, err := cache.NewStatsCache(0); err == nil {
		deps.Stats = statsCache
	}
	module := NewModule(deps)
	module.Store = store
	return module
}
