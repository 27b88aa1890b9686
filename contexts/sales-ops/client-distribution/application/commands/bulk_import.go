package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type BulkImportCommand struct {
	Names       []string
	ExecutiveID int64
	Source      string
}

type BulkImportResult struct {
	BatchID    string
	Executive  entities.Executive
	Created    []entities.Client
	Rejected   []string
	Rejections []services.Rejection
	Message    string
}

// BulkImportUseCase assigns a list of names to one executive. Names clashing
// with each other or with existing clients are reported, not fatal.
type BulkImportUseCase struct {
	Executives  ports.ExecutiveRepository
	Clients     ports.ClientRepository
	Stats       ports.StatsCache
	Metrics     ports.Metrics
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

// Execute runs the import in this order:
// 1) executive resolution
// 2) partition against the current client population
// 3) one bulk write of the creatable names
// 4) names the store skipped at write time become rejections.
func (u BulkImportUseCase) Execute(ctx context.Context, cmd BulkImportCommand) (BulkImportResult, error) {
	logger := application.ResolveLogger(u.Logger)
	metrics := application.ResolveMetrics(u.Metrics)
	started := time.Now()

	if cmd.ExecutiveID <= 0 {
		return BulkImportResult{}, domainerrors.ErrInvalidExecutiveID
	}
	executive, err := u.Executives.GetExecutive(ctx, cmd.ExecutiveID)
	if err != nil {
		logger.Warn("bulk import could not resolve executive",
			"event", "bulk_import_executive_unresolved",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"executive_id", cmd.ExecutiveID,
			"error", err.Error(),
		)
		return BulkImportResult{}, err
	}
	if !hasName(cmd.Names) {
		return BulkImportResult{}, domainerrors.ErrEmptyInput
	}

	batchID, err := u.newBatchID(ctx)
	if err != nil {
		return BulkImportResult{}, err
	}

	logger.Info("bulk import started",
		"event", "bulk_import_started",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"batch_id", batchID,
		"executive_id", executive.ID,
		"source", cmd.Source,
		"names_count", len(cmd.Names),
	)

	existing, err := u.Clients.ListClients(ctx, ports.ClientFilter{})
	if err != nil {
		logger.Error("bulk import failed listing clients",
			"event", "bulk_import_list_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"batch_id", batchID,
			"error", err.Error(),
		)
		return BulkImportResult{}, err
	}
	partition := services.Partition(cmd.Names, existing)

	now := application.Now(u.Clock)
	rows := make([]ports.NewClient, 0, len(partition.Creatable))
	for _, name := range partition.Creatable {
		rows = append(rows, ports.NewClient{
			Name:        name,
			NameKey:     services.NameKey(name),
			ExecutiveID: executive.ID,
			CreatedAt:   now,
		})
	}

	created, err := u.Clients.BulkCreateClients(ctx, rows)
	if err != nil {
		logger.Error("bulk import failed on write",
			"event", "bulk_import_write_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"batch_id", batchID,
			"executive_id", executive.ID,
			"error", err.Error(),
		)
		return BulkImportResult{}, err
	}

	rejections := append([]services.Rejection(nil), partition.Rejected...)
	rejections = append(rejections, skippedAtWrite(partition.Creatable, created)...)
	if len(rejections) > len(partition.Rejected) {
		logger.Warn("bulk import lost names to concurrent inserts",
			"event", "bulk_import_concurrent_duplicates",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"batch_id", batchID,
			"skipped_count", len(rejections)-len(partition.Rejected),
		)
	}

	if len(created) > 0 {
		application.InvalidateStats(u.Stats)
	}
	metrics.ObserveImport(len(created), len(rejections), time.Since(started))

	messages := make([]string, 0, len(rejections))
	for _, rejection := range rejections {
		messages = append(messages, rejection.Reason)
	}

	logger.Info("bulk import completed",
		"event", "bulk_import_completed",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"batch_id", batchID,
		"executive_id", executive.ID,
		"created_count", len(created),
		"rejected_count", len(rejections),
		"batch_duplicates", partition.BatchDuplicates,
		"store_duplicates", partition.StoreDuplicates,
	)

	return BulkImportResult{
		BatchID:    batchID,
		Executive:  executive,
		Created:    created,
		Rejected:   messages,
		Rejections: rejections,
		Message:    importSummary(len(created)),
	}, nil
}

func (u BulkImportUseCase) newBatchID(ctx context.Context) (string, error) {
	if u.IDGenerator == nil {
		return "", nil
	}
	return u.IDGenerator.NewID(ctx)
}

func hasName(names []string) bool {
	for _, name := range names {
		if services.NormalizeName(name) != "" {
			return true
		}
	}
	return false
}

func skippedAtWrite(requested []string, created []entities.Client) []services.Rejection {
	if len(created) == len(requested) {
		return nil
	}
	inserted := make(map[string]struct{}, len(created))
	for _, client := range created {
		inserted[services.NameKey(client.Name)] = struct{}{}
	}
	var skipped []services.Rejection
	for _, name := range requested {
		if _, ok := inserted[services.NameKey(name)]; ok {
			continue
		}
		skipped = append(skipped, services.Rejection{
			Name:   name,
			Reason: fmt.Sprintf("client %q was added by a concurrent insert", name),
			Kind:   services.RejectionExistingClient,
		})
	}
	return skipped
}

func importSummary(created int) string {
	if created == 0 {
		return "no clients created, all already exist"
	}
	return fmt.Sprintf("%d client(s) created", created)
}
