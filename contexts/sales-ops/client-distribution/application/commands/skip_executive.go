package commands

import (
	"context"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type SkipExecutiveCommand struct {
	Cursor *int64
}

// SkipExecutiveResult.Skipped is the executive passed over; Next is the one
// that will receive the following rotated client.
type SkipExecutiveResult struct {
	Skipped entities.Executive
	Cursor  int64
	Next    entities.Executive
}

type SkipExecutiveUseCase struct {
	Executives ports.ExecutiveRepository
	Metrics    ports.Metrics
	Logger     *slog.Logger
}

func (u SkipExecutiveUseCase) Execute(ctx context.Context, cmd SkipExecutiveCommand) (SkipExecutiveResult, error) {
	logger := application.ResolveLogger(u.Logger)

	executives, err := u.Executives.ListExecutives(ctx)
	if err != nil {
		logger.Error("skip executive failed listing executives",
			"event", "skip_executive_list_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return SkipExecutiveResult{}, err
	}

	skipped, err := services.NextExecutive(executives, cmd.Cursor)
	if err != nil {
		logger.Warn("skip executive rejected",
			"event", "skip_executive_rejected",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return SkipExecutiveResult{}, err
	}
	cursor := skipped.ID
	next, err := services.NextExecutive(executives, &cursor)
	if err != nil {
		return SkipExecutiveResult{}, err
	}
	application.ResolveMetrics(u.Metrics).ObserveSkip()

	logger.Info("executive skipped",
		"event", "executive_skipped",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"skipped_executive_id", skipped.ID,
		"next_executive_id", next.ID,
	)
	return SkipExecutiveResult{
		Skipped: skipped,
		Cursor:  cursor,
		Next:    next,
	}, nil
}
