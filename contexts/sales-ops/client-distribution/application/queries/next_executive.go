package queries

import (
	"context"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type NextExecutiveQuery struct {
	Cursor *int64
}

type NextExecutiveResult struct {
	Executive entities.Executive
}

// NextExecutiveUseCase previews the next executive in the rotation without
// moving the cursor.
type NextExecutiveUseCase struct {
	Executives ports.ExecutiveRepository
	Logger     *slog.Logger
}

func (u NextExecutiveUseCase) Execute(ctx context.Context, query NextExecutiveQuery) (NextExecutiveResult, error) {
	logger := application.ResolveLogger(u.Logger)
	executives, err := u.Executives.ListExecutives(ctx)
	if err != nil {
		logger.Error("next executive failed listing executives",
			"event", "next_executive_list_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return NextExecutiveResult{}, err
	}
	next, err := services.NextExecutive(executives, query.Cursor)
	if err != nil {
		return NextExecutiveResult{}, err
	}
	logger.Debug("next executive resolved",
		"event", "next_executive_resolved",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"executive_id", next.ID,
	)
	return NextExecutiveResult{Executive: next}, nil
}
