package queries

import (
	"context"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type ListExecutivesResult struct {
	Items []entities.Executive
}

type ListExecutivesUseCase struct {
	Executives ports.ExecutiveRepository
	Logger     *slog.Logger
}

func (u ListExecutivesUseCase) Execute(ctx context.Context) (ListExecutivesResult, error) {
	logger := application.ResolveLogger(u.Logger)
	items, err := u.Executives.ListExecutives(ctx)
	if err != nil {
		logger.Error("list executives failed",
			"event", "list_executives_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return ListExecutivesResult{}, err
	}
	return ListExecutivesResult{Items: items}, nil
}
