package commands

import (
	"context"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type DeleteExecutiveCommand struct {
	ExecutiveID int64
}

type DeleteExecutiveResult struct {
	Executive      entities.Executive
	RemovedClients int
}

type DeleteExecutiveUseCase struct {
	Executives ports.ExecutiveRepository
	Clients    ports.ClientRepository
	Stats      ports.StatsCache
	Logger     *slog.Logger
}

// Execute removes an executive together with its clients. The last executive
// can never be removed; the store enforces the same rule inside its delete
// transaction, so a concurrent delete cannot empty the pool either.
func (u DeleteExecutiveUseCase) Execute(ctx context.Context, cmd DeleteExecutiveCommand) (DeleteExecutiveResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if cmd.ExecutiveID <= 0 {
		return DeleteExecutiveResult{}, domainerrors.ErrInvalidExecutiveID
	}

	executive, err := u.Executives.GetExecutive(ctx, cmd.ExecutiveID)
	if err != nil {
		return DeleteExecutiveResult{}, err
	}

	executives, err := u.Executives.ListExecutives(ctx)
	if err != nil {
		return DeleteExecutiveResult{}, err
	}
	if len(executives) <= 1 {
		logger.Warn("delete executive rejected last executive",
			"event", "delete_executive_last_rejected",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"executive_id", cmd.ExecutiveID,
		)
		return DeleteExecutiveResult{}, domainerrors.ErrLastExecutive
	}

	owned, err := u.Clients.ListClientsByExecutive(ctx, cmd.ExecutiveID)
	if err != nil {
		return DeleteExecutiveResult{}, err
	}

	if err := u.Executives.DeleteExecutive(ctx, cmd.ExecutiveID); err != nil {
		logger.Error("delete executive failed",
			"event", "delete_executive_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"executive_id", cmd.ExecutiveID,
			"error", err.Error(),
		)
		return DeleteExecutiveResult{}, err
	}
	application.InvalidateStats(u.Stats)

	logger.Info("executive deleted",
		"event", "executive_deleted",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"executive_id", cmd.ExecutiveID,
		"cascaded_clients", len(owned),
	)
	return DeleteExecutiveResult{
		Executive:      executive,
		RemovedClients: len(owned),
	}, nil
}
