package commands

import (
	"context"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type DeleteClientCommand struct {
	ClientID int64
}

type DeleteClientUseCase struct {
	Clients ports.ClientRepository
	Stats   ports.StatsCache
	Logger  *slog.Logger
}

func (u DeleteClientUseCase) Execute(ctx context.Context, cmd DeleteClientCommand) error {
	logger := application.ResolveLogger(u.Logger)
	if cmd.ClientID <= 0 {
		return domainerrors.ErrInvalidClientID
	}

	if err := u.Clients.DeleteClient(ctx, cmd.ClientID); err != nil {
		logger.Warn("delete client failed",
			"event", "delete_client_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"client_id", cmd.ClientID,
			"error", err.Error(),
		)
		return err
	}
	application.InvalidateStats(u.Stats)

	logger.Info("client deleted",
		"event", "client_deleted",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"client_id", cmd.ClientID,
	)
	return nil
}
