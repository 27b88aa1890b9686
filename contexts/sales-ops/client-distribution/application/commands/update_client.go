package commands

import (
	"context"
	"errors"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type UpdateClientCommand struct {
	ClientID     int64
	ProposalSent *bool
}

// Executive is zero when the client's executive no longer resolves.
type UpdateClientResult struct {
	Client    entities.Client
	Executive entities.Executive
}

type UpdateClientUseCase struct {
	Clients    ports.ClientRepository
	Executives ports.ExecutiveRepository
	Stats      ports.StatsCache
	Logger     *slog.Logger
}

func (u UpdateClientUseCase) Execute(ctx context.Context, cmd UpdateClientCommand) (UpdateClientResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if cmd.ClientID <= 0 {
		return UpdateClientResult{}, domainerrors.ErrInvalidClientID
	}
	if cmd.ProposalSent == nil {
		return UpdateClientResult{}, domainerrors.ErrEmptyPatch
	}

	client, err := u.Clients.UpdateClient(ctx, cmd.ClientID, ports.ClientPatch{
		ProposalSent: cmd.ProposalSent,
	})
	if err != nil {
		logger.Warn("update client failed",
			"event", "update_client_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"client_id", cmd.ClientID,
			"error", err.Error(),
		)
		return UpdateClientResult{}, err
	}
	application.InvalidateStats(u.Stats)

	executive, err := u.Executives.GetExecutive(ctx, client.ExecutiveID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return UpdateClientResult{}, err
		}
		logger.Warn("updated client has no executive",
			"event", "update_client_orphan",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"client_id", client.ID,
			"executive_id", client.ExecutiveID,
		)
		executive = entities.Executive{}
	}

	logger.Info("client updated",
		"event", "client_updated",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"client_id", client.ID,
		"proposal_sent", client.ProposalSent,
	)
	return UpdateClientResult{Client: client, Executive: executive}, nil
}
