package queries

import (
	"context"
	"log/slog"
	"strings"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type ListClientsQuery struct {
	Query        string
	ExecutiveID  int64
	ProposalSent *bool
}

type ListClientsResult struct {
	Items []entities.ClientView
}

type ListClientsUseCase struct {
	Clients ports.ClientRepository
	Logger  *slog.Logger
}

func (u ListClientsUseCase) Execute(ctx context.Context, query ListClientsQuery) (ListClientsResult, error) {
	logger := application.ResolveLogger(u.Logger)
	if query.ExecutiveID < 0 {
		return ListClientsResult{}, domainerrors.ErrInvalidExecutiveID
	}

	items, err := u.Clients.ListClients(ctx, ports.ClientFilter{
		Query:        strings.TrimSpace(query.Query),
		ExecutiveID:  query.ExecutiveID,
		ProposalSent: query.ProposalSent,
	})
	if err != nil {
		logger.Error("list clients failed",
			"event", "list_clients_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return ListClientsResult{}, err
	}

	logger.Info("list clients completed",
		"event", "list_clients_completed",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"items_count", len(items),
		"has_query", query.Query != "",
	)
	return ListClientsResult{Items: items}, nil
}
