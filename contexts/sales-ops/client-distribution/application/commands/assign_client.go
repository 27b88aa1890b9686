package commands

import (
	"context"
	"errors"
	"log/slog"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

const (
	AssignmentRotated   = "rotated"
	AssignmentDirect    = "direct"
	AssignmentDuplicate = "duplicate"
	AssignmentFailed    = "failed"
)

// AssignClientCommand creates one client. A zero ExecutiveID hands the client
// to the executive after Cursor in the rotation.
type AssignClientCommand struct {
	Name         string
	ExecutiveID  int64
	Cursor       *int64
	ProposalSent bool
}

// AssignClientResult.Cursor is the cursor the caller should send next time.
// Rotated assignments move it to the assigned executive; direct assignments
// leave the caller's cursor as it was.
type AssignClientResult struct {
	Client    entities.Client
	Executive entities.Executive
	Cursor    *int64
	Rotated   bool
}

type AssignClientUseCase struct {
	Executives ports.ExecutiveRepository
	Clients    ports.ClientRepository
	Stats      ports.StatsCache
	Metrics    ports.Metrics
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u AssignClientUseCase) Execute(ctx context.Context, cmd AssignClientCommand) (AssignClientResult, error) {
	logger := application.ResolveLogger(u.Logger)
	metrics := application.ResolveMetrics(u.Metrics)

	name := services.NormalizeName(cmd.Name)
	if name == "" {
		return AssignClientResult{}, domainerrors.ErrInvalidName
	}
	if cmd.ExecutiveID < 0 {
		return AssignClientResult{}, domainerrors.ErrInvalidExecutiveID
	}
	key := services.NameKey(name)
	rotated := cmd.ExecutiveID == 0

	logger.Info("assign client started",
		"event", "assign_client_started",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"client_name", name,
		"executive_id", cmd.ExecutiveID,
		"rotated", rotated,
	)

	executive, err := u.resolveExecutive(ctx, cmd)
	if err != nil {
		metrics.ObserveAssignment(AssignmentFailed)
		logger.Warn("assign client could not resolve executive",
			"event", "assign_client_executive_unresolved",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"executive_id", cmd.ExecutiveID,
			"error", err.Error(),
		)
		return AssignClientResult{}, err
	}

	existing, err := u.Clients.ListClients(ctx, ports.ClientFilter{})
	if err != nil {
		metrics.ObserveAssignment(AssignmentFailed)
		logger.Error("assign client failed listing clients",
			"event", "assign_client_list_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return AssignClientResult{}, err
	}
	for _, client := range existing {
		if services.NameKey(client.Name) != key {
			continue
		}
		metrics.ObserveAssignment(AssignmentDuplicate)
		logger.Warn("assign client rejected duplicate",
			"event", "assign_client_duplicate",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"client_name", name,
			"existing_client_id", client.ID,
			"existing_executive_id", client.ExecutiveID,
		)
		return AssignClientResult{}, domainerrors.DuplicateClientError{
			Name:          name,
			ExecutiveName: client.ExecutiveName,
		}
	}

	client, err := u.Clients.CreateClient(ctx, ports.NewClient{
		Name:         name,
		NameKey:      key,
		ExecutiveID:  executive.ID,
		ProposalSent: cmd.ProposalSent,
		CreatedAt:    application.Now(u.Clock),
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrClientExists) {
			metrics.ObserveAssignment(AssignmentDuplicate)
			logger.Warn("assign client lost insert race",
				"event", "assign_client_duplicate",
				"module", "sales-ops/client-distribution",
				"layer", "application",
				"client_name", name,
			)
			return AssignClientResult{}, domainerrors.DuplicateClientError{Name: name}
		}
		metrics.ObserveAssignment(AssignmentFailed)
		logger.Error("assign client failed on write",
			"event", "assign_client_write_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"client_name", name,
			"executive_id", executive.ID,
			"error", err.Error(),
		)
		return AssignClientResult{}, err
	}
	application.InvalidateStats(u.Stats)

	cursor := cmd.Cursor
	outcome := AssignmentDirect
	if rotated {
		assigned := executive.ID
		cursor = &assigned
		outcome = AssignmentRotated
	}
	metrics.ObserveAssignment(outcome)

	logger.Info("client assigned",
		"event", "client_assigned",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"client_id", client.ID,
		"executive_id", executive.ID,
		"outcome", outcome,
	)
	return AssignClientResult{
		Client:    client,
		Executive: executive,
		Cursor:    cursor,
		Rotated:   rotated,
	}, nil
}

func (u AssignClientUseCase) resolveExecutive(ctx context.Context, cmd AssignClientCommand) (entities.Executive, error) {
	if cmd.ExecutiveID > 0 {
		return u.Executives.GetExecutive(ctx, cmd.ExecutiveID)
	}
	executives, err := u.Executives.ListExecutives(ctx)
	if err != nil {
		return entities.Executive{}, err
	}
	return services.NextExecutive(executives, cmd.Cursor)
}
