package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	application "roster/contexts/sales-ops/client-distribution/application"
	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/domain/services"
	"roster/contexts/sales-ops/client-distribution/ports"
)

type CreateExecutiveCommand struct {
	Name  string
	Color string
}

type CreateExecutiveResult struct {
	Executive entities.Executive
}

type CreateExecutiveUseCase struct {
	Executives ports.ExecutiveRepository
	Stats      ports.StatsCache
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (u CreateExecutiveUseCase) Execute(ctx context.Context, cmd CreateExecutiveCommand) (CreateExecutiveResult, error) {
	logger := application.ResolveLogger(u.Logger)
	name := services.NormalizeName(cmd.Name)
	if name == "" {
		return CreateExecutiveResult{}, domainerrors.ErrInvalidName
	}
	key := services.NameKey(name)

	logger.Info("create executive started",
		"event", "create_executive_started",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"executive_name", name,
	)

	existing, err := u.Executives.ListExecutives(ctx)
	if err != nil {
		logger.Error("create executive failed listing executives",
			"event", "create_executive_list_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"error", err.Error(),
		)
		return CreateExecutiveResult{}, err
	}
	for _, executive := range existing {
		if services.NameKey(executive.Name) == key {
			logger.Warn("create executive rejected duplicate",
				"event", "create_executive_duplicate",
				"module", "sales-ops/client-distribution",
				"layer", "application",
				"executive_name", name,
				"existing_executive_id", executive.ID,
			)
			return CreateExecutiveResult{}, domainerrors.DuplicateExecutiveError{Name: name}
		}
	}

	color := strings.TrimSpace(cmd.Color)
	if color == "" {
		color = entities.PaletteColor(len(existing))
	}

	executive, err := u.Executives.CreateExecutive(ctx, ports.NewExecutive{
		Name:      name,
		NameKey:   key,
		Color:     color,
		CreatedAt: application.Now(u.Clock),
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrExecutiveExists) {
			logger.Warn("create executive lost insert race",
				"event", "create_executive_duplicate",
				"module", "sales-ops/client-distribution",
				"layer", "application",
				"executive_name", name,
			)
			return CreateExecutiveResult{}, domainerrors.DuplicateExecutiveError{Name: name}
		}
		logger.Error("create executive failed on write",
			"event", "create_executive_write_failed",
			"module", "sales-ops/client-distribution",
			"layer", "application",
			"executive_name", name,
			"error", err.Error(),
		)
		return CreateExecutiveResult{}, err
	}
	application.InvalidateStats(u.Stats)

	logger.Info("executive created",
		"event", "executive_created",
		"module", "sales-ops/client-distribution",
		"layer", "application",
		"executive_id", executive.ID,
		"color", executive.Color,
	)
	return CreateExecutiveResult{Executive: executive}, nil
}
