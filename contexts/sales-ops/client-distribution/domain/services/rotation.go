package services

import (
	"sort"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
)

// NextExecutive picks the executive after cursor in ascending id order,
// wrapping at the end. A nil cursor, or one that no longer resolves, starts
// the rotation at the smallest id.
func NextExecutive(executives []entities.Executive, cursor *int64) (entities.Executive, error) {
	if len(executives) == 0 {
		return entities.Executive{}, domainerrors.ErrNoExecutivesAvailable
	}

	ordered := append([]entities.Executive(nil), executives...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ID < ordered[j].ID
	})

	if cursor == nil {
		return ordered[0], nil
	}
	for i, executive := range ordered {
		if executive.ID == *cursor {
			return ordered[(i+1)%len(ordered)], nil
		}
	}
	return ordered[0], nil
}

// AdvanceCursor returns the id NextExecutive would select; callers keep it as
// the new cursor. Skipping is AdvanceCursor without creating a client.
func AdvanceCursor(executives []entities.Executive, cursor *int64) (int64, error) {
	next, err := NextExecutive(executives, cursor)
	if err != nil {
		return 0, err
	}
	return next.ID, nil
}
