package services

import (
	"fmt"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
)

type RejectionKind string

const (
	RejectionBatchDuplicate RejectionKind = "batch_duplicate"
	RejectionExistingClient RejectionKind = "existing_client"
)

type Rejection struct {
	Name   string
	Reason string
	Kind   RejectionKind
}

type PartitionResult struct {
	Creatable       []string
	Rejected        []Rejection
	Considered      int
	BatchDuplicates int
	StoreDuplicates int
}

// Partition splits candidate names into the ones that can be created and the
// ones that clash, either with an earlier candidate or with an existing
// client. Comparison uses NameKey. Creatable keeps first-seen order and the
// normalized spelling of each name.
func Partition(candidates []string, existing []entities.ClientView) PartitionResult {
	owners := make(map[string]entities.ClientView, len(existing))
	for _, client := range existing {
		owners[NameKey(client.Name)] = client
	}

	result := PartitionResult{
		Creatable: make([]string, 0, len(candidates)),
	}
	seen := make(map[string]struct{}, len(candidates))
	for _, raw := range candidates {
		name := NormalizeName(raw)
		if name == "" {
			continue
		}
		result.Considered++

		key := NameKey(name)
		if _, dup := seen[key]; dup {
			result.BatchDuplicates++
			result.Rejected = append(result.Rejected, Rejection{
				Name:   name,
				Reason: fmt.Sprintf("client %q is repeated in this import", name),
				Kind:   RejectionBatchDuplicate,
			})
			continue
		}
		seen[key] = struct{}{}

		if owner, found := owners[key]; found {
			result.StoreDuplicates++
			result.Rejected = append(result.Rejected, Rejection{
				Name: name,
				Reason: domainerrors.DuplicateClientError{
					Name:          name,
					ExecutiveName: owner.ExecutiveName,
				}.Error(),
				Kind: RejectionExistingClient,
			})
			continue
		}
		result.Creatable = append(result.Creatable, name)
	}
	return result
}
