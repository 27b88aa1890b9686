package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
)

func TestPartitionJoaoMariaScenario(t *testing.T) {
	existing := []entities.ClientView{
		{Client: entities.Client{ID: 1, Name: "joão", ExecutiveID: 1}, ExecutiveName: "Ana"},
	}

	result := Partition([]string{"João", "Maria", "joão"}, existing)

	assert.Equal(t, []string{"Maria"}, result.Creatable)
	require.Len(t, result.Rejected, 2)
	assert.Equal(t, 1, result.StoreDuplicates)
	assert.Equal(t, 1, result.BatchDuplicates)

	assert.Equal(t, RejectionExistingClient, result.Rejected[0].Kind)
	assert.Equal(t, "João", result.Rejected[0].Name)
	assert.Contains(t, result.Rejected[0].Reason, "Ana")
	assert.Equal(t, RejectionBatchDuplicate, result.Rejected[1].Kind)
	assert.Equal(t, "joão", result.Rejected[1].Name)
}

func TestPartitionCountingIdentity(t *testing.T) {
	existing := []entities.ClientView{
		{Client: entities.Client{Name: "Acme"}},
		{Client: entities.Client{Name: "Globex"}},
	}
	cases := [][]string{
		nil,
		{"", "   ", "\t"},
		{"acme", "ACME", " Acme "},
		{"Initech", "initech", "Umbrella", "globex", "", "Hooli", "hooli "},
		{"Straße", "STRASSE", "strasse"},
	}

	for _, candidates := range cases {
		result := Partition(candidates, existing)

		nonEmpty := 0
		for _, name := range candidates {
			if NormalizeName(name) != "" {
				nonEmpty++
			}
		}
		assert.Equal(t, nonEmpty, result.Considered, "candidates %q", candidates)
		assert.Equal(t, nonEmpty, len(result.Creatable)+result.BatchDuplicates+result.StoreDuplicates, "candidates %q", candidates)
		assert.Equal(t, len(result.Rejected), result.BatchDuplicates+result.StoreDuplicates, "candidates %q", candidates)
	}
}

func TestPartitionKeepsFirstSeenOrderAndTrims(t *testing.T) {
	result := Partition([]string{"  Zeta ", "alpha", "Mid", "ALPHA"}, nil)

	assert.Equal(t, []string{"Zeta", "alpha", "Mid"}, result.Creatable)
	assert.Equal(t, 1, result.BatchDuplicates)
	assert.Zero(t, result.StoreDuplicates)
}

func TestPartitionUsesFullCaseFolding(t *testing.T) {
	result := Partition([]string{"STRASSE"}, []entities.ClientView{
		{Client: entities.Client{Name: "straße"}},
	})

	assert.Empty(t, result.Creatable)
	assert.Equal(t, 1, result.StoreDuplicates)
}

func TestPartitionComposesDecomposedNames(t *testing.T) {
	decomposed := "Jose\u0301"
	result := Partition([]string{decomposed, "Jos\u00e9"}, nil)

	assert.Equal(t, []string{"Jos\u00e9"}, result.Creatable)
	assert.Equal(t, 1, result.BatchDuplicates)
}
