package services

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName trims surrounding whitespace and composes the name to NFC.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}

// NameKey is the form used for every uniqueness comparison: the normalized
// name with Unicode full case folding applied.
func NameKey(name string) string {
	// Casers carry state and are not safe for concurrent use.
	return cases.Fold().String(NormalizeName(name))
}
