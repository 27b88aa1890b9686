package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameKey(t *testing.T) {
	cases := []struct {
		name string
		a, b string
		same bool
	}{
		{name: "case", a: "Acme", b: "ACME", same: true},
		{name: "whitespace", a: "  Acme\t", b: "acme", same: true},
		{name: "accent composition", a: "Jose\u0301", b: "JOS\u00c9", same: true},
		{name: "full folding", a: "Straße", b: "STRASSE", same: true},
		{name: "different", a: "Acme", b: "Acme Corp", same: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.same, NameKey(tc.a) == NameKey(tc.b))
		})
	}
}

func TestNormalizeNameKeepsCase(t *testing.T) {
	assert.Equal(t, "São Paulo", NormalizeName("  São Paulo "))
}
