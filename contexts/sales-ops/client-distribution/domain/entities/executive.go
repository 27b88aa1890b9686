package entities

import "time"

// DefaultPalette is cycled by executive count when a new executive is
// created without an explicit color.
var DefaultPalette = []string{
	"#3B82F6",
	"#10B981",
	"#F59E0B",
	"#EF4444",
	"#8B5CF6",
	"#EC4899",
	"#06B6D4",
	"#84CC16",
}

const FallbackColor = "#3B82F6"

type Executive struct {
	ID        int64
	Name      string
	Color     string
	CreatedAt time.Time
}

// PaletteColor returns the palette entry for the n-th executive (zero based).
func PaletteColor(n int) string {
	if n < 0 || len(DefaultPalette) == 0 {
		return FallbackColor
	}
	return DefaultPalette[n%len(DefaultPalette)]
}
