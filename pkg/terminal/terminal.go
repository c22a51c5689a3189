// Package terminal holds the shared console settings and drawing helpers
// used when printing heaps and run summaries.
package terminal

import (
	"os"
	"strconv"
)

// Width limits.
const (
	DefaultWidth = 80
	MinWidth     = 40
	MaxWidth     = 160
)

// Config holds console rendering settings.
type Config struct {
	Width        int
	NoColor      bool
	HighContrast bool
	ForceColor   bool
}

// NewConfig creates a Config from the environment: COLUMNS for the width and
// NO_COLOR to disable color.
func NewConfig() Config {
	return Config{
		Width:   DetectWidth(),
		NoColor: os.Getenv("NO_COLOR") != "",
	}
}

// DetectWidth returns the width from COLUMNS clamped to [MinWidth, MaxWidth],
// or DefaultWidth when unset or invalid.
func DetectWidth() int {
	columns := os.Getenv("COLUMNS")
	if columns == "" {
		return DefaultWidth
	}

	width, err := strconv.Atoi(columns)
	if err != nil || width <= 0 {
		return DefaultWidth
	}

	return min(max(width, MinWidth), MaxWidth)
}
