package plotpage

import (
	"errors"
	"fmt"
)

// Theme represents a color theme for charts.
type Theme string

const (
	// ThemeLight is the light color theme.
	ThemeLight Theme = "light"
	// ThemeDark is the dark color theme.
	ThemeDark Theme = "dark"
)

// ErrUnknownTheme is returned by ParseTheme for names other than light and dark.
var ErrUnknownTheme = errors.New("unknown theme")

// ParseTheme maps a theme name to a Theme.
func ParseTheme(name string) (Theme, error) {
	switch Theme(name) {
	case ThemeLight, ThemeDark:
		return Theme(name), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownTheme, name)
	}
}

// ThemeConfig holds the chart styling values of a theme.
type ThemeConfig struct {
	ChartBackground string
	ChartGrid       string
	ChartAxis       string
	ChartText       string
	ChartTextMuted  string

	// Series colors, in the order series are added.
	Series []string
}

// GetThemeConfig returns the configuration for a given theme. Unknown themes
// fall back to light.
func GetThemeConfig(theme Theme) ThemeConfig {
	if theme == ThemeDark {
		return darkTheme
	}

	return lightTheme
}

// SeriesColor returns the color for the i-th series, cycling the palette.
func (tc ThemeConfig) SeriesColor(i int) string {
	return tc.Series[i%len(tc.Series)]
}

var lightTheme = ThemeConfig{
	ChartBackground: "transparent",
	ChartGrid:       "#e7e5e4", // stone-200.
	ChartAxis:       "#a8a29e", // stone-400.
	ChartText:       "#44403c", // stone-700.
	ChartTextMuted:  "#78716c", // stone-500.
	Series: []string{
		"#a16207", // amber-700.
		"#0369a1", // sky-700.
		"#4d7c0f", // lime-700.
		"#be185d", // pink-700.
	},
}

var darkTheme = ThemeConfig{
	ChartBackground: "transparent",
	ChartGrid:       "#44403c", // stone-700.
	ChartAxis:       "#57534e", // stone-600.
	ChartText:       "#d6d3d1", // stone-300.
	ChartTextMuted:  "#a8a29e", // stone-400.
	Series: []string{
		"#fbbf24", // amber-400.
		"#38bdf8", // sky-400.
		"#a3e635", // lime-400.
		"#f472b6", // pink-400.
	},
}
