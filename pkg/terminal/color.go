package terminal

import "github.com/fatih/color"

// Role names what a piece of console text stands for, so callers ask for
// a meaning and the palette picks the look.
type Role int

// Roles.
const (
	RoleNone Role = iota
	RoleSink
	RoleSwap
	RoleSorted
	RolePass
	RoleFail
	RoleMuted
)

// Palette maps roles to colors.
type Palette struct {
	colors map[Role]*color.Color
}

func standardColors() map[Role]*color.Color {
	return map[Role]*color.Color{
		RoleSink:   color.New(color.FgYellow),
		RoleSwap:   color.New(color.FgRed, color.Bold),
		RoleSorted: color.New(color.FgGreen),
		RolePass:   color.New(color.FgGreen, color.Bold),
		RoleFail:   color.New(color.FgRed, color.Bold),
		RoleMuted:  color.New(color.FgHiBlack),
	}
}

// highContrastColors uses backgrounds instead of foregrounds so highlighted
// cells stay readable on any terminal theme.
func highContrastColors() map[Role]*color.Color {
	return map[Role]*color.Color{
		RoleSink:   color.New(color.BgYellow, color.FgBlack),
		RoleSwap:   color.New(color.BgRed, color.FgHiWhite, color.Bold),
		RoleSorted: color.New(color.BgGreen, color.FgBlack),
		RolePass:   color.New(color.BgGreen, color.FgBlack, color.Bold),
		RoleFail:   color.New(color.BgRed, color.FgHiWhite, color.Bold),
		RoleMuted:  color.New(color.FgWhite),
	}
}

// Palette builds the palette for c. With NoColor every role renders as
// plain text; with ForceColor escapes are emitted even when stdout is not
// a terminal.
func (c Config) Palette() Palette {
	colors := standardColors()
	if c.HighContrast {
		colors = highContrastColors()
	}

	for _, col := range colors {
		switch {
		case c.NoColor:
			col.DisableColor()
		case c.ForceColor:
			col.EnableColor()
		}
	}

	return Palette{colors: colors}
}

// Paint renders text in the color for role. RoleNone and unknown roles
// return text unchanged.
func (p Palette) Paint(text string, role Role) string {
	col, ok := p.colors[role]
	if !ok {
		return text
	}

	return col.Sprint(text)
}

// Verdict paints "true" as a pass and anything else as a failure.
func (p Palette) Verdict(ok bool) string {
	if ok {
		return p.Paint("true", RolePass)
	}

	return p.Paint("false", RoleFail)
}
