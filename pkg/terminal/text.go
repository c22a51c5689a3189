package terminal

import (
	"strings"
	"unicode/utf8"
)

// PadLeft pads s with spaces on the left to reach width runes.
func PadLeft(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}

	return strings.Repeat(" ", width-n) + s
}

// Spaces returns n spaces, or "" for n <= 0.
func Spaces(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat(" ", n)
}
