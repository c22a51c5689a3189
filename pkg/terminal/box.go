package terminal

import (
	"strings"
	"unicode/utf8"
)

// Box drawing characters.
const (
	BoxHorizontal       = "─"
	BoxHeavyHorizontal  = "━"
	BoxHeavyVertical    = "┃"
	BoxHeavyTopLeft     = "┏"
	BoxHeavyTopRight    = "┓"
	BoxHeavyBottomLeft  = "┗"
	BoxHeavyBottomRight = "┛"
)

// headerPadding is the space between the header border and its content.
const headerPadding = 1

// DrawSeparator draws a thin horizontal line.
func DrawSeparator(width int) string {
	if width <= 0 {
		return ""
	}

	return strings.Repeat(BoxHorizontal, width)
}

// DrawHeader draws a heavy-bordered section header with title on the left
// and rightText on the right. The box grows to fit its content.
//
//	┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
//	┃ TITLE             rightText ┃
//	┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
func DrawHeader(title, rightText string, width int) string {
	titleLen := utf8.RuneCountInString(title)
	rightLen := utf8.RuneCountInString(rightText)

	minRequired := titleLen + rightLen + 2 + 2*headerPadding + 1
	width = max(width, minRequired)

	inner := width - 2
	gap := inner - 2*headerPadding - titleLen - rightLen

	var sb strings.Builder

	sb.WriteString(BoxHeavyTopLeft + strings.Repeat(BoxHeavyHorizontal, inner) + BoxHeavyTopRight + "\n")
	sb.WriteString(BoxHeavyVertical + Spaces(headerPadding) + title + Spaces(gap) + rightText +
		Spaces(headerPadding) + BoxHeavyVertical + "\n")
	sb.WriteString(BoxHeavyBottomLeft + strings.Repeat(BoxHeavyHorizontal, inner) + BoxHeavyBottomRight)

	return sb.String()
}
