// Package render draws heap snapshots and sort traces for the console.
//
// Nothing in this package writes to the slices it is handed.
package render

import (
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/heapsort/pkg/terminal"
)

// minCellWidth keeps single-digit values centred the same way as two-digit ones.
const minCellWidth = 2

// Marks assigns a highlight role to individual indices.
type Marks map[int]terminal.Role

// Options controls how a snapshot is drawn.
type Options struct {
	// HeapSize splits the snapshot: cells at or beyond it are the sorted tail.
	HeapSize int

	// Marks overrides the role of specific cells.
	Marks Marks

	// Palette paints highlighted cells. The zero Palette paints nothing.
	Palette terminal.Palette
}

func (o Options) role(i int) terminal.Role {
	if role, ok := o.Marks[i]; ok {
		return role
	}

	if i >= o.HeapSize {
		return terminal.RoleSorted
	}

	return terminal.RoleNone
}

func cells[T any](seq []T, opts Options) ([]string, int) {
	texts := make([]string, len(seq))
	width := minCellWidth

	for i, v := range seq {
		texts[i] = fmt.Sprint(v)
		width = max(width, len(texts[i]))
	}

	for i, text := range texts {
		texts[i] = opts.Palette.Paint(terminal.PadLeft(text, width), opts.role(i))
	}

	return texts, width
}

// Layers returns how many tree levels a heap of n elements spans.
func Layers(n int) int {
	layers := 0

	for 1<<layers <= n {
		layers++
	}

	return layers
}

// Tree draws seq as a binary tree, one line per level, each node centred
// above its children.
func Tree[T any](seq []T, opts Options) string {
	if len(seq) == 0 {
		return ""
	}

	texts, width := cells(seq, opts)
	layers := Layers(len(seq))
	lines := make([]string, 0, layers)

	for level := range layers {
		start := 1<<level - 1
		end := min(1<<(level+1)-1, len(seq))
		margin := terminal.Spaces(width * (1<<(layers-level-1) - 1))

		row := make([]string, 0, end-start)
		for _, text := range texts[start:end] {
			row = append(row, margin+text+margin)
		}

		lines = append(lines, strings.TrimRight(strings.Join(row, terminal.Spaces(width)), " "))
	}

	return strings.Join(lines, "\n")
}

// List draws seq on a single line separated by spaces.
func List[T any](seq []T, opts Options) string {
	texts := make([]string, len(seq))

	for i, v := range seq {
		texts[i] = opts.Palette.Paint(fmt.Sprint(v), opts.role(i))
	}

	return strings.Join(texts, " ")
}
