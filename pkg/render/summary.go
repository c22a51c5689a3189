package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/Sumatoshi-tech/heapsort/pkg/terminal"
)

// Summary describes one finished sort.
type Summary struct {
	Length      int
	Seed        uint64
	Sinks       int
	Swaps       int
	Duration    time.Duration
	HeapOrdered bool
	Sorted      bool
}

// SummaryTable renders s as a two-column table.
func SummaryTable(s Summary, palette terminal.Palette) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Header = text.FormatDefault

	tbl.AppendHeader(table.Row{"Metric", "Value"})
	tbl.AppendRows([]table.Row{
		{"Length", humanize.Comma(int64(s.Length))},
		{"Seed", strconv.FormatUint(s.Seed, 10)},
		{"Sift-downs", humanize.Comma(int64(s.Sinks))},
		{"Swaps", humanize.Comma(int64(s.Swaps))},
		{"Duration", s.Duration.String()},
		{"Heap-ordered", palette.Verdict(s.HeapOrdered)},
		{"Sorted", palette.Verdict(s.Sorted)},
	})

	return tbl.Render()
}

// WriteSummary writes the summary table followed by a newline.
func WriteSummary(w io.Writer, s Summary, palette terminal.Palette) error {
	_, err := io.WriteString(w, SummaryTable(s, palette)+"\n")
	if err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	return nil
}
