package bench

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Table renders results as one row per length.
func Table(results []Result) string {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Header = text.FormatDefault

	tbl.AppendHeader(table.Row{"n", "Runs", "Swaps", "Sift-downs", "n·log2 n", "Swaps/ref", "Median", "p95"})

	for _, r := range results {
		tbl.AppendRow(table.Row{
			humanize.Comma(int64(r.Length)),
			strconv.Itoa(r.Runs),
			humanize.CommafWithDigits(r.Swaps.Mean, 1),
			humanize.CommafWithDigits(r.Sinks.Mean, 1),
			humanize.CommafWithDigits(r.Reference, 1),
			fmt.Sprintf("%.3f", r.SwapRatio()),
			seconds(r.Seconds.Median),
			seconds(r.Seconds.P95),
		})
	}

	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	return tbl.Render()
}

// WriteTable writes the results table followed by a newline.
func WriteTable(w io.Writer, results []Result) error {
	_, err := io.WriteString(w, Table(results)+"\n")
	if err != nil {
		return fmt.Errorf("write bench table: %w", err)
	}

	return nil
}

func seconds(s float64) string {
	return time.Duration(s * float64(time.Second)).Round(time.Microsecond).String()
}
