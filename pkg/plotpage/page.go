package plotpage

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/Sumatoshi-tech/heapsort/pkg/bench"
)

const pageTitle = "Heapsort benchmark"

// WorkChart plots mean swaps and sift-downs per length against n·log2(n).
func WorkChart(cOpts *ChartOpts, results []bench.Result) *charts.Line {
	labels := make([]string, len(results))
	swaps := make([]float64, len(results))
	sinks := make([]float64, len(results))
	reference := make([]float64, len(results))

	for i, r := range results {
		labels[i] = strconv.Itoa(r.Length)
		swaps[i] = r.Swaps.Mean
		sinks[i] = r.Sinks.Mean
		reference[i] = r.Reference
	}

	return BuildLineChart(cOpts, "Work per input length", labels, []LineSeries{
		{Name: "swaps", Data: swaps},
		{Name: "sift-downs", Data: sinks},
		{Name: "n·log2 n", Data: reference, Dashed: true},
	}, "n", "operations")
}

// TimeChart plots median and p95 sort durations per length in microseconds.
func TimeChart(cOpts *ChartOpts, results []bench.Result) *charts.Line {
	const micro = 1e6

	labels := make([]string, len(results))
	median := make([]float64, len(results))
	p95 := make([]float64, len(results))

	for i, r := range results {
		labels[i] = strconv.Itoa(r.Length)
		median[i] = r.Seconds.Median * micro
		p95[i] = r.Seconds.P95 * micro
	}

	return BuildLineChart(cOpts, "Sort duration", labels, []LineSeries{
		{Name: "median", Data: median},
		{Name: "p95", Data: p95, Dashed: true},
	}, "n", "µs")
}

// NewPage assembles the benchmark charts into one page.
func NewPage(results []bench.Result, theme Theme) *components.Page {
	cOpts := NewChartOpts(theme)

	page := components.NewPage()
	page.PageTitle = pageTitle
	page.AddCharts(WorkChart(cOpts, results), TimeChart(cOpts, results))

	return page
}

// Write renders the benchmark page as standalone HTML.
func Write(w io.Writer, results []bench.Result, theme Theme) error {
	err := NewPage(results, theme).Render(w)
	if err != nil {
		return fmt.Errorf("render benchmark page: %w", err)
	}

	return nil
}
