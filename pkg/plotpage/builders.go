// Package plotpage renders benchmark results as interactive HTML charts.
package plotpage

import (
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineSeries defines the properties and data for a single line chart series.
type LineSeries struct {
	Name   string
	Data   []float64
	Color  string // Optional, uses the theme palette if empty.
	Dashed bool
}

// BuildLineChart constructs a themed go-echarts Line chart.
// If cOpts is nil, DefaultChartOpts() is used.
func BuildLineChart(cOpts *ChartOpts, title string, labels []string, series []LineSeries, xAxisLabel, yAxisLabel string) *charts.Line {
	if cOpts == nil {
		cOpts = DefaultChartOpts()
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(cOpts.Init("100%", "500px")),
		charts.WithTitleOpts(cOpts.Title(title, "")),
		charts.WithTooltipOpts(cOpts.Tooltip("axis")),
		charts.WithDataZoomOpts(cOpts.DataZoom()...),
		charts.WithGridOpts(cOpts.Grid()),
		charts.WithXAxisOpts(cOpts.XAxis(xAxisLabel)),
		charts.WithYAxisOpts(cOpts.YAxis(yAxisLabel)),
		charts.WithLegendOpts(cOpts.Legend()),
	)

	line.SetXAxis(labels)

	for i, s := range series {
		lineData := make([]opts.LineData, len(s.Data))
		for j, v := range s.Data {
			lineData[j] = opts.LineData{Value: v}
		}

		color := s.Color
		if color == "" {
			color = cOpts.SeriesColor(i)
		}

		style := opts.LineStyle{Color: color}
		if s.Dashed {
			style.Type = "dashed"
		}

		line.AddSeries(s.Name, lineData,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: color}),
			charts.WithLineStyleOpts(style),
		)
	}

	return line
}
