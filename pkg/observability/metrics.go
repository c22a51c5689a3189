package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricSortsTotal   = "heapsort.sorts.total"
	metricSwapsTotal   = "heapsort.swaps.total"
	metricSinksTotal   = "heapsort.sinks.total"
	metricSortDuration = "heapsort.sort.duration.seconds"

	attrLength = "length"
	attrStatus = "status"

	statusOK    = "ok"
	statusError = "error"
)

// durationBucketBoundaries covers 1µs to 10s; benchmark inputs range from a
// handful of values to a few million.
var durationBucketBoundaries = []float64{
	0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// SortMetrics holds the OTel instruments describing completed sorts.
type SortMetrics struct {
	sortsTotal   metric.Int64Counter
	swapsTotal   metric.Int64Counter
	sinksTotal   metric.Int64Counter
	sortDuration metric.Float64Histogram
}

// SortStats is one completed sort as seen by the metrics layer.
type SortStats struct {
	Length   int
	Swaps    int
	Sinks    int
	Duration time.Duration
	Err      error
}

// NewSortMetrics creates the sort instruments from the given meter.
func NewSortMetrics(mt metric.Meter) (*SortMetrics, error) {
	sorts, err := mt.Int64Counter(metricSortsTotal,
		metric.WithDescription("Total number of sorts run"),
		metric.WithUnit("{sort}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSortsTotal, err)
	}

	swaps, err := mt.Int64Counter(metricSwapsTotal,
		metric.WithDescription("Element exchanges performed by all sorts"),
		metric.WithUnit("{swap}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSwapsTotal, err)
	}

	sinks, err := mt.Int64Counter(metricSinksTotal,
		metric.WithDescription("Sift-down invocations performed by all sorts"),
		metric.WithUnit("{sink}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSinksTotal, err)
	}

	duration, err := mt.Float64Histogram(metricSortDuration,
		metric.WithDescription("Sort duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSortDuration, err)
	}

	return &SortMetrics{
		sortsTotal:   sorts,
		swapsTotal:   swaps,
		sinksTotal:   sinks,
		sortDuration: duration,
	}, nil
}

// RecordSort records one completed sort. Operation counts are only added for
// successful sorts.
func (sm *SortMetrics) RecordSort(ctx context.Context, stats SortStats) {
	status := statusOK
	if stats.Err != nil {
		status = statusError
	}

	sm.sortsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrStatus, status)))

	if stats.Err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.Int(attrLength, stats.Length))

	sm.swapsTotal.Add(ctx, int64(stats.Swaps), attrs)
	sm.sinksTotal.Add(ctx, int64(stats.Sinks), attrs)
	sm.sortDuration.Record(ctx, stats.Duration.Seconds(), attrs)
}
