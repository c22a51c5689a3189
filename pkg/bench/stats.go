package bench

import (
	"math"
	"slices"

	"github.com/Sumatoshi-tech/heapsort/pkg/heapsort"
)

// Percentile thresholds reported per length.
const (
	percentileMedian = 0.5
	percentileP95    = 0.95
)

// Stat summarizes one measurement across the runs of a length.
// StdDev is the population standard deviation.
type Stat struct {
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Median float64 `json:"median" yaml:"median"`
	P95    float64 `json:"p95" yaml:"p95"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Summarize computes a Stat over values. Returns the zero Stat for no values.
func Summarize(values []float64) Stat {
	if len(values) == 0 {
		return Stat{}
	}

	// Samples are ordered with the package's own sort; they never hold NaN.
	sorted := slices.Clone(values)

	err := heapsort.Sort(sorted, heapsort.Options{})
	if err != nil {
		return Stat{}
	}

	mean, stddev := meanStdDev(sorted)

	return Stat{
		Mean:   mean,
		StdDev: stddev,
		Median: percentile(sorted, percentileMedian),
		P95:    percentile(sorted, percentileP95),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
	}
}

func meanStdDev(values []float64) (mean, stddev float64) {
	var sum float64

	for _, v := range values {
		sum += v
	}

	mean = sum / float64(len(values))

	var sumSq float64

	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}

	return mean, math.Sqrt(sumSq / float64(len(values)))
}

// percentile interpolates linearly between the closest ranks of the already
// sorted values.
func percentile(sorted []float64, p float64) float64 {
	idx := p * float64(len(sorted)-1)
	lower := int(math.Floor(idx))
	upper := int(math.Ceil(idx))

	if lower == upper {
		return sorted[lower]
	}

	frac := idx - float64(lower)

	return sorted[lower]*(1-frac) + sorted[upper]*frac
}

// Reference returns n·log2(n), the comparison-count yardstick that heapsort
// swaps are plotted against. Zero for n < 2.
func Reference(n int) float64 {
	if n < 2 {
		return 0
	}

	return float64(n) * math.Log2(float64(n))
}
