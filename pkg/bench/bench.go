// Package bench measures how much work heapsort does as the input grows.
//
// For every length in [Min, Max] stepping by Step it sorts Runs shuffled
// permutations of 0..n-1, tallies sift-downs and swaps through a counting
// sink, checks the result and reports per-length statistics.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/heapsort/pkg/heapsort"
	"github.com/Sumatoshi-tech/heapsort/pkg/observability"
	"github.com/Sumatoshi-tech/heapsort/pkg/shuffle"
)

// Sentinel errors.
var (
	ErrInvalidConfig = errors.New("invalid benchmark configuration")
	ErrNotSorted     = errors.New("sort produced an unsorted sequence")
)

// Config selects the lengths and repetitions to measure.
type Config struct {
	Min  int
	Max  int
	Step int
	Runs int

	// Seed drives every shuffle, so equal configs produce equal work counts.
	Seed uint64
}

// Validate reports whether c describes a non-empty sweep.
func (c Config) Validate() error {
	switch {
	case c.Min < 0:
		return fmt.Errorf("%w: min %d is negative", ErrInvalidConfig, c.Min)
	case c.Max < c.Min:
		return fmt.Errorf("%w: max %d is below min %d", ErrInvalidConfig, c.Max, c.Min)
	case c.Step <= 0:
		return fmt.Errorf("%w: step %d must be positive", ErrInvalidConfig, c.Step)
	case c.Runs <= 0:
		return fmt.Errorf("%w: runs %d must be positive", ErrInvalidConfig, c.Runs)
	}

	return nil
}

// Lengths returns every length the sweep visits.
func (c Config) Lengths() []int {
	var lengths []int

	for n := c.Min; n <= c.Max; n += c.Step {
		lengths = append(lengths, n)
	}

	return lengths
}

// Result is the measurement for one length.
type Result struct {
	Length    int     `json:"length" yaml:"length"`
	Runs      int     `json:"runs" yaml:"runs"`
	Swaps     Stat    `json:"swaps" yaml:"swaps"`
	Sinks     Stat    `json:"sinks" yaml:"sinks"`
	Seconds   Stat    `json:"seconds" yaml:"seconds"`
	Reference float64 `json:"reference" yaml:"reference"`
}

// SwapRatio is mean swaps divided by n·log2(n); zero when the reference is.
func (r Result) SwapRatio() float64 {
	if r.Reference == 0 {
		return 0
	}

	return r.Swaps.Mean / r.Reference
}

// Recorder receives every completed sort.
type Recorder interface {
	RecordSort(ctx context.Context, stats observability.SortStats)
}

type options struct {
	recorder Recorder
	tracer   trace.Tracer
	logger   *slog.Logger
	progress func(done, total int)
}

// Option configures Run.
type Option func(*options)

// WithRecorder reports each sort to rec.
func WithRecorder(rec Recorder) Option {
	return func(o *options) { o.recorder = rec }
}

// WithTracer opens one span per length.
func WithTracer(tr trace.Tracer) Option {
	return func(o *options) { o.tracer = tr }
}

// WithLogger logs one debug line per length.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithProgress calls fn after each length with the number of finished and
// total lengths.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) { o.progress = fn }
}

// Run executes the sweep. Cancellation is honored between sorts; the results
// gathered so far are returned together with the context error.
func Run(ctx context.Context, cfg Config, opts ...Option) ([]Result, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	o := options{
		tracer: nooptrace.NewTracerProvider().Tracer("bench"),
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(&o)
	}

	lengths := cfg.Lengths()
	results := make([]Result, 0, len(lengths))
	rng := shuffle.NewRand(cfg.Seed)

	for i, n := range lengths {
		lengthCtx := observability.ContextWithRun(ctx, observability.Run{Length: n, Seed: cfg.Seed})

		res, runErr := runLength(lengthCtx, n, cfg.Runs, &o, func(seq []int) { shuffle.Slice(seq, rng) })
		if runErr != nil {
			return results, runErr
		}

		results = append(results, res)

		o.logger.DebugContext(lengthCtx, "bench length done",
			"swaps_mean", res.Swaps.Mean, "sinks_mean", res.Sinks.Mean)

		if o.progress != nil {
			o.progress(i+1, len(lengths))
		}
	}

	return results, nil
}

func runLength(ctx context.Context, n, runs int, o *options, shuffleFn func([]int)) (Result, error) {
	ctx, span := o.tracer.Start(ctx, "heapsort.bench.length",
		trace.WithAttributes(attribute.Int("length", n), attribute.Int("runs", runs)))
	defer span.End()

	swaps := make([]float64, 0, runs)
	sinks := make([]float64, 0, runs)
	seconds := make([]float64, 0, runs)

	for range runs {
		if err := ctx.Err(); err != nil {
			span.SetStatus(codes.Error, err.Error())

			return Result{}, fmt.Errorf("bench length %d: %w", n, err)
		}

		seq := heapsort.Ints(n)
		shuffleFn(seq)

		counter := &heapsort.Counter{}
		start := time.Now()
		err := heapsort.Sort(seq, heapsort.Options{Trace: true, Sink: counter})
		elapsed := time.Since(start)

		if err == nil && !heapsort.IsConsecutive(seq) {
			err = fmt.Errorf("%w: length %d", ErrNotSorted, n)
		}

		if o.recorder != nil {
			o.recorder.RecordSort(ctx, observability.SortStats{
				Length: n, Swaps: counter.Swaps, Sinks: counter.Sinks, Duration: elapsed, Err: err,
			})
		}

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

			return Result{}, err
		}

		swaps = append(swaps, float64(counter.Swaps))
		sinks = append(sinks, float64(counter.Sinks))
		seconds = append(seconds, elapsed.Seconds())
	}

	return Result{
		Length:    n,
		Runs:      runs,
		Swaps:     Summarize(swaps),
		Sinks:     Summarize(sinks),
		Seconds:   Summarize(seconds),
		Reference: Reference(n),
	}, nil
}
