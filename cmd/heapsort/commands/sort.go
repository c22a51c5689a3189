package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/heapsort/pkg/config"
	"github.com/Sumatoshi-tech/heapsort/pkg/heap"
	"github.com/Sumatoshi-tech/heapsort/pkg/heapsort"
	"github.com/Sumatoshi-tech/heapsort/pkg/observability"
	"github.com/Sumatoshi-tech/heapsort/pkg/render"
	"github.com/Sumatoshi-tech/heapsort/pkg/shuffle"
	"github.com/Sumatoshi-tech/heapsort/pkg/terminal"
)

var sortBindings = []flagBinding{
	{key: "sort.length", flag: "length"},
	{key: "sort.seed", flag: "seed"},
	{key: "sort.verbose", flag: "verbose"},
	{key: "sort.high_contrast", flag: "high-contrast"},
	{key: "sort.no_color", flag: "no-color"},
}

// SortCommand holds the options of the sort command that are not part of
// the layered configuration.
type SortCommand struct {
	summary bool
}

// NewSortCommand creates the sort command.
func NewSortCommand() *cobra.Command {
	sc := &SortCommand{}

	cmd := &cobra.Command{
		Use:   "sort",
		Short: "Shuffle 0..N-1, heapsort it and verify the result",
		Long: `Shuffle the values 0..N-1, sort them in place with heapsort and check that
every value ends up exactly one above its predecessor.

With --verbose the heap is drawn after every sift-down, touched cells are
highlighted and each extracted maximum is announced. The command exits with
status 1 when the result fails the check.`,
		Args: cobra.NoArgs,
		RunE: sc.run,
	}

	cmd.Flags().IntP("length", "n", config.DefaultSortLength, "Number of values to sort")
	cmd.Flags().Uint64("seed", config.DefaultSortSeed, "Shuffle seed (0 = random)")
	cmd.Flags().BoolP("verbose", "v", config.DefaultSortVerbose, "Draw the heap after every sift-down")
	cmd.Flags().Bool("high-contrast", config.DefaultSortHighContrast, "Highlight with background colors")
	cmd.Flags().Bool("no-color", config.DefaultSortNoColor, "Disable colored output")
	cmd.Flags().BoolVar(&sc.summary, "summary", false, "Print a summary table after the run")

	return cmd
}

func (sc *SortCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, sortBindings...)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	providers, err := initObservability(ctx, cfg, observability.ModeSort, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer shutdownObservability(providers)

	metrics, err := observability.NewSortMetrics(providers.Meter)
	if err != nil {
		return err
	}

	seed := resolveSeed(cfg.Sort.Seed)
	seq := shuffle.Permutation(cfg.Sort.Length, seed)
	out := cmd.OutOrStdout()
	term := terminalConfig(cfg)
	palette := term.Palette()

	ctx = observability.ContextWithRun(ctx, observability.Run{Length: len(seq), Seed: seed})

	ctx, span := providers.Tracer.Start(ctx, "heapsort.sort", trace.WithAttributes(
		attribute.Int("length", len(seq)),
		attribute.String("seed", strconv.FormatUint(seed, 10)),
	))
	defer span.End()

	providers.Logger.DebugContext(ctx, "sorting")

	counter := &heapsort.Counter{}
	heapOrdered := true
	verdict := heapsort.SinkFunc(func(ev heapsort.Event) {
		if ev.Kind == heapsort.KindHeapBuilt {
			heapOrdered = heap.IsHeapOrdered(seq, ev.HeapSize)
		}
	})

	var printer *render.Printer[int]

	sink := heapsort.Tee(counter, verdict)

	if cfg.Sort.Verbose {
		header := terminal.DrawHeader("HEAPSORT", fmt.Sprintf("n=%d seed=%d", len(seq), seed), term.Width)

		err = writeLine(out, header+"\n\n"+render.Tree(seq, render.Options{HeapSize: len(seq), Palette: palette})+"\n")
		if err != nil {
			return err
		}

		printer = render.NewPrinter(out, seq, term)
		sink = heapsort.Tee(counter, verdict, printer)
	}

	start := time.Now()
	err = heapsort.Sort(seq, heapsort.Options{Trace: true, Sink: sink})
	elapsed := time.Since(start)

	metrics.RecordSort(ctx, observability.SortStats{
		Length: len(seq), Swaps: counter.Swaps, Sinks: counter.Sinks, Duration: elapsed, Err: err,
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return fmt.Errorf("sort: %w", err)
	}

	if printer != nil {
		err = printer.Flush()
		if err != nil {
			return err
		}

		err = writeLine(out, terminal.DrawSeparator(term.Width))
		if err != nil {
			return err
		}
	} else {
		err = writeLine(out, "ARRAY IS HEAP-ORDERED: "+palette.Verdict(heapOrdered))
		if err != nil {
			return err
		}
	}

	sorted := heapsort.IsConsecutive(seq)

	providers.Logger.DebugContext(ctx, "sorted",
		slog.Int("swaps", counter.Swaps),
		slog.Int("sinks", counter.Sinks),
		slog.Duration("duration", elapsed),
		slog.Bool("sorted", sorted),
	)

	err = sc.report(out, palette, seq, render.Summary{
		Length:      len(seq),
		Seed:        seed,
		Sinks:       counter.Sinks,
		Swaps:       counter.Swaps,
		Duration:    elapsed,
		HeapOrdered: heapOrdered,
		Sorted:      sorted,
	})
	if err != nil {
		return err
	}

	if !sorted {
		span.SetStatus(codes.Error, ErrNotSorted.Error())

		return fmt.Errorf("%w: %d values", ErrNotSorted, len(seq))
	}

	return nil
}

func (sc *SortCommand) report(w io.Writer, palette terminal.Palette, seq []int, s render.Summary) error {
	lines := []string{
		render.List(seq, render.Options{Palette: palette}),
		fmt.Sprintf("SORTED %d values: %s", s.Length, palette.Paint(s.Duration.String(), terminal.RoleMuted)),
		"isSorted: " + palette.Verdict(s.Sorted),
	}

	for _, line := range lines {
		err := writeLine(w, line)
		if err != nil {
			return err
		}
	}

	if !sc.summary {
		return nil
	}

	return render.WriteSummary(w, s, palette)
}

func writeLine(w io.Writer, line string) error {
	_, err := io.WriteString(w, line+"\n")
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
