package commands

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Sumatoshi-tech/heapsort/pkg/config"
	"github.com/Sumatoshi-tech/heapsort/pkg/observability"
	"github.com/Sumatoshi-tech/heapsort/pkg/shuffle"
	"github.com/Sumatoshi-tech/heapsort/pkg/tracefile"
)

var traceBindings = []flagBinding{
	{key: "sort.length", flag: "length"},
	{key: "sort.seed", flag: "seed"},
	{key: "trace.format", flag: "format"},
}

// TraceCommand holds the trace command's output target.
type TraceCommand struct {
	output string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand() *cobra.Command {
	tc := &TraceCommand{}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Capture the event stream of a sort",
		Long: `Sort a shuffled 0..N-1 with tracing on and write the input, the result and
every sink_start, swap, heap_built and extraction_step event.

Without --output the document goes to stdout. With --output the format is
taken from the file extension (.json, .yaml, .yml) when present, and a
trailing .lz4 compresses the file.`,
		Args: cobra.NoArgs,
		RunE: tc.run,
	}

	cmd.Flags().IntP("length", "n", config.DefaultSortLength, "Number of values to sort")
	cmd.Flags().Uint64("seed", config.DefaultSortSeed, "Shuffle seed (0 = random)")
	cmd.Flags().String("format", config.DefaultTraceFormat, "Output format: json, yaml")
	cmd.Flags().StringVarP(&tc.output, "output", "o", "", "Write the trace to this file instead of stdout")

	return cmd
}

func (tc *TraceCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, traceBindings...)
	if err != nil {
		return err
	}

	format, err := tracefile.ParseFormat(cfg.Trace.Format)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	providers, err := initObservability(ctx, cfg, observability.ModeTrace, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer shutdownObservability(providers)

	seed := resolveSeed(cfg.Sort.Seed)
	ctx = observability.ContextWithRun(ctx, observability.Run{Length: cfg.Sort.Length, Seed: seed})

	ctx, span := providers.Tracer.Start(ctx, "heapsort.trace", trace.WithAttributes(
		attribute.Int("length", cfg.Sort.Length),
		attribute.String("seed", strconv.FormatUint(seed, 10)),
	))
	defer span.End()

	tr, err := tracefile.Record(shuffle.Permutation(cfg.Sort.Length, seed), seed)
	if err != nil {
		return err
	}

	if tc.output == "" {
		return tracefile.Encode(cmd.OutOrStdout(), tr, format, false)
	}

	size, err := tracefile.WriteFile(tc.output, tr, format)
	if err != nil {
		return err
	}

	providers.Logger.InfoContext(ctx, "trace written",
		slog.String("path", tc.output),
		slog.Int("events", len(tr.Events)),
		slog.Int64("bytes", size),
	)

	_, err = fmt.Fprintf(cmd.ErrOrStderr(), "wrote %d events to %s (%s)\n",
		len(tr.Events), tc.output, humanize.Bytes(uint64(size))) //nolint:gosec // file sizes are never negative.
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
