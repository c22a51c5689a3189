package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapsort/pkg/bench"
	"github.com/Sumatoshi-tech/heapsort/pkg/config"
	"github.com/Sumatoshi-tech/heapsort/pkg/observability"
	"github.com/Sumatoshi-tech/heapsort/pkg/plotpage"
)

var benchBindings = []flagBinding{
	{key: "bench.min", flag: "min"},
	{key: "bench.max", flag: "max"},
	{key: "bench.step", flag: "step"},
	{key: "bench.runs", flag: "runs"},
	{key: "bench.seed", flag: "seed"},
	{key: "bench.theme", flag: "theme"},
}

// BenchCommand holds the bench command's output targets.
type BenchCommand struct {
	plotPath    string
	metricsPath string
	quiet       bool
}

// NewBenchCommand creates the bench command.
func NewBenchCommand() *cobra.Command {
	bc := &BenchCommand{}

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Count swaps and sift-downs across input lengths",
		Long: `Sort shuffled inputs of every length from --min to --max in steps of --step,
--runs times each, and print mean swap and sift-down counts next to n·log2 n
together with median and p95 durations.

--plot writes an HTML page with the same numbers as line charts;
--metrics-file writes the collected sort metrics in Prometheus text format.`,
		Args: cobra.NoArgs,
		RunE: bc.run,
	}

	cmd.Flags().Int("min", config.DefaultBenchMin, "Smallest input length")
	cmd.Flags().Int("max", config.DefaultBenchMax, "Largest input length")
	cmd.Flags().Int("step", config.DefaultBenchStep, "Length increment")
	cmd.Flags().Int("runs", config.DefaultBenchRuns, "Sorts per length")
	cmd.Flags().Uint64("seed", config.DefaultBenchSeed, "Shuffle seed")
	cmd.Flags().String("theme", config.DefaultBenchTheme, "Chart theme: light, dark")
	cmd.Flags().StringVar(&bc.plotPath, "plot", "", "Write an HTML chart page to this file")
	cmd.Flags().StringVar(&bc.metricsPath, "metrics-file", "", "Write Prometheus text metrics to this file")
	cmd.Flags().BoolVarP(&bc.quiet, "quiet", "q", false, "Do not report progress on stderr")

	return cmd
}

func (bc *BenchCommand) run(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, benchBindings...)
	if err != nil {
		return err
	}

	theme, err := plotpage.ParseTheme(cfg.Bench.Theme)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	providers, err := initObservability(ctx, cfg, observability.ModeBench, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer shutdownObservability(providers)

	metrics, err := observability.NewSortMetrics(providers.Meter)
	if err != nil {
		return err
	}

	opts := []bench.Option{
		bench.WithRecorder(metrics),
		bench.WithTracer(providers.Tracer),
		bench.WithLogger(providers.Logger),
	}

	if !bc.quiet {
		progress := cmd.ErrOrStderr()
		opts = append(opts, bench.WithProgress(func(done, total int) {
			fmt.Fprintf(progress, "\rbench: %d/%d lengths", done, total)

			if done == total {
				fmt.Fprintln(progress)
			}
		}))
	}

	results, err := bench.Run(ctx, bench.Config{
		Min:  cfg.Bench.Min,
		Max:  cfg.Bench.Max,
		Step: cfg.Bench.Step,
		Runs: cfg.Bench.Runs,
		Seed: cfg.Bench.Seed,
	}, opts...)
	if err != nil {
		return err
	}

	err = bench.WriteTable(cmd.OutOrStdout(), results)
	if err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	if bc.plotPath != "" {
		err = writePlot(bc.plotPath, results, theme)
		if err != nil {
			return err
		}

		providers.Logger.InfoContext(ctx, "plot written", slog.String("path", bc.plotPath))
	}

	if bc.metricsPath != "" {
		err = observability.WriteTextfile(bc.metricsPath, providers.Registry)
		if err != nil {
			return err
		}

		providers.Logger.InfoContext(ctx, "metrics written", slog.String("path", bc.metricsPath))
	}

	return nil
}

func writePlot(path string, results []bench.Result, theme plotpage.Theme) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}

	writeErr := plotpage.Write(f, results, theme)
	closeErr := f.Close()

	return errors.Join(writeErr, closeErr)
}
