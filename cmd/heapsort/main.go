// Package main provides the entry point for the heapsort CLI tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapsort/cmd/heapsort/commands"
	"github.com/Sumatoshi-tech/heapsort/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "heapsort",
		Short: "Heapsort - watch a binary max-heap sort an array",
		Long: `Heapsort shuffles 0..N-1, sorts it in place with a binary max-heap and
verifies the result.

Commands:
  sort      Sort a shuffled array, optionally printing every heap step
  trace     Capture the event stream of a sort as JSON or YAML
  bench     Count swaps and sift-downs across input lengths`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	commands.AddPersistentFlags(rootCmd)

	rootCmd.AddCommand(commands.NewSortCommand())
	rootCmd.AddCommand(commands.NewTraceCommand())
	rootCmd.AddCommand(commands.NewBenchCommand())
	rootCmd.AddCommand(versionCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "heapsort %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
