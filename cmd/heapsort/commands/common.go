// Package commands implements CLI command handlers for heapsort.
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/heapsort/pkg/config"
	"github.com/Sumatoshi-tech/heapsort/pkg/observability"
	"github.com/Sumatoshi-tech/heapsort/pkg/shuffle"
	"github.com/Sumatoshi-tech/heapsort/pkg/terminal"
	"github.com/Sumatoshi-tech/heapsort/pkg/version"
)

const flagConfig = "config"

// ErrNotSorted is returned when a sorted sequence fails the consecutive check.
var ErrNotSorted = errors.New("sequence is not sorted")

// flagBinding maps a config key to the command flag that overrides it.
type flagBinding struct {
	key  string
	flag string
}

// AddPersistentFlags registers the flags shared by every command.
func AddPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().String(flagConfig, "",
		"Config file (default: .heapsort.yaml in the working directory or $HOME)")
}

func loadConfig(cmd *cobra.Command, bindings ...flagBinding) (*config.Config, error) {
	path := ""
	if f := cmd.Flag(flagConfig); f != nil {
		path = f.Value.String()
	}

	opts := make([]config.Option, 0, len(bindings))
	for _, b := range bindings {
		opts = append(opts, config.WithFlag(b.key, cmd.Flags().Lookup(b.flag)))
	}

	return config.LoadConfig(path, opts...)
}

func initObservability(
	ctx context.Context, cfg *config.Config, mode observability.AppMode, logOut io.Writer,
) (observability.Providers, error) {
	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceName = cfg.Telemetry.ServiceName
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = mode
	obsCfg.LogLevel = observability.ParseLogLevel(cfg.Logging.Level)
	obsCfg.LogJSON = cfg.Logging.Format == config.LogFormatJSON
	obsCfg.LogOutput = logOut
	obsCfg.OTLPEndpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.OTLPInsecure = cfg.Telemetry.OTLPInsecure
	obsCfg.OTLPHeaders = observability.ParseOTLPHeaders(cfg.Telemetry.OTLPHeaders)

	return observability.Init(ctx, obsCfg)
}

func shutdownObservability(providers observability.Providers) {
	err := providers.Shutdown(context.Background())
	if err != nil {
		providers.Logger.Warn("observability shutdown failed", slog.Any("error", err))
	}
}

func terminalConfig(cfg *config.Config) terminal.Config {
	tc := terminal.NewConfig()
	tc.NoColor = tc.NoColor || cfg.Sort.NoColor
	tc.HighContrast = cfg.Sort.HighContrast

	return tc
}

// resolveSeed turns the "pick one for me" seed 0 into a fresh seed.
func resolveSeed(seed uint64) uint64 {
	if seed == 0 {
		return shuffle.RandomSeed()
	}

	return seed
}
