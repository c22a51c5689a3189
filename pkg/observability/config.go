package observability

import (
	"io"
	"log/slog"
)

// AppMode names the command a process was started for.
type AppMode string

// Application modes.
const (
	ModeSort  AppMode = "sort"
	ModeTrace AppMode = "trace"
	ModeBench AppMode = "bench"
)

const defaultShutdownTimeoutSec = 5

// Config controls logging, tracing and metrics setup.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Mode           AppMode

	LogLevel slog.Level
	LogJSON  bool

	// LogOutput receives log records; nil means stderr.
	LogOutput io.Writer

	// OTLPEndpoint enables OTLP/gRPC export of spans and metrics.
	// Empty keeps tracing no-op and metrics local.
	OTLPEndpoint string
	OTLPInsecure bool
	OTLPHeaders  map[string]string

	ShutdownTimeoutSec int
}

// DefaultConfig returns a Config that logs text at info level and exports nothing.
func DefaultConfig() Config {
	return Config{
		ServiceName:        "heapsort",
		Mode:               ModeSort,
		LogLevel:           slog.LevelInfo,
		ShutdownTimeoutSec: defaultShutdownTimeoutSec,
	}
}
