// Package config provides layered configuration loading for the heapsort
// commands: built-in defaults, an optional YAML file, HEAPSORT_* environment
// variables and finally command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidLength = errors.New("sort length must not be negative")
	ErrInvalidRange  = errors.New("invalid bench range")
	ErrInvalidRuns   = errors.New("bench runs must be positive")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidTheme  = errors.New("invalid chart theme")
)

// Accepted format and theme names.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	LogFormatText = "text"
	LogFormatJSON = "json"

	ThemeLight = "light"
	ThemeDark  = "dark"
)

const envPrefix = "HEAPSORT"

// Config holds all configuration for the heapsort commands.
type Config struct {
	Sort      SortConfig      `mapstructure:"sort"`
	Trace     TraceConfig     `mapstructure:"trace"`
	Bench     BenchConfig     `mapstructure:"bench"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// SortConfig configures the sort and trace commands' input and display.
type SortConfig struct {
	Length int `mapstructure:"length"`

	// Seed 0 means pick a fresh seed per run.
	Seed         uint64 `mapstructure:"seed"`
	Verbose      bool   `mapstructure:"verbose"`
	HighContrast bool   `mapstructure:"high_contrast"`
	NoColor      bool   `mapstructure:"no_color"`
}

// TraceConfig configures trace file output.
type TraceConfig struct {
	Format string `mapstructure:"format"`
}

// BenchConfig configures the benchmark sweep.
type BenchConfig struct {
	Min   int    `mapstructure:"min"`
	Max   int    `mapstructure:"max"`
	Step  int    `mapstructure:"step"`
	Runs  int    `mapstructure:"runs"`
	Seed  uint64 `mapstructure:"seed"`
	Theme string `mapstructure:"theme"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	ServiceName  string `mapstructure:"service_name"`
	Environment  string `mapstructure:"environment"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	OTLPHeaders  string `mapstructure:"otlp_headers"`
}

type loadOptions struct {
	flags map[string]*pflag.Flag
}

// Option configures LoadConfig.
type Option func(*loadOptions)

// WithFlag binds a command-line flag to key. A flag the user set overrides
// every other source.
func WithFlag(key string, flag *pflag.Flag) Option {
	return func(o *loadOptions) {
		if flag != nil {
			o.flags[key] = flag
		}
	}
}

// LoadConfig loads configuration from file, environment variables and bound
// flags. An empty configPath searches for .heapsort.yaml in the working
// directory and $HOME and tolerates its absence; an explicit path must exist.
func LoadConfig(configPath string, opts ...Option) (*Config, error) {
	lo := loadOptions{flags: make(map[string]*pflag.Flag)}
	for _, opt := range opts {
		opt(&lo)
	}

	viperCfg := viper.New()

	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".heapsort")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for key, flag := range lo.flags {
		bindErr := viperCfg.BindPFlag(key, flag)
		if bindErr != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag.Name, bindErr)
		}
	}

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when no file, environment or flag
// overrides anything.
func Default() *Config {
	return &Config{
		Sort: SortConfig{
			Length:       DefaultSortLength,
			Seed:         DefaultSortSeed,
			Verbose:      DefaultSortVerbose,
			HighContrast: DefaultSortHighContrast,
			NoColor:      DefaultSortNoColor,
		},
		Trace: TraceConfig{Format: DefaultTraceFormat},
		Bench: BenchConfig{
			Min:   DefaultBenchMin,
			Max:   DefaultBenchMax,
			Step:  DefaultBenchStep,
			Runs:  DefaultBenchRuns,
			Seed:  DefaultBenchSeed,
			Theme: DefaultBenchTheme,
		},
		Logging: LoggingConfig{Level: DefaultLoggingLevel, Format: DefaultLoggingFormat},
		Telemetry: TelemetryConfig{
			ServiceName:  DefaultTelemetryServiceName,
			OTLPInsecure: DefaultTelemetryOTLPInsecure,
		},
	}
}

func setDefaults(viperCfg *viper.Viper) {
	def := Default()

	viperCfg.SetDefault("sort.length", def.Sort.Length)
	viperCfg.SetDefault("sort.seed", def.Sort.Seed)
	viperCfg.SetDefault("sort.verbose", def.Sort.Verbose)
	viperCfg.SetDefault("sort.high_contrast", def.Sort.HighContrast)
	viperCfg.SetDefault("sort.no_color", def.Sort.NoColor)

	viperCfg.SetDefault("trace.format", def.Trace.Format)

	viperCfg.SetDefault("bench.min", def.Bench.Min)
	viperCfg.SetDefault("bench.max", def.Bench.Max)
	viperCfg.SetDefault("bench.step", def.Bench.Step)
	viperCfg.SetDefault("bench.runs", def.Bench.Runs)
	viperCfg.SetDefault("bench.seed", def.Bench.Seed)
	viperCfg.SetDefault("bench.theme", def.Bench.Theme)

	viperCfg.SetDefault("logging.level", def.Logging.Level)
	viperCfg.SetDefault("logging.format", def.Logging.Format)

	viperCfg.SetDefault("telemetry.service_name", def.Telemetry.ServiceName)
	viperCfg.SetDefault("telemetry.environment", "")
	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_insecure", def.Telemetry.OTLPInsecure)
	viperCfg.SetDefault("telemetry.otlp_headers", "")
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Sort.Length < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, c.Sort.Length)
	}

	switch c.Trace.Format {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%w: trace format %q", ErrInvalidFormat, c.Trace.Format)
	}

	if c.Bench.Min < 0 || c.Bench.Max < c.Bench.Min || c.Bench.Step <= 0 {
		return fmt.Errorf("%w: min=%d max=%d step=%d", ErrInvalidRange, c.Bench.Min, c.Bench.Max, c.Bench.Step)
	}

	if c.Bench.Runs <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRuns, c.Bench.Runs)
	}

	switch c.Bench.Theme {
	case ThemeLight, ThemeDark:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Bench.Theme)
	}

	switch c.Logging.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidFormat, c.Logging.Format)
	}

	return nil
}
