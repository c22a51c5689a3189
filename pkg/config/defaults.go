package config

// Sort defaults.
const (
	DefaultSortLength       = 15
	DefaultSortSeed         = 0
	DefaultSortVerbose      = false
	DefaultSortHighContrast = false
	DefaultSortNoColor      = false
)

// Trace defaults.
const (
	DefaultTraceFormat = FormatJSON
)

// Bench defaults.
const (
	DefaultBenchMin   = 0
	DefaultBenchMax   = 1000
	DefaultBenchStep  = 100
	DefaultBenchRuns  = 5
	DefaultBenchSeed  = 1
	DefaultBenchTheme = ThemeDark
)

// Logging defaults.
const (
	DefaultLoggingLevel  = "warn"
	DefaultLoggingFormat = LogFormatText
)

// Telemetry defaults.
const (
	DefaultTelemetryServiceName  = "heapsort"
	DefaultTelemetryOTLPInsecure = false
)
