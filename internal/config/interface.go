package config

// Provider defines the interface for accessing configuration values.
// All values are immutable after loading.
type Provider interface {
	// GetInterval returns the telemetry sampling interval in seconds
	GetInterval() int

	// IsMonitorMode returns whether monitor-only mode is enabled
	IsMonitorMode() bool

	// GetLogLevel returns the configured logging level
	GetLogLevel() string

	// GetLogFile returns the rotating log file path, if any
	GetLogFile() string

	// IsTelemetryEnabled returns whether telemetry recording is enabled
	IsTelemetryEnabled() bool

	// GetTelemetryDBPath returns the path to the telemetry database
	GetTelemetryDBPath() string
}

func (c *Config) GetInterval() int           { return c.Interval }
func (c *Config) IsMonitorMode() bool        { return c.Monitor }
func (c *Config) GetLogLevel() string        { return c.LogLevel }
func (c *Config) GetLogFile() string         { return c.LogFile }
func (c *Config) IsTelemetryEnabled() bool   { return c.Telemetry }
func (c *Config) GetTelemetryDBPath() string { return c.TelemetryDB }

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}
