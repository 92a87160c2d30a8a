package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/rioctl/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval = 2
	DefaultLogLevel = "info"

	configName = "rioctl"
	configType = "toml"
	envPrefix  = "RIOCTL"
)

type Config struct {
	Interval    int    `mapstructure:"interval"`
	Monitor     bool   `mapstructure:"monitor"`
	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"`
	Telemetry   bool   `mapstructure:"telemetry"`
	TelemetryDB string `mapstructure:"database"`
}

// Load reads configuration from flags, environment and the config file.
// An explicit file set via RIOCTL_CONFIG wins over the search path.
func Load() (*Config, error) {
	errFactory := errors.New()
	v := viper.New()

	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("monitor", false)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", "")
	v.SetDefault("telemetry", false)
	v.SetDefault("database", "")

	flags := pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	flags.Int("interval", DefaultInterval, "Seconds between telemetry samples")
	flags.Bool("monitor", false, "Only monitor and log hardware telemetry")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Write logs to a rotating file")
	flags.Bool("telemetry", false, "Record telemetry snapshots to the database")
	flags.String("database", "", "Path to the telemetry database")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	bindings := map[string]string{
		"interval":  "interval",
		"monitor":   "monitor",
		"log_level": "log-level",
		"log_file":  "log-file",
		"telemetry": "telemetry",
		"database":  "database",
	}
	for key, flagName := range bindings {
		if err := v.BindPFlag(key, flags.Lookup(flagName)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	readConfig := true
	if path := os.Getenv(envPrefix + "_CONFIG"); path != "" {
		if _, err := os.Stat(path); err != nil {
			readConfig = false
		} else {
			v.SetConfigFile(path)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath("/etc")
		v.AddConfigPath(".")
	}

	if readConfig {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err).
					WithMessage("Failed to read config file")
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(errors.ErrReadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the loaded configuration for consistency
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidConfig, c.Interval).
			WithMessage("Interval must be positive")
	}

	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.Telemetry && c.TelemetryDB == "" {
		return errFactory.New(errors.ErrMissingConfig).
			WithMessage("Telemetry enabled but no database path configured")
	}

	return nil
}
