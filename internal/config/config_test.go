package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/rioctl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setArgs(t *testing.T, args ...string) {
	t.Helper()
	oldArgs := os.Args
	os.Args = append([]string{"rioctl"}, args...)
	t.Cleanup(func() { os.Args = oldArgs })
}

func TestLoad(t *testing.T) {
	setArgs(t)

	tempDir := t.TempDir()
	configContent := []byte(`
interval = 5
monitor = true
log_level = "debug"
log_file = "/var/log/rioctl/rioctl.log"
telemetry = true
database = "/path/to/telemetry.db"
`)
	configPath := filepath.Join(tempDir, "rioctl.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("RIOCTL_CONFIG", configPath)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Interval, "Expected Interval 5")
	assert.True(t, cfg.Monitor, "Expected Monitor true")
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel debug")
	assert.Equal(t, "/var/log/rioctl/rioctl.log", cfg.LogFile, "Expected LogFile from config")
	assert.True(t, cfg.Telemetry, "Expected Telemetry true")
	assert.Equal(t, "/path/to/telemetry.db", cfg.TelemetryDB, "Expected TelemetryDB /path/to/telemetry.db")
}

func TestLoadDefaults(t *testing.T) {
	setArgs(t)

	// Ensure no config file is used
	t.Setenv("RIOCTL_CONFIG", filepath.Join(t.TempDir(), "rioctl.toml"))

	cfg, err := config.Load()
	require.NoError(t, err, "Failed to load config")

	assert.Equal(t, config.DefaultInterval, cfg.Interval, "Expected default Interval")
	assert.False(t, cfg.Monitor, "Expected default Monitor false")
	assert.Equal(t, config.DefaultLogLevel, cfg.LogLevel, "Expected default LogLevel info")
	assert.False(t, cfg.Telemetry, "Expected default Telemetry false")
}

func TestLoadConfigFileInvalidFormat(t *testing.T) {
	setArgs(t)

	tempDir := t.TempDir()
	configContent := []byte(`
This is not a valid TOML file
`)
	configPath := filepath.Join(tempDir, "rioctl.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("RIOCTL_CONFIG", configPath)

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to read config file")
}

func TestInvalidLogLevel(t *testing.T) {
	setArgs(t)

	tempDir := t.TempDir()
	configContent := []byte(`
log_level = "invalid"
`)
	configPath := filepath.Join(tempDir, "rioctl.toml")
	err := os.WriteFile(configPath, configContent, 0o600)
	require.NoError(t, err)

	t.Setenv("RIOCTL_CONFIG", configPath)

	_, err = config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_log_level")
}

func TestTelemetryRequiresDatabase(t *testing.T) {
	setArgs(t, "--telemetry")
	t.Setenv("RIOCTL_CONFIG", filepath.Join(t.TempDir(), "rioctl.toml"))

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no database path")
}

func TestLogLevelFlag(t *testing.T) {
	setArgs(t, "--log-level", "debug")
	t.Setenv("RIOCTL_CONFIG", filepath.Join(t.TempDir(), "rioctl.toml"))

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel, "Expected LogLevel to be set by flag")
}