package telemetry_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/rioctl/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServiceRequiresDBPath(t *testing.T) {
	_, err := telemetry.NewService(telemetry.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry_invalid_db_path")
}

func TestRecordSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")

	collector, err := telemetry.NewService(telemetry.Config{DBPath: dbPath})
	require.NoError(t, err)
	defer collector.Close()

	snapshot := &telemetry.Snapshot{
		Timestamp:      time.Now(),
		BatteryVoltage: 12.4,
		BrownedOut:     false,
		SystemActive:   true,
		FPGATimeMicros: 1_500_000,
	}
	require.NoError(t, collector.Record(context.Background(), snapshot))

	// Same timestamp upserts rather than failing the primary key
	snapshot.BatteryVoltage = 11.9
	require.NoError(t, collector.Record(context.Background(), snapshot))
}

func TestRecordNilSnapshot(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")

	collector, err := telemetry.NewService(telemetry.Config{DBPath: dbPath})
	require.NoError(t, err)
	defer collector.Close()

	err = collector.Record(context.Background(), nil)
	require.Error(t, err)
}

func TestRecordCancelledContext(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "telemetry.db")

	collector, err := telemetry.NewService(telemetry.Config{DBPath: dbPath})
	require.NoError(t, err)
	defer collector.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = collector.Record(ctx, &telemetry.Snapshot{Timestamp: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telemetry_operation_timeout")
}
