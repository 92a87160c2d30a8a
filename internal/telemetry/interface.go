package telemetry

import (
	"context"
	"time"
)

// Collector defines the core domain interface
type Collector interface {
	Record(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Snapshot is one sample of hardware telemetry
type Snapshot struct {
	Timestamp      time.Time
	BatteryVoltage float64
	BrownedOut     bool
	SystemActive   bool
	FPGATimeMicros uint64
}
