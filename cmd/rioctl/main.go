package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/rioctl/internal/config"
	"codeberg.org/mutker/rioctl/internal/errors"
	"codeberg.org/mutker/rioctl/internal/hal"
	"codeberg.org/mutker/rioctl/internal/logger"
	"codeberg.org/mutker/rioctl/internal/pid"
	"codeberg.org/mutker/rioctl/internal/robot"
	"codeberg.org/mutker/rioctl/internal/telemetry"
)

type hardwareState struct {
	BatteryVoltage float64
	BrownedOut     bool
	SystemActive   bool
	FPGATimeMicros uint64
}

var (
	cfg       *config.Config
	robotBase *robot.Base
	collector telemetry.Collector
)

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.LogLevel, cfg.LogFile, logger.IsService()); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug().Msg("Config loaded")
}

func main() {
	errFactory := errors.New()

	if err := pid.Write(); err != nil {
		logger.Fatal().Err(err).Msg("failed to write PID file")
	}
	defer func() {
		if err := pid.Remove(); err != nil {
			logger.Error().Err(err).Msg("failed to remove PID file")
		}
	}()

	var err error
	robotBase, err = robot.New(hal.New())
	if err != nil {
		logger.FatalWithCode(errFactory.Wrap(errors.ErrInitApp, err)).Msg("failed to initialize robot hardware")
	}
	defer robotBase.Close()

	if _, err := robotBase.MakeDS(); err != nil {
		// A robot program cannot run without a driver station link.
		logger.FatalWithCode(errFactory.Wrap(errors.ErrCreateDS, err)).Msg("failed to create driver station session")
	}

	if cfg.Telemetry {
		collector, err = telemetry.NewService(telemetry.Config{DBPath: cfg.TelemetryDB})
		if err != nil {
			logger.FatalWithCode(errFactory.Wrap(errors.ErrInitApp, err)).Msg("failed to initialize telemetry")
		}
		defer collector.Close()
	}

	logFPGAInfo()
	robotBase.StartCompetition()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := loop(ctx); err != nil {
		logger.ErrorWithCode(errFactory.Wrap(errors.ErrMainLoop, err)).Msg("error in main loop")
	}
	logger.Info().Msg("Exiting...")
}

func loop(ctx context.Context) error {
	interval := time.Duration(cfg.Interval) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if cfg.Monitor {
		logger.Info().Msg("Monitor mode activated. Logging hardware telemetry...")
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			state, err := readHardwareState()
			if err != nil {
				// A failed read is not fatal for a running robot.
				logger.Warn().Err(err).Msg("telemetry read failed")
				continue
			}

			logHardwareState(state)

			if collector != nil {
				if err := record(ctx, state); err != nil {
					logger.Warn().Err(err).Msg("telemetry record failed")
				}
			}
		}
	}
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}

func readHardwareState() (hardwareState, error) {
	voltage, err := robotBase.BatteryVoltage()
	if err != nil {
		return hardwareState{}, err
	}

	brownedOut, err := robotBase.IsBrownedOut()
	if err != nil {
		return hardwareState{}, err
	}

	active, err := robotBase.IsSystemActive()
	if err != nil {
		return hardwareState{}, err
	}

	micros, err := robotBase.FPGATime()
	if err != nil {
		return hardwareState{}, err
	}

	return hardwareState{
		BatteryVoltage: voltage,
		BrownedOut:     brownedOut,
		SystemActive:   active,
		FPGATimeMicros: micros,
	}, nil
}

func record(ctx context.Context, state hardwareState) error {
	return collector.Record(ctx, &telemetry.Snapshot{
		Timestamp:      time.Now(),
		BatteryVoltage: state.BatteryVoltage,
		BrownedOut:     state.BrownedOut,
		SystemActive:   state.SystemActive,
		FPGATimeMicros: state.FPGATimeMicros,
	})
}

func logFPGAInfo() {
	version, err := robotBase.FPGAVersion()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read FPGA version")
		return
	}

	revision, err := robotBase.FPGARevision()
	if err != nil {
		logger.Warn().Err(err).Msg("failed to read FPGA revision")
		return
	}

	// Revision packs 12 bits major, 8 bits minor, 12 bits build.
	logger.Info().
		Int32("fpga_version", version).
		Int64("fpga_revision_major", revision>>20&0xFFF).
		Int64("fpga_revision_minor", revision>>12&0xFF).
		Int64("fpga_revision_build", revision&0xFFF).
		Msg("FPGA detected")
}

func logHardwareState(state hardwareState) {
	uptime, err := robotBase.FPGATimeDuration()
	if err != nil {
		uptime = 0
	}

	logger.Info().
		Float64("battery_voltage", state.BatteryVoltage).
		Bool("browned_out", state.BrownedOut).
		Bool("system_active", state.SystemActive).
		Dur("fpga_uptime", uptime).
		Msg("")
}
