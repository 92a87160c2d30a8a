// Package robot owns the process hardware lifecycle: a one-shot guard that
// admits exactly one hardware initialization per process, the handle that
// represents the live hardware session, and typed telemetry reads over the
// HAL boundary.
package robot

import (
	"fmt"
	"sync/atomic"
	"time"

	"codeberg.org/mutker/rioctl/internal/ds"
	"codeberg.org/mutker/rioctl/internal/errors"
	"codeberg.org/mutker/rioctl/internal/hal"
	"codeberg.org/mutker/rioctl/internal/logger"
)

const (
	// initTimeoutMs bounds worst-case driver bring-up during HAL init.
	initTimeoutMs = 500
	// initModeReserved is the reserved HAL init mode flag.
	initModeReserved = 0

	microsPerSecond = 1_000_000
)

// Guard is a process-wide one-shot initialization gate. It admits exactly
// one false-to-true transition per process lifetime and never resets:
// physical hardware bring-up is not safely retryable in-process.
type Guard struct {
	claimed atomic.Bool
}

// TryClaim atomically attempts the one allowed transition. It returns true
// for exactly one caller per Guard lifetime, including under races; every
// later call returns false.
func (g *Guard) TryClaim() bool {
	return g.claimed.CompareAndSwap(false, true)
}

// Claimed reports whether the gate has been claimed
func (g *Guard) Claimed() bool {
	return g.claimed.Load()
}

// processGuard gates hardware init for the whole process.
var processGuard Guard

// boundAPI is the HAL instance bound by the one successful construction.
// It backs the package-level telemetry reads.
var boundAPI atomic.Value

// Base is the handle representing a live hardware session. Its existence is
// the capability required for telemetry reads; only one is ever live per
// process. Do not copy it.
type Base struct {
	api      hal.API
	released atomic.Bool
}

// New claims the process guard and initializes the HAL, yielding the one
// hardware handle for this process. Call before constructing anything that
// touches hardware.
//
// A HAL init failure leaves the guard claimed: a later call in the same
// process reports ErrAlreadyInitialized, not another init attempt. Restart
// the process to retry.
func New(api hal.API) (*Base, error) {
	base, err := newBase(&processGuard, api)
	if err != nil {
		return nil, err
	}
	boundAPI.Store(api)

	return base, nil
}

func newBase(guard *Guard, api hal.API) (*Base, error) {
	errFactory := errors.New()

	if !guard.TryClaim() {
		return nil, errFactory.New(ErrAlreadyInitialized)
	}

	if !api.Initialize(initTimeoutMs, initModeReserved) {
		return nil, errFactory.New(ErrHALInitFailed)
	}

	// Best effort; a rejected usage report must not fail construction.
	if status := api.Report(hal.ResourceLanguage, hal.LanguageGo); !hal.IsOK(status) {
		logger.Debug().Msgf("Usage report rejected: status %d", status)
	}

	fmt.Println("\n********** Hardware Init **********")
	fmt.Println()

	return &Base{api: api}, nil
}

// Close releases the driver station lock the HAL holds on behalf of this
// process. The release happens exactly once no matter how many times Close
// runs or on which exit path; the error is always nil and exists to satisfy
// io.Closer.
func (b *Base) Close() error {
	if !b.released.CompareAndSwap(false, true) {
		return nil
	}
	b.api.ReleaseDSMutex()

	return nil
}

// MakeDS constructs the driver station session. A robot program cannot
// usefully run without a driver station link, so callers should treat a
// returned error as fatal.
func (b *Base) MakeDS() (*ds.DriverStation, error) {
	return ds.New(b.api)
}

// StartCompetition signals the HAL that the user program is ready. Call once
// hardware and worker threads are set up.
func (b *Base) StartCompetition() {
	b.api.ObserveUserProgramStarting()
	fmt.Println("\n********** Robot program starting **********")
	fmt.Println()
}

// Handle telemetry reads delegate to the package-level reads; the HAL is a
// singleton underneath and the handle's existence is what guarantees it has
// been initialized.

func (b *Base) FPGAVersion() (int32, error)              { return fpgaVersion(b.api) }
func (b *Base) FPGARevision() (int64, error)             { return fpgaRevision(b.api) }
func (b *Base) FPGATime() (uint64, error)                { return fpgaTime(b.api) }
func (b *Base) FPGATimeDuration() (time.Duration, error) { return fpgaTimeDuration(b.api) }
func (b *Base) UserButton() (bool, error)                { return userButton(b.api) }
func (b *Base) IsBrownedOut() (bool, error)              { return isBrownedOut(b.api) }
func (b *Base) IsSystemActive() (bool, error)            { return isSystemActive(b.api) }
func (b *Base) BatteryVoltage() (float64, error)         { return batteryVoltage(b.api) }

// The package-level reads mirror the handle methods for code that does not
// carry the handle around. They error with ErrNotInitialized until a Base
// has been constructed.

// FPGAVersion returns the FPGA version number. Expect the competition year.
func FPGAVersion() (int32, error) {
	api, err := activeAPI()
	if err != nil {
		return 0, err
	}
	return fpgaVersion(api)
}

// FPGARevision returns the FPGA revision: the 12 most significant bits are
// the major revision, the next 8 the minor revision, and the 12 least
// significant the build number.
func FPGARevision() (int64, error) {
	api, err := activeAPI()
	if err != nil {
		return 0, err
	}
	return fpgaRevision(api)
}

// FPGATime reads the microsecond-resolution FPGA timer, counted since FPGA
// reset.
func FPGATime() (uint64, error) {
	api, err := activeAPI()
	if err != nil {
		return 0, err
	}
	return fpgaTime(api)
}

// FPGATimeDuration reads the FPGA timer as a time.Duration
func FPGATimeDuration() (time.Duration, error) {
	api, err := activeAPI()
	if err != nil {
		return 0, err
	}
	return fpgaTimeDuration(api)
}

// UserButton reads the state of the "USER" button. True while pressed.
func UserButton() (bool, error) {
	api, err := activeAPI()
	if err != nil {
		return false, err
	}
	return userButton(api)
}

// IsBrownedOut reports whether the controller is browned out
func IsBrownedOut() (bool, error) {
	api, err := activeAPI()
	if err != nil {
		return false, err
	}
	return isBrownedOut(api)
}

// IsSystemActive reports whether outputs are enabled. A false result can be
// caused by a disabled robot or a brownout.
func IsSystemActive() (bool, error) {
	api, err := activeAPI()
	if err != nil {
		return false, err
	}
	return isSystemActive(api)
}

// BatteryVoltage reads the current battery voltage
func BatteryVoltage() (float64, error) {
	api, err := activeAPI()
	if err != nil {
		return 0, err
	}
	return batteryVoltage(api)
}

func activeAPI() (hal.API, error) {
	api, ok := boundAPI.Load().(hal.API)
	if !ok {
		return nil, errors.New().New(ErrNotInitialized)
	}

	return api, nil
}

func fpgaVersion(api hal.API) (int32, error) {
	version, status := api.FPGAVersion()
	if !hal.IsOK(status) {
		return 0, wrapStatus(status)
	}

	return version, nil
}

func fpgaRevision(api hal.API) (int64, error) {
	revision, status := api.FPGARevision()
	if !hal.IsOK(status) {
		return 0, wrapStatus(status)
	}

	return revision, nil
}

func fpgaTime(api hal.API) (uint64, error) {
	micros, status := api.FPGATime()
	if !hal.IsOK(status) {
		return 0, wrapStatus(status)
	}

	return micros, nil
}

func fpgaTimeDuration(api hal.API) (time.Duration, error) {
	micros, err := fpgaTime(api)
	if err != nil {
		return 0, err
	}

	sec := micros / microsPerSecond
	nsec := (micros % microsPerSecond) * 1000

	return time.Duration(sec)*time.Second + time.Duration(nsec), nil
}

func userButton(api hal.API) (bool, error) {
	return readFlag(api.FPGAButton)
}

func isBrownedOut(api hal.API) (bool, error) {
	return readFlag(api.BrownedOut)
}

func isSystemActive(api hal.API) (bool, error) {
	return readFlag(api.SystemActive)
}

func batteryVoltage(api hal.API) (float64, error) {
	voltage, status := api.VinVoltage()
	if !hal.IsOK(status) {
		return 0, wrapStatus(status)
	}

	return voltage, nil
}

func readFlag(query func() (int32, hal.Status)) (bool, error) {
	value, status := query()
	if !hal.IsOK(status) {
		return false, wrapStatus(status)
	}

	return value != 0, nil
}

// wrapStatus turns a non-OK HAL status into a typed error carrying the
// native status code; use hal.StatusOf to recover it.
func wrapStatus(status hal.Status) error {
	return errors.New().Wrap(ErrHALCallFailed, hal.NewError(status))
}
