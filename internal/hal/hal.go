// Package hal defines the fixed call interface to the robot hardware
// abstraction layer. The HAL itself (FPGA communication, device drivers,
// driver station networking) is an external collaborator; this package only
// expresses its ABI and status conventions so that the rest of the module
// never handles a raw status sentinel.
package hal

// Status is the HAL's native status code. Zero means success; any other
// value is a HAL-defined fault code.
type Status int32

// StatusOK is the HAL success status.
const StatusOK Status = 0

// IsOK reports whether a status code indicates success
func IsOK(status Status) bool {
	return status == StatusOK
}

// Usage-report identifiers, following the HAL usage-reporting tables.
const (
	// ResourceLanguage identifies the language/runtime usage-report slot.
	ResourceLanguage int32 = 16

	// LanguageGo is the ASCII tag "Go" reported as the language instance.
	LanguageGo int32 = 0x6F47
)

// API is the fixed HAL entry-point surface consumed by this module.
// Implementations are stateless after Initialize; all query methods are safe
// for concurrent use.
type API interface {
	// Initialize brings up the HAL. timeout bounds worst-case driver
	// bring-up in milliseconds; mode is reserved and must be 0.
	// Reports false when the HAL rejects initialization.
	Initialize(timeout, mode int32) bool

	// FPGAVersion returns the competition-year-coded FPGA version.
	FPGAVersion() (int32, Status)

	// FPGARevision returns the packed FPGA revision: 12 bits major,
	// 8 bits minor, 12 bits build.
	FPGARevision() (int64, Status)

	// FPGATime returns microseconds since FPGA reset.
	FPGATime() (uint64, Status)

	// FPGAButton returns nonzero while the user button is pressed.
	FPGAButton() (int32, Status)

	// BrownedOut returns nonzero while the controller is browned out.
	BrownedOut() (int32, Status)

	// SystemActive returns nonzero while outputs are enabled.
	SystemActive() (int32, Status)

	// VinVoltage returns the input (battery) voltage.
	VinVoltage() (float64, Status)

	// InitializeDriverStation brings up the driver station session.
	InitializeDriverStation() Status

	// ReleaseDSMutex releases the driver station lock the HAL holds on
	// behalf of this process.
	ReleaseDSMutex()

	// ObserveUserProgramStarting signals that the user program is ready.
	ObserveUserProgramStarting()

	// Report files a best-effort usage report.
	Report(resource, instance int32) Status
}

// New returns the default HAL backend for this host. Robot images replace
// this with the FPGA-backed implementation; elsewhere the simulator serves.
func New() API {
	return NewSim()
}
