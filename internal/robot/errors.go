package robot

import "codeberg.org/mutker/rioctl/internal/errors"

const (
	// Construction errors
	ErrAlreadyInitialized = errors.ErrorCode("robot_already_initialized")
	ErrHALInitFailed      = errors.ErrorCode("robot_hal_init_failed")

	// Telemetry errors
	ErrNotInitialized = errors.ErrorCode("robot_not_initialized")
	ErrHALCallFailed  = errors.ErrorCode("robot_hal_call_failed")
)
