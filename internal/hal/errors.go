package hal

import (
	"fmt"

	"codeberg.org/mutker/rioctl/internal/errors"
)

// Error wraps a non-OK HAL status code
type Error struct {
	status Status
}

func (e *Error) Error() string {
	return fmt.Sprintf("HAL status %d", e.status)
}

// Status returns the HAL's native status code
func (e *Error) Status() Status {
	return e.status
}

// NewError creates an error from a HAL status code, or nil for StatusOK
func NewError(status Status) error {
	if IsOK(status) {
		return nil
	}
	return &Error{status: status}
}

// StatusOf extracts the native HAL status from an error chain.
// Returns StatusOK when the chain carries no HAL status.
func StatusOf(err error) Status {
	var halErr *Error
	if errors.As(err, &halErr) {
		return halErr.Status()
	}

	return StatusOK
}
