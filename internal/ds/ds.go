// Package ds holds the driver station session. The session is a hard
// dependency of any robot program; its wire protocol lives in the HAL and is
// not modeled here.
package ds

import (
	"codeberg.org/mutker/rioctl/internal/errors"
	"codeberg.org/mutker/rioctl/internal/hal"
)

const (
	// Session errors
	ErrDSInitFailed = errors.ErrorCode("ds_init_failed")
)

// DriverStation is a live driver station session
type DriverStation struct {
	api hal.API
}

// New brings up the driver station link through the HAL. Hardware must
// already be initialized; construct the robot base first.
func New(api hal.API) (*DriverStation, error) {
	if status := api.InitializeDriverStation(); !hal.IsOK(status) {
		return nil, errors.New().Wrap(ErrDSInitFailed, hal.NewError(status))
	}

	return &DriverStation{api: api}, nil
}
