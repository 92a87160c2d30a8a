package hal_test

import (
	"testing"
	"time"

	"codeberg.org/mutker/rioctl/internal/hal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimInitialize(t *testing.T) {
	sim := hal.NewSim()

	assert.True(t, sim.Initialize(500, 0))
	assert.True(t, sim.Initialize(500, 0), "re-init of an initialized HAL succeeds")
}

func TestSimFailInitialize(t *testing.T) {
	sim := hal.NewSim()
	sim.FailInitialize(true)

	assert.False(t, sim.Initialize(500, 0))
}

func TestSimFPGATimeAdvances(t *testing.T) {
	sim := hal.NewSim()

	before, status := sim.FPGATime()
	require.True(t, hal.IsOK(status))
	assert.Zero(t, before, "clock does not run before init")

	require.True(t, sim.Initialize(500, 0))
	time.Sleep(2 * time.Millisecond)

	after, status := sim.FPGATime()
	require.True(t, hal.IsOK(status))
	assert.Greater(t, after, uint64(0))
}

func TestSimReadings(t *testing.T) {
	sim := hal.NewSim()
	sim.SetVinVoltage(11.2)
	sim.SetFPGAButton(true)
	sim.SetBrownedOut(true)
	sim.SetSystemActive(false)

	voltage, status := sim.VinVoltage()
	require.True(t, hal.IsOK(status))
	assert.InDelta(t, 11.2, voltage, 1e-9)

	button, _ := sim.FPGAButton()
	assert.EqualValues(t, 1, button)

	brownedOut, _ := sim.BrownedOut()
	assert.EqualValues(t, 1, brownedOut)

	active, _ := sim.SystemActive()
	assert.EqualValues(t, 0, active)
}

func TestSimDriverStation(t *testing.T) {
	sim := hal.NewSim()

	require.True(t, hal.IsOK(sim.InitializeDriverStation()))

	sim.FailDriverStation(true)
	assert.False(t, hal.IsOK(sim.InitializeDriverStation()))
}

func TestStatusOf(t *testing.T) {
	require.NoError(t, hal.NewError(hal.StatusOK))

	err := hal.NewError(hal.Status(-1074))
	require.Error(t, err)
	assert.Equal(t, hal.Status(-1074), hal.StatusOf(err))
	assert.Equal(t, hal.StatusOK, hal.StatusOf(nil))
}
