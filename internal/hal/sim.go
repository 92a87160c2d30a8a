package hal

import (
	"sync"
	"time"
)

const simFPGAVersion = 2024

// Sim is an in-memory HAL backend for hosts without robot hardware. Readings
// are settable; the FPGA clock runs off the host monotonic clock from the
// moment Initialize is called.
type Sim struct {
	mu           sync.RWMutex
	epoch        time.Time
	initialized  bool
	voltage      float64
	button       bool
	brownedOut   bool
	systemActive bool
	failInit     bool
	failDS       bool
}

// NewSim creates a simulated HAL with nominal readings: 12.5V battery,
// outputs enabled, no brownout.
func NewSim() *Sim {
	return &Sim{
		voltage:      12.5,
		systemActive: true,
	}
}

func (s *Sim) Initialize(timeout, mode int32) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failInit {
		return false
	}
	if !s.initialized {
		s.initialized = true
		s.epoch = time.Now()
	}

	return true
}

func (s *Sim) FPGAVersion() (int32, Status) {
	return simFPGAVersion, StatusOK
}

func (s *Sim) FPGARevision() (int64, Status) {
	return 0, StatusOK
}

func (s *Sim) FPGATime() (uint64, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return 0, StatusOK
	}

	return uint64(time.Since(s.epoch).Microseconds()), StatusOK
}

func (s *Sim) FPGAButton() (int32, Status) {
	return s.readFlag(func() bool { return s.button })
}

func (s *Sim) BrownedOut() (int32, Status) {
	return s.readFlag(func() bool { return s.brownedOut })
}

func (s *Sim) SystemActive() (int32, Status) {
	return s.readFlag(func() bool { return s.systemActive })
}

func (s *Sim) VinVoltage() (float64, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.voltage, StatusOK
}

func (s *Sim) InitializeDriverStation() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.failDS {
		return Status(-1)
	}

	return StatusOK
}

func (s *Sim) ReleaseDSMutex() {}

func (s *Sim) ObserveUserProgramStarting() {}

func (s *Sim) Report(resource, instance int32) Status {
	return StatusOK
}

func (s *Sim) readFlag(read func() bool) (int32, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if read() {
		return 1, StatusOK
	}

	return 0, StatusOK
}

// SetVinVoltage sets the simulated battery voltage
func (s *Sim) SetVinVoltage(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.voltage = v
}

// SetFPGAButton sets the simulated user button state
func (s *Sim) SetFPGAButton(pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.button = pressed
}

// SetBrownedOut sets the simulated brownout state
func (s *Sim) SetBrownedOut(b bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brownedOut = b
}

// SetSystemActive sets whether simulated outputs are enabled
func (s *Sim) SetSystemActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systemActive = active
}

// FailInitialize makes subsequent Initialize calls report failure
func (s *Sim) FailInitialize(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failInit = fail
}

// FailDriverStation makes subsequent driver station bring-up fail
func (s *Sim) FailDriverStation(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failDS = fail
}
