// Package analogue implements the analogue collaborators of the engine:
// enabling ADC inputs and driving PWM outputs with servo-style profiles.
package analogue

import (
	"math"
	"sync"
	"time"

	"exio-go/board"
	"exio-go/diag"
	"exio-go/hal"
	"exio-go/pinstate"
	"exio-go/x/mathx"
	"exio-go/x/ramp"
)

// Profiles understood by WriteAnalogue. The NoPowerOff flag is accepted and
// ignored: outputs here are never powered down after a move.
const (
	Instant uint8 = iota
	Fast
	Medium
	Slow
	Bounce

	NoPowerOff uint8 = 0x80
)

// DurationUnit scales the wire duration field.
const DurationUnit = 100 * time.Millisecond

// stepEvery is the refresh interval of a ramp; one servo frame at 50Hz.
const stepEvery = 20 * time.Millisecond

var profileDuration = [...]time.Duration{
	Instant: 0,
	Fast:    500 * time.Millisecond,
	Medium:  time.Second,
	Slow:    2 * time.Second,
	Bounce:  1500 * time.Millisecond,
}

// Service holds per-pin PWM levels and running ramps.
type Service struct {
	b   *board.Board
	io  hal.PinIO
	pwm hal.PWMWriter
	log *diag.Logger

	// after is time.After; tests replace it.
	after func(time.Duration) <-chan time.Time

	mu     sync.Mutex
	levels map[int]uint16
	ramps  map[int]chan struct{}
	wg     sync.WaitGroup
}

// New builds the service. PWM writes are rejected when io does not implement
// hal.PWMWriter.
func New(b *board.Board, io hal.PinIO, log *diag.Logger) *Service {
	if log == nil {
		log = diag.Discard()
	}
	s := &Service{
		b:      b,
		io:     io,
		log:    log,
		after:  time.After,
		levels: make(map[int]uint16),
		ramps:  make(map[int]chan struct{}),
	}
	s.pwm, _ = io.(hal.PWMWriter)
	return s
}

// EnableAnalogue claims pin as an analogue input.
func (s *Service) EnableAnalogue(tb *pinstate.Table, pin int) bool {
	switch tb.TryClaim(pin, pinstate.Claim{Role: pinstate.RoleAnalogueInput}) {
	case pinstate.Accepted:
	case pinstate.RejectedCapability:
		s.log.Errorf("pin %s not capable of analogue input", s.b.Label(pin))
		return false
	default:
		s.log.Errorf("pin %s already in use, cannot use as an analogue input pin", s.b.Label(pin))
		return false
	}
	s.io.SetMode(s.b.PhysicalPin(pin), hal.ModeAnalogue)
	return true
}

// WriteAnalogue claims pin as a PWM output and moves it to value. A non-zero
// duration (in DurationUnit) overrides the profile's own timing.
func (s *Service) WriteAnalogue(tb *pinstate.Table, pin int, value uint16, profile uint8, duration uint16) bool {
	if s.pwm == nil {
		s.log.Errorf("PWM not available on this platform")
		return false
	}
	profile &^= NoPowerOff
	if int(profile) >= len(profileDuration) {
		s.log.Errorf("unknown analogue profile %d", profile)
		return false
	}
	wasEnabled := false
	if e, ok := tb.Entry(pin); ok {
		wasEnabled = e.Enabled
	}
	switch tb.TryClaim(pin, pinstate.Claim{Role: pinstate.RolePWMOutput}) {
	case pinstate.Accepted:
	case pinstate.RejectedCapability:
		s.log.Errorf("pin %s not capable of PWM output", s.b.Label(pin))
		return false
	default:
		s.log.Errorf("pin %s already in use, cannot use as a PWM output pin", s.b.Label(pin))
		return false
	}
	phys := s.b.PhysicalPin(pin)
	if !wasEnabled {
		s.io.SetMode(phys, hal.ModePWM)
	}

	d := profileDuration[profile]
	if duration > 0 {
		d = time.Duration(duration) * DurationUnit
	}
	if value > hal.PWMTop {
		value = hal.PWMTop
	}
	s.start(pin, phys, value, profile, d)
	return true
}

func (s *Service) start(pin, phys int, to uint16, profile uint8, d time.Duration) {
	s.mu.Lock()
	if c, ok := s.ramps[pin]; ok {
		close(c)
		delete(s.ramps, pin)
	}
	from := s.levels[pin]
	if d <= 0 {
		s.levels[pin] = to
		s.pwm.WritePWM(phys, to)
		s.mu.Unlock()
		return
	}
	cancel := make(chan struct{})
	s.ramps[pin] = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	// s.mu is held across the hardware write: only the live ramp touches phys.
	set := func(l uint16) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.ramps[pin] != cancel {
			return
		}
		s.levels[pin] = l
		s.pwm.WritePWM(phys, l)
	}
	tick := func(step time.Duration) bool {
		select {
		case <-cancel:
			return false
		case <-s.after(step):
			return true
		}
	}

	go func() {
		defer s.wg.Done()
		if profile == Bounce {
			ramp.Bounce(from, to, hal.PWMTop, d, stepsFor(d/ramp.BounceSegments), tick, set)
		} else {
			ramp.Linear(from, to, hal.PWMTop, d, stepsFor(d), tick, set)
		}
		s.mu.Lock()
		if s.ramps[pin] == cancel {
			delete(s.ramps, pin)
		}
		s.mu.Unlock()
	}()
}

// stepsFor is the number of stepEvery refreshes in d. Moves too long to fit
// a uint16 count keep the maximum count and stretch each step instead.
func stepsFor(d time.Duration) uint16 {
	return uint16(mathx.Min(int64(d/stepEvery), math.MaxUint16))
}

// Level reports the last PWM level written to pin.
func (s *Service) Level(pin int) uint16 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels[pin]
}

// Busy reports whether a ramp is running on pin.
func (s *Service) Busy(pin int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ramps[pin]
	return ok
}

// Reset cancels every running ramp and forgets recorded levels.
func (s *Service) Reset() {
	s.mu.Lock()
	for pin, c := range s.ramps {
		close(c)
		delete(s.ramps, pin)
	}
	clear(s.levels)
	s.mu.Unlock()
}

// Wait blocks until all ramp goroutines have exited.
func (s *Service) Wait() { s.wg.Wait() }
