package hal

import "sync"

// FakePin records what the engine did to one host-side pin.
type FakePin struct {
	Mode     Mode
	Level    bool
	Analogue uint16
	PWM      uint16
	Writes   int
}

// HostIO implements PinIO and PWMWriter for host-side tests and simulation.
// Inputs are driven from outside with Drive/DriveAnalogue.
type HostIO struct {
	mu   sync.RWMutex
	pins map[int]*FakePin
}

func NewHostIO() *HostIO { return &HostIO{pins: make(map[int]*FakePin)} }

func (h *HostIO) pin(n int) *FakePin {
	p, ok := h.pins[n]
	if !ok {
		p = &FakePin{}
		h.pins[n] = p
	}
	return p
}

func (h *HostIO) SetMode(physical int, m Mode) {
	h.mu.Lock()
	p := h.pin(physical)
	p.Mode = m
	if m == ModeInputPullup {
		p.Level = true
	}
	h.mu.Unlock()
}

func (h *HostIO) WriteDigital(physical int, level bool) {
	h.mu.Lock()
	p := h.pin(physical)
	p.Level = level
	p.Writes++
	h.mu.Unlock()
}

func (h *HostIO) ReadDigital(physical int) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if p, ok := h.pins[physical]; ok {
		return p.Level
	}
	return false
}

func (h *HostIO) ReadAnalogue(physical int) uint16 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if p, ok := h.pins[physical]; ok {
		return p.Analogue
	}
	return 0
}

func (h *HostIO) WritePWM(physical int, level uint16) {
	h.mu.Lock()
	h.pin(physical).PWM = level
	h.mu.Unlock()
}

// Drive sets the level an input pin will read.
func (h *HostIO) Drive(physical int, level bool) {
	h.mu.Lock()
	h.pin(physical).Level = level
	h.mu.Unlock()
}

// DriveAnalogue sets the value an analogue pin will read.
func (h *HostIO) DriveAnalogue(physical int, v uint16) {
	h.mu.Lock()
	h.pin(physical).Analogue = v
	h.mu.Unlock()
}

// Get returns a copy of the recorded pin state.
func (h *HostIO) Get(physical int) (FakePin, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	p, ok := h.pins[physical]
	if !ok {
		return FakePin{}, false
	}
	return *p, true
}
