//go:build linux && !tinygo

package hal

import (
	"strconv"
	"sync"

	"exio-go/x/mathx"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

// PeriphIO drives Linux SBC GPIO through periph.io, addressing pins by their
// "GPIO<n>" names. Analogue reads are unsupported on this backend and
// return 0.
type PeriphIO struct {
	mu   sync.Mutex
	pins map[int]gpio.PinIO
}

// NewPeriphIO initialises the periph host drivers.
func NewPeriphIO() (*PeriphIO, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	return &PeriphIO{pins: make(map[int]gpio.PinIO)}, nil
}

func (p *PeriphIO) lookup(n int) gpio.PinIO {
	p.mu.Lock()
	defer p.mu.Unlock()
	if pin, ok := p.pins[n]; ok {
		return pin
	}
	pin := gpioreg.ByName("GPIO" + strconv.Itoa(n))
	if pin != nil {
		p.pins[n] = pin
	}
	return pin
}

func (p *PeriphIO) SetMode(physical int, m Mode) {
	pin := p.lookup(physical)
	if pin == nil {
		return
	}
	switch m {
	case ModeInput:
		_ = pin.In(gpio.Float, gpio.NoEdge)
	case ModeInputPullup:
		_ = pin.In(gpio.PullUp, gpio.NoEdge)
	case ModeOutput:
		_ = pin.Out(gpio.Low)
	case ModePWM:
		_ = pin.PWM(0, 50*physic.Hertz)
	}
}

func (p *PeriphIO) WriteDigital(physical int, level bool) {
	if pin := p.lookup(physical); pin != nil {
		_ = pin.Out(gpio.Level(level))
	}
}

func (p *PeriphIO) ReadDigital(physical int) bool {
	if pin := p.lookup(physical); pin != nil {
		return pin.Read() == gpio.High
	}
	return false
}

func (p *PeriphIO) ReadAnalogue(int) uint16 { return 0 }

func (p *PeriphIO) WritePWM(physical int, level uint16) {
	pin := p.lookup(physical)
	if pin == nil {
		return
	}
	duty := gpio.Duty(uint64(gpio.DutyMax) * uint64(mathx.Min(level, PWMTop)) / PWMTop)
	_ = pin.PWM(duty, 50*physic.Hertz)
}
