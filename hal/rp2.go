//go:build rp2040

package hal

import (
	"machine"

	"exio-go/x/mathx"
)

// pwmCtrl is the subset of the RP2040 PWM slice API we use.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Set(channel uint8, value uint32)
	Top() uint32
}

func sliceFor(pin int) pwmCtrl {
	switch (pin >> 1) & 7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// 50Hz suits servos, the common load for analogue writes on an expander.
const pwmPeriodNs = 20_000_000

type rp2Channel struct {
	ctrl pwmCtrl
	ch   uint8
}

// RP2IO drives RP2040 GPIO, ADC and PWM.
type RP2IO struct {
	adcs map[int]machine.ADC
	pwms map[int]rp2Channel
}

func NewRP2IO() *RP2IO {
	machine.InitADC()
	return &RP2IO{adcs: make(map[int]machine.ADC), pwms: make(map[int]rp2Channel)}
}

func (r *RP2IO) SetMode(physical int, m Mode) {
	p := machine.Pin(physical)
	switch m {
	case ModeInput:
		p.Configure(machine.PinConfig{Mode: machine.PinInput})
	case ModeInputPullup:
		p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	case ModeOutput:
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	case ModeAnalogue:
		a := machine.ADC{Pin: p}
		a.Configure(machine.ADCConfig{})
		r.adcs[physical] = a
	case ModePWM:
		ctrl := sliceFor(physical)
		if err := ctrl.Configure(machine.PWMConfig{Period: pwmPeriodNs}); err != nil {
			return
		}
		ch, err := ctrl.Channel(p)
		if err != nil {
			return
		}
		r.pwms[physical] = rp2Channel{ctrl: ctrl, ch: ch}
	}
}

func (r *RP2IO) WriteDigital(physical int, level bool) { machine.Pin(physical).Set(level) }
func (r *RP2IO) ReadDigital(physical int) bool         { return machine.Pin(physical).Get() }

// ReadAnalogue returns a 10-bit reading, matching the controller's scale.
func (r *RP2IO) ReadAnalogue(physical int) uint16 {
	a, ok := r.adcs[physical]
	if !ok {
		return 0
	}
	return a.Get() >> 6
}

func (r *RP2IO) WritePWM(physical int, level uint16) {
	c, ok := r.pwms[physical]
	if !ok {
		return
	}
	lvl := uint32(mathx.Min(level, PWMTop))
	c.ctrl.Set(c.ch, c.ctrl.Top()*lvl/PWMTop)
}
