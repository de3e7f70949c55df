// Package hal is the physical pin I/O boundary. The engine addresses pins by
// platform pin number; backends map that onto the MCU or host GPIO layer.
package hal

// Mode is a physical pin configuration.
type Mode uint8

const (
	ModeInput Mode = iota
	ModeInputPullup
	ModeOutput
	ModeAnalogue
	ModePWM
)

func (m Mode) String() string {
	switch m {
	case ModeInput:
		return "input"
	case ModeInputPullup:
		return "input_pullup"
	case ModeOutput:
		return "output"
	case ModeAnalogue:
		return "analogue"
	case ModePWM:
		return "pwm"
	}
	return "unknown"
}

// PinIO drives hardware pins. SetMode and WriteDigital are assumed to always
// succeed; backends swallow platform errors.
type PinIO interface {
	SetMode(physical int, m Mode)
	WriteDigital(physical int, level bool)
	ReadDigital(physical int) bool
	ReadAnalogue(physical int) uint16
}

// PWMWriter is implemented by backends that can hold PWM levels.
// Levels are in [0..PWMTop].
type PWMWriter interface {
	WritePWM(physical int, level uint16)
}

// PWMTop is the logical full-scale PWM level used on the wire.
const PWMTop = 4095
