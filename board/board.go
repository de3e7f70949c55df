// Package board describes what each logical pin of an expander board can do.
// Tables are fixed at boot and never mutated afterwards.
package board

import (
	"strconv"

	"exio-go/errcode"
)

// Capability is a bitset of pin functions.
type Capability uint8

const (
	DigitalInput Capability = 1 << iota
	DigitalOutput
	AnalogueInput
	PWM

	Digital = DigitalInput | DigitalOutput
)

// Has reports whether all bits of want are present.
func (c Capability) Has(want Capability) bool { return c&want == want }

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}
	var s string
	add := func(bit Capability, name string) {
		if c&bit == 0 {
			return
		}
		if s != "" {
			s += "|"
		}
		s += name
	}
	add(DigitalInput, "din")
	add(DigitalOutput, "dout")
	add(AnalogueInput, "ain")
	add(PWM, "pwm")
	return s
}

// PinDef is one entry of the static board table, indexed by logical pin id.
type PinDef struct {
	Physical int
	Caps     Capability
}

// Board is the static capability table for one hardware variant.
type Board struct {
	Name string
	Pins []PinDef
}

// NumPins is the fixed pin total the controller must echo on INIT.
func (b *Board) NumPins() int { return len(b.Pins) }

func (b *Board) count(c Capability) int {
	n := 0
	for _, p := range b.Pins {
		if p.Caps&c != 0 {
			n++
		}
	}
	return n
}

// NumDigital counts pins with any digital capability.
func (b *Board) NumDigital() int { return b.count(Digital) }

// NumAnalogue counts analogue-input capable pins.
func (b *Board) NumAnalogue() int { return b.count(AnalogueInput) }

// NumPWM counts PWM capable pins.
func (b *Board) NumPWM() int { return b.count(PWM) }

// Capability returns the capability of logical pin. Out of range pins have none.
func (b *Board) Capability(pin int) Capability {
	if pin < 0 || pin >= len(b.Pins) {
		return 0
	}
	return b.Pins[pin].Caps
}

// PhysicalPin maps a logical pin to the platform pin number, -1 if unknown.
func (b *Board) PhysicalPin(pin int) int {
	if pin < 0 || pin >= len(b.Pins) {
		return -1
	}
	return b.Pins[pin].Physical
}

// Label names pin for diagnostics: its physical number, or the logical id
// when the board has no such pin.
func (b *Board) Label(pin int) string {
	if phys := b.PhysicalPin(pin); phys >= 0 {
		return strconv.Itoa(phys)
	}
	return "#" + strconv.Itoa(pin) + " (no such pin)"
}

// AnalogueMap lists the logical ids of analogue-capable pins in order.
// The position of a pin in this list is its analogue slot index.
func (b *Board) AnalogueMap() []byte {
	m := make([]byte, 0, b.NumAnalogue())
	for i, p := range b.Pins {
		if p.Caps&AnalogueInput != 0 {
			m = append(m, byte(i))
		}
	}
	return m
}

// Validate checks the table is usable on the wire: at most 255 pins (ids
// travel in one byte) and no duplicated physical pins.
func (b *Board) Validate() error {
	if len(b.Pins) == 0 || len(b.Pins) > 255 {
		return errcode.New(errcode.InvalidConfig, "board", "pin count out of range")
	}
	seen := make(map[int]bool, len(b.Pins))
	for _, p := range b.Pins {
		if seen[p.Physical] {
			return errcode.New(errcode.InvalidConfig, "board", "duplicate physical pin")
		}
		seen[p.Physical] = true
	}
	return nil
}

var registry = map[string]*Board{}

// Register adds a built-in board. Called from init in board tables.
func Register(b *Board) { registry[b.Name] = b }

// ByName returns a registered board.
func ByName(name string) (*Board, error) {
	b, ok := registry[name]
	if !ok {
		return nil, errcode.New(errcode.UnknownBoard, "board", name)
	}
	return b, nil
}

// Names lists registered boards (unordered).
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	return out
}
