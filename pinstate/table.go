// Package pinstate is the pin state table: per-pin claim records plus the
// packed digital and analogue state buffers returned to the controller.
//
// The table is the only place capability and conflict rules are enforced.
// It does no locking; the owner serialises access.
package pinstate

import (
	"encoding/binary"

	"exio-go/board"
)

type Mode uint8

const (
	ModeDigital Mode = iota
	ModeAnalogue
)

type Direction uint8

const (
	Input Direction = iota
	Output
)

// Role is what a claim asks a pin to become.
type Role uint8

const (
	RoleDigitalInput Role = iota
	RoleDigitalOutput
	RoleAnalogueInput
	RolePWMOutput
)

func (r Role) String() string {
	switch r {
	case RoleDigitalInput:
		return "digital input"
	case RoleDigitalOutput:
		return "digital output"
	case RoleAnalogueInput:
		return "analogue input"
	case RolePWMOutput:
		return "pwm output"
	}
	return "unknown"
}

// required capability bit per role
func (r Role) capability() board.Capability {
	switch r {
	case RoleDigitalInput:
		return board.DigitalInput
	case RoleDigitalOutput:
		return board.DigitalOutput
	case RoleAnalogueInput:
		return board.AnalogueInput
	default:
		return board.PWM
	}
}

// Entry is the claim record of one logical pin.
type Entry struct {
	Capability board.Capability
	Enabled    bool
	Mode       Mode
	Direction  Direction
	Pullup     bool
}

// Role derives the role an enabled entry currently holds.
func (e Entry) Role() Role {
	switch {
	case e.Mode == ModeDigital && e.Direction == Input:
		return RoleDigitalInput
	case e.Mode == ModeDigital:
		return RoleDigitalOutput
	case e.Direction == Input:
		return RoleAnalogueInput
	default:
		return RolePWMOutput
	}
}

// Claim is a request to enable a pin for a role.
type Claim struct {
	Role   Role
	Pullup bool // digital input only
}

type Outcome uint8

const (
	Accepted Outcome = iota
	RejectedCapability
	RejectedConflict
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case RejectedCapability:
		return "rejected_capability"
	default:
		return "rejected_conflict"
	}
}

// Table holds one Entry per logical pin and the state buffers.
type Table struct {
	b         *board.Board
	entries   []Entry
	digital   []byte
	analogue  []byte
	anaSlot   []int // logical pin -> analogue slot, -1 if none
	analogMap []byte
}

// New sizes a table for b with every pin unclaimed.
func New(b *board.Board) *Table {
	t := &Table{
		b:         b,
		entries:   make([]Entry, b.NumPins()),
		digital:   make([]byte, (b.NumPins()+7)/8),
		analogue:  make([]byte, b.NumAnalogue()*2),
		anaSlot:   make([]int, b.NumPins()),
		analogMap: b.AnalogueMap(),
	}
	for i := range t.anaSlot {
		t.anaSlot[i] = -1
	}
	for slot, pin := range t.analogMap {
		t.anaSlot[pin] = slot
	}
	t.Reset()
	return t
}

// Reset returns every entry to the unclaimed default and zeroes the buffers.
func (t *Table) Reset() {
	for i := range t.entries {
		t.entries[i] = Entry{Capability: t.b.Capability(i)}
	}
	clear(t.digital)
	clear(t.analogue)
}

func (t *Table) Board() *board.Board { return t.b }

// Len is the number of logical pins.
func (t *Table) Len() int { return len(t.entries) }

// Entry returns a copy of the record for pin; ok is false when out of range.
func (t *Table) Entry(pin int) (Entry, bool) {
	if pin < 0 || pin >= len(t.entries) {
		return Entry{}, false
	}
	return t.entries[pin], true
}

// TryClaim enables pin for c.Role if the board permits it and the pin is free
// or already held in the same role. A rejected claim leaves the table
// untouched.
func (t *Table) TryClaim(pin int, c Claim) Outcome {
	e, ok := t.Entry(pin)
	if !ok || !e.Capability.Has(c.Role.capability()) {
		return RejectedCapability
	}
	if e.Enabled && e.Role() != c.Role {
		return RejectedConflict
	}
	e.Enabled = true
	switch c.Role {
	case RoleDigitalInput:
		e.Mode, e.Direction, e.Pullup = ModeDigital, Input, c.Pullup
	case RoleDigitalOutput:
		e.Mode, e.Direction, e.Pullup = ModeDigital, Output, false
	case RoleAnalogueInput:
		e.Mode, e.Direction, e.Pullup = ModeAnalogue, Input, false
	case RolePWMOutput:
		e.Mode, e.Direction, e.Pullup = ModeAnalogue, Output, false
	}
	t.entries[pin] = e
	return Accepted
}

// SetDigital records the last known logical level of pin.
func (t *Table) SetDigital(pin int, level bool) {
	if pin < 0 || pin >= len(t.entries) {
		return
	}
	i, bit := pin/8, byte(1)<<(pin%8)
	if level {
		t.digital[i] |= bit
	} else {
		t.digital[i] &^= bit
	}
}

// Digital reports the recorded level of pin.
func (t *Table) Digital(pin int) bool {
	if pin < 0 || pin >= len(t.entries) {
		return false
	}
	return t.digital[pin/8]&(1<<(pin%8)) != 0
}

// AnalogueSlot returns the analogue slot index of pin.
func (t *Table) AnalogueSlot(pin int) (int, bool) {
	if pin < 0 || pin >= len(t.anaSlot) || t.anaSlot[pin] < 0 {
		return 0, false
	}
	return t.anaSlot[pin], true
}

// SetAnalogue stores a reading for an analogue-capable pin, little-endian.
func (t *Table) SetAnalogue(pin int, v uint16) {
	slot, ok := t.AnalogueSlot(pin)
	if !ok {
		return
	}
	binary.LittleEndian.PutUint16(t.analogue[slot*2:], v)
}

// Analogue returns the stored reading of pin.
func (t *Table) Analogue(pin int) uint16 {
	slot, ok := t.AnalogueSlot(pin)
	if !ok {
		return 0
	}
	return binary.LittleEndian.Uint16(t.analogue[slot*2:])
}

// Bitmaps exposes the live state buffers. Callers must not retain them past
// the critical section they were obtained in.
func (t *Table) Bitmaps() (digital, analogue []byte) { return t.digital, t.analogue }

// AnalogueMap is the static list of analogue-capable logical pins.
func (t *Table) AnalogueMap() []byte { return t.analogMap }
