// Package protocol holds the expander wire format: opcode values, frame
// layouts and the decoded command variants.
package protocol

// Opcode is the first byte of every frame sent by the controller.
type Opcode uint8

// Opcode and status byte values. Both sides agree on these out of band.
const (
	OpInit          Opcode = 0xE0 // EXIOINIT
	StatusReady     byte   = 0xE1 // EXIORDY
	OpSetPullup     Opcode = 0xE2 // EXIODPUP
	OpGetVersion    Opcode = 0xE3 // EXIOVER
	OpReadAnalogue  Opcode = 0xE4 // EXIORDAN
	OpWriteDigital  Opcode = 0xE5 // EXIOWRD
	OpReadDigital   Opcode = 0xE6 // EXIORDD
	OpEnableAnalog  Opcode = 0xE7 // EXIOENAN
	OpInitAnalogMap Opcode = 0xE8 // EXIOINITA
	PinCountsMarker byte   = 0xE9 // EXIOPINS
	OpWriteAnalogue Opcode = 0xEA // EXIOWRAN
	StatusError     byte   = 0xEF // EXIOERR
)

// Exact frame lengths, opcode byte included.
const (
	LenInit          = 4
	LenInitAnalogMap = 1
	LenSetPullup     = 3
	LenReadAnalogue  = 1
	LenWriteDigital  = 3
	LenReadDigital   = 1
	LenGetVersion    = 1
	LenEnableAnalog  = 2
	LenWriteAnalogue = 7
)

// Response sizes that do not depend on the board.
const (
	InitResponseLen    = 3
	VersionResponseLen = 3
	StatusResponseLen  = 1
	AnalogueSlotBytes  = 2
)

func (o Opcode) String() string {
	switch o {
	case OpInit:
		return "EXIOINIT"
	case OpSetPullup:
		return "EXIODPUP"
	case OpGetVersion:
		return "EXIOVER"
	case OpReadAnalogue:
		return "EXIORDAN"
	case OpWriteDigital:
		return "EXIOWRD"
	case OpReadDigital:
		return "EXIORDD"
	case OpEnableAnalog:
		return "EXIOENAN"
	case OpInitAnalogMap:
		return "EXIOINITA"
	case OpWriteAnalogue:
		return "EXIOWRAN"
	default:
		return "unknown"
	}
}

// FrameLen reports the exact frame length for o. ok is false for opcodes
// the device does not implement.
func FrameLen(o Opcode) (n int, ok bool) {
	switch o {
	case OpInit:
		return LenInit, true
	case OpInitAnalogMap:
		return LenInitAnalogMap, true
	case OpSetPullup:
		return LenSetPullup, true
	case OpReadAnalogue:
		return LenReadAnalogue, true
	case OpWriteDigital:
		return LenWriteDigital, true
	case OpReadDigital:
		return LenReadDigital, true
	case OpGetVersion:
		return LenGetVersion, true
	case OpEnableAnalog:
		return LenEnableAnalog, true
	case OpWriteAnalogue:
		return LenWriteAnalogue, true
	}
	return 0, false
}

// HasStatusResponse reports whether o is answered with a single ready/error
// byte.
func HasStatusResponse(o Opcode) bool {
	switch o {
	case OpSetPullup, OpWriteDigital, OpEnableAnalog, OpWriteAnalogue:
		return true
	}
	return false
}
