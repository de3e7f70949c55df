package protocol

import (
	"encoding/binary"

	"exio-go/errcode"
)

// Command is a decoded controller frame. Each opcode has one concrete type.
type Command interface {
	Opcode() Opcode
	// Append encodes the command onto dst as a wire frame.
	Append(dst []byte) []byte
}

type Init struct {
	PinCount  uint8
	FirstVpin uint16
}

type InitAnalogMap struct{}

type SetPullup struct {
	Pin    uint8
	Pullup bool
}

type ReadAnalogue struct{}

type WriteDigital struct {
	Pin   uint8
	State bool
}

type ReadDigital struct{}

type GetVersion struct{}

type EnableAnalogue struct {
	Pin uint8
}

// WriteAnalogue carries a PWM/servo target. Duration is in units of 100ms.
type WriteAnalogue struct {
	Pin      uint8
	Value    uint16
	Profile  uint8
	Duration uint16
}

func (Init) Opcode() Opcode           { return OpInit }
func (InitAnalogMap) Opcode() Opcode  { return OpInitAnalogMap }
func (SetPullup) Opcode() Opcode      { return OpSetPullup }
func (ReadAnalogue) Opcode() Opcode   { return OpReadAnalogue }
func (WriteDigital) Opcode() Opcode   { return OpWriteDigital }
func (ReadDigital) Opcode() Opcode    { return OpReadDigital }
func (GetVersion) Opcode() Opcode     { return OpGetVersion }
func (EnableAnalogue) Opcode() Opcode { return OpEnableAnalog }
func (WriteAnalogue) Opcode() Opcode  { return OpWriteAnalogue }

func (c Init) Append(dst []byte) []byte {
	dst = append(dst, byte(OpInit), c.PinCount)
	return binary.LittleEndian.AppendUint16(dst, c.FirstVpin)
}
func (InitAnalogMap) Append(dst []byte) []byte { return append(dst, byte(OpInitAnalogMap)) }
func (c SetPullup) Append(dst []byte) []byte {
	return append(dst, byte(OpSetPullup), c.Pin, b2u(c.Pullup))
}
func (ReadAnalogue) Append(dst []byte) []byte { return append(dst, byte(OpReadAnalogue)) }
func (c WriteDigital) Append(dst []byte) []byte {
	return append(dst, byte(OpWriteDigital), c.Pin, b2u(c.State))
}
func (ReadDigital) Append(dst []byte) []byte { return append(dst, byte(OpReadDigital)) }
func (GetVersion) Append(dst []byte) []byte  { return append(dst, byte(OpGetVersion)) }
func (c EnableAnalogue) Append(dst []byte) []byte {
	return append(dst, byte(OpEnableAnalog), c.Pin)
}
func (c WriteAnalogue) Append(dst []byte) []byte {
	dst = append(dst, byte(OpWriteAnalogue), c.Pin)
	dst = binary.LittleEndian.AppendUint16(dst, c.Value)
	dst = append(dst, c.Profile)
	return binary.LittleEndian.AppendUint16(dst, c.Duration)
}

// Decode parses one frame. Lengths are exact: a frame that is too short or
// too long for its opcode yields errcode.MalformedFrame. An opcode the device
// does not implement yields errcode.UnknownOpcode.
func Decode(frame []byte) (Command, error) {
	if len(frame) == 0 {
		return nil, errcode.New(errcode.MalformedFrame, "decode", "empty frame")
	}
	op := Opcode(frame[0])
	want, ok := FrameLen(op)
	if !ok {
		return nil, errcode.UnknownOpcode
	}
	if len(frame) != want {
		return nil, errcode.New(errcode.MalformedFrame, op.String(), "incorrect number of bytes")
	}
	switch op {
	case OpInit:
		return Init{PinCount: frame[1], FirstVpin: binary.LittleEndian.Uint16(frame[2:4])}, nil
	case OpInitAnalogMap:
		return InitAnalogMap{}, nil
	case OpSetPullup:
		return SetPullup{Pin: frame[1], Pullup: frame[2] != 0}, nil
	case OpReadAnalogue:
		return ReadAnalogue{}, nil
	case OpWriteDigital:
		return WriteDigital{Pin: frame[1], State: frame[2] != 0}, nil
	case OpReadDigital:
		return ReadDigital{}, nil
	case OpGetVersion:
		return GetVersion{}, nil
	case OpEnableAnalog:
		return EnableAnalogue{Pin: frame[1]}, nil
	default: // OpWriteAnalogue
		return WriteAnalogue{
			Pin:      frame[1],
			Value:    binary.LittleEndian.Uint16(frame[2:4]),
			Profile:  frame[4],
			Duration: binary.LittleEndian.Uint16(frame[5:7]),
		}, nil
	}
}

func b2u(b bool) byte {
	if b {
		return 1
	}
	return 0
}
