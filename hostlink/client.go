// Package hostlink is the controller side of the expander protocol. It drives
// any tinygo drivers.I2C: the Loopback transport on a host, or a real bus
// when one MCU controls another.
package hostlink

import (
	"encoding/binary"
	"errors"
	"sync"

	"exio-go/errcode"
	"exio-go/protocol"

	"tinygo.org/x/drivers"
)

var (
	// ErrRejected is returned when the device answers with the error status.
	ErrRejected = errors.New("device rejected command")
	// ErrNotInitialised is returned by calls that need the pin counts.
	ErrNotInitialised = errors.New("device not initialised")
)

// Inventory is the device's pin inventory reported on INIT.
type Inventory struct {
	NumDigital  uint8
	NumAnalogue uint8
}

// Client issues one command then polls its response, as the controller
// driver does. Calls are serialised.
type Client struct {
	bus  drivers.I2C
	addr uint16

	mu  sync.Mutex
	inv Inventory
	pin int // total pins sent on init
}

func New(bus drivers.I2C, addr uint16) *Client { return &Client{bus: bus, addr: addr} }

func (c *Client) write(cmd protocol.Command) error {
	return c.bus.Tx(c.addr, cmd.Append(nil), nil)
}

func (c *Client) poll(n int) ([]byte, error) {
	r := make([]byte, n)
	if err := c.bus.Tx(c.addr, nil, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *Client) status(cmd protocol.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(cmd); err != nil {
		return err
	}
	r, err := c.poll(protocol.StatusResponseLen)
	if err != nil {
		return err
	}
	switch r[0] {
	case protocol.StatusReady:
		return nil
	case protocol.StatusError:
		return ErrRejected
	}
	return errcode.New(errcode.MalformedFrame, cmd.Opcode().String(), "unexpected status byte")
}

// Init sends the pin count and vpin base. A device that disagrees with the
// pin count reports a zero inventory and Init returns ErrNotInitialised.
func (c *Client) Init(pinCount uint8, firstVpin uint16) (Inventory, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.write(protocol.Init{PinCount: pinCount, FirstVpin: firstVpin}); err != nil {
		return Inventory{}, err
	}
	r, err := c.poll(protocol.InitResponseLen)
	if err != nil {
		return Inventory{}, err
	}
	if r[0] != protocol.PinCountsMarker {
		c.inv, c.pin = Inventory{}, 0
		return Inventory{}, ErrNotInitialised
	}
	c.inv = Inventory{NumDigital: r[1], NumAnalogue: r[2]}
	c.pin = int(pinCount)
	return c.inv, nil
}

// AnalogueMap returns the logical ids of the device's analogue pins.
func (c *Client) AnalogueMap() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pin == 0 {
		return nil, ErrNotInitialised
	}
	if err := c.write(protocol.InitAnalogMap{}); err != nil {
		return nil, err
	}
	return c.poll(int(c.inv.NumAnalogue))
}

// Version returns major, minor, patch.
func (c *Client) Version() ([3]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var v [3]byte
	if err := c.write(protocol.GetVersion{}); err != nil {
		return v, err
	}
	r, err := c.poll(protocol.VersionResponseLen)
	if err != nil {
		return v, err
	}
	copy(v[:], r)
	return v, nil
}

func (c *Client) SetPullup(pin uint8, on bool) error {
	return c.status(protocol.SetPullup{Pin: pin, Pullup: on})
}

func (c *Client) WriteDigital(pin uint8, level bool) error {
	return c.status(protocol.WriteDigital{Pin: pin, State: level})
}

func (c *Client) EnableAnalogue(pin uint8) error {
	return c.status(protocol.EnableAnalogue{Pin: pin})
}

func (c *Client) WriteAnalogue(pin uint8, value uint16, profile uint8, duration uint16) error {
	return c.status(protocol.WriteAnalogue{Pin: pin, Value: value, Profile: profile, Duration: duration})
}

// ReadDigital returns the packed digital state bitmap, one bit per pin.
func (c *Client) ReadDigital() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pin == 0 {
		return nil, ErrNotInitialised
	}
	if err := c.write(protocol.ReadDigital{}); err != nil {
		return nil, err
	}
	return c.poll((c.pin + 7) / 8)
}

// ReadAnalogue returns one reading per analogue slot.
func (c *Client) ReadAnalogue() ([]uint16, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pin == 0 {
		return nil, ErrNotInitialised
	}
	if err := c.write(protocol.ReadAnalogue{}); err != nil {
		return nil, err
	}
	r, err := c.poll(int(c.inv.NumAnalogue) * protocol.AnalogueSlotBytes)
	if err != nil {
		return nil, err
	}
	out := make([]uint16, c.inv.NumAnalogue)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(r[i*2:])
	}
	return out, nil
}

// Bit reports the level of pin in a bitmap returned by ReadDigital.
func Bit(bitmap []byte, pin int) bool {
	if pin < 0 || pin/8 >= len(bitmap) {
		return false
	}
	return bitmap[pin/8]&(1<<(pin%8)) != 0
}
