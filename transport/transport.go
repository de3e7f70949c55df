// Package transport connects the engine to an I2C bus. The MCU build serves
// the RP2040 controller in target mode; host builds use Loopback, an
// in-process tinygo drivers.I2C that delivers transactions straight to the
// engine.
package transport

import (
	"errors"
	"sync"

	"tinygo.org/x/drivers"
)

// Handler is the pair of bus callbacks. Receive runs for a controller write,
// Request for a controller read; the bus never runs them concurrently.
type Handler interface {
	Receive(frame []byte)
	Request(dst []byte) []byte
}

// DefaultAddress is the expander's default 7-bit target address.
const DefaultAddress = 0x65

var ErrNack = errors.New("nack")

// Loopback is a host-side drivers.I2C with one target attached.
type Loopback struct {
	mu   sync.Mutex
	addr uint16
	h    Handler
	out  []byte

	// Short counts reads where the target supplied fewer bytes than asked.
	Short int
}

var _ drivers.I2C = (*Loopback)(nil)

func NewLoopback(addr uint16, h Handler) *Loopback {
	return &Loopback{addr: addr, h: h, out: make([]byte, 0, 64)}
}

// Tx performs a write then a read, each phase skipped when empty. Bytes the
// target does not supply read as zero.
func (l *Loopback) Tx(addr uint16, w, r []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if addr != l.addr {
		return ErrNack
	}
	if len(w) > 0 {
		l.h.Receive(w)
	}
	if len(r) > 0 {
		l.out = l.h.Request(l.out[:0])
		n := copy(r, l.out)
		if n < len(r) {
			l.Short++
			clear(r[n:])
		}
	}
	return nil
}
