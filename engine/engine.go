// Package engine is the expander's protocol core: the command dispatcher
// (Receive), the response producer (Request) and the pin state they share.
//
// On the MCU the bus controller never runs receive and request callbacks
// concurrently. Engine still serialises both, and the input sampler, behind
// one mutex so hosts and tests get the same atomicity.
package engine

import (
	"context"
	"sync"
	"time"

	"exio-go/board"
	"exio-go/diag"
	"exio-go/hal"
	"exio-go/pinstate"
)

// Analogue is the collaborator behind ENABLE_ANALOG_INPUT and
// WRITE_ANALOG_OUTPUT. It is called with the engine lock held and must claim
// pins through tb. A false return is answered with the error status.
type Analogue interface {
	EnableAnalogue(tb *pinstate.Table, pin int) bool
	WriteAnalogue(tb *pinstate.Table, pin int, value uint16, profile uint8, duration uint16) bool
}

// resetter is implemented by collaborators holding per-pin work that must
// stop when the controller re-initialises the device.
type resetter interface{ Reset() }

// State is the device-level record. Pin counts are fixed at boot.
type State struct {
	SetupComplete bool
	FirstVpin     uint16
	NumDigital    uint8
	NumAnalogue   uint8
	NumPWM        uint8
}

// Options wires the engine's collaborators. Board and IO are required.
type Options struct {
	Board    *board.Board
	IO       hal.PinIO
	Analogue Analogue
	Log      *diag.Logger
	// Display is called once after each successful INIT.
	Display func(b *board.Board, firstVpin uint16)
	Version [3]byte
}

type Engine struct {
	mu      sync.Mutex
	st      State
	tb      *pinstate.Table
	pending Pending

	b       *board.Board
	io      hal.PinIO
	ana     Analogue
	log     *diag.Logger
	display func(*board.Board, uint16)
	version [3]byte
}

func New(o Options) *Engine {
	log := o.Log
	if log == nil {
		log = diag.Discard()
	}
	return &Engine{
		st: State{
			NumDigital:  uint8(o.Board.NumDigital()),
			NumAnalogue: uint8(o.Board.NumAnalogue()),
			NumPWM:      uint8(o.Board.NumPWM()),
		},
		tb:      pinstate.New(o.Board),
		b:       o.Board,
		io:      o.IO,
		ana:     o.Analogue,
		log:     log,
		display: o.Display,
		version: o.Version,
	}
}

// State returns a copy of the device record.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st
}

// Pending returns the currently armed response.
func (e *Engine) Pending() Pending {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

// Entry returns a copy of one pin's claim record.
func (e *Engine) Entry(pin int) (pinstate.Entry, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tb.Entry(pin)
}

// Sample refreshes the state buffers from hardware for every enabled input
// pin. Output pins keep the value last written by the controller.
func (e *Engine) Sample() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for pin := 0; pin < e.tb.Len(); pin++ {
		ent, _ := e.tb.Entry(pin)
		if !ent.Enabled || ent.Direction != pinstate.Input {
			continue
		}
		phys := e.b.PhysicalPin(pin)
		switch ent.Mode {
		case pinstate.ModeDigital:
			e.tb.SetDigital(pin, e.io.ReadDigital(phys))
		case pinstate.ModeAnalogue:
			e.tb.SetAnalogue(pin, e.io.ReadAnalogue(phys))
		}
	}
}

// Run samples inputs every period until ctx is done.
func (e *Engine) Run(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = 10 * time.Millisecond
	}
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			e.Sample()
		}
	}
}
