package engine

import (
	"exio-go/errcode"
	"exio-go/hal"
	"exio-go/pinstate"
	"exio-go/protocol"
)

type handler func(e *Engine, c protocol.Command) Pending

func on[C protocol.Command](h func(*Engine, C) Pending) handler {
	return func(e *Engine, c protocol.Command) Pending { return h(e, c.(C)) }
}

// routes is the opcode dispatch table. Frame validation happens in
// protocol.Decode before a handler is looked up.
var routes = map[protocol.Opcode]handler{
	protocol.OpInit:          on((*Engine).handleInit),
	protocol.OpInitAnalogMap: on((*Engine).handleInitAnalogMap),
	protocol.OpSetPullup:     on((*Engine).handleSetPullup),
	protocol.OpReadAnalogue:  on((*Engine).handleReadAnalogue),
	protocol.OpWriteDigital:  on((*Engine).handleWriteDigital),
	protocol.OpReadDigital:   on((*Engine).handleReadDigital),
	protocol.OpGetVersion:    on((*Engine).handleGetVersion),
	protocol.OpEnableAnalog:  on((*Engine).handleEnableAnalogue),
	protocol.OpWriteAnalogue: on((*Engine).handleWriteAnalogue),
}

// Receive is the command dispatcher: it consumes one inbound frame.
// Errors never escape; they become diagnostics and, for status opcodes, an
// armed error byte.
func (e *Engine) Receive(frame []byte) {
	if len(frame) == 0 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd, err := protocol.Decode(frame)
	if err != nil {
		e.rejectFrame(protocol.Opcode(frame[0]), err)
		return
	}
	e.pending = routes[cmd.Opcode()](e, cmd)
}

func (e *Engine) rejectFrame(op protocol.Opcode, err error) {
	if errcode.Of(err) == errcode.UnknownOpcode {
		e.log.Debugf("unknown opcode 0x%02X ignored", uint8(op))
		return
	}
	e.log.Debugf("%s received with incorrect number of bytes", op)
	if protocol.HasStatusResponse(op) {
		e.pending = failed(op)
	}
}

func (e *Engine) handleInit(c protocol.Init) Pending {
	e.tb.Reset()
	if r, ok := e.ana.(resetter); ok {
		r.Reset()
	}
	if int(c.PinCount) != e.tb.Len() {
		e.log.Errorf("Invalid pin count sent by device driver!: %d", c.PinCount)
		e.st.SetupComplete = false
		return Pending{Kind: PendingInit, Op: protocol.OpInit}
	}
	e.st.FirstVpin = c.FirstVpin
	e.st.SetupComplete = true
	e.log.Printf("Received correct pin count: %d, starting at Vpin: %d", c.PinCount, c.FirstVpin)
	if e.display != nil {
		e.display(e.b, c.FirstVpin)
	}
	return Pending{Kind: PendingInit, Op: protocol.OpInit}
}

func (e *Engine) handleInitAnalogMap(protocol.InitAnalogMap) Pending {
	return Pending{Kind: PendingAnalogueMap, Op: protocol.OpInitAnalogMap}
}

func (e *Engine) handleReadAnalogue(protocol.ReadAnalogue) Pending {
	return Pending{Kind: PendingAnalogueStates, Op: protocol.OpReadAnalogue}
}

func (e *Engine) handleReadDigital(protocol.ReadDigital) Pending {
	return Pending{Kind: PendingDigitalStates, Op: protocol.OpReadDigital}
}

func (e *Engine) handleGetVersion(protocol.GetVersion) Pending {
	return Pending{Kind: PendingVersion, Op: protocol.OpGetVersion}
}

func (e *Engine) handleSetPullup(c protocol.SetPullup) Pending {
	pin := int(c.Pin)
	if err := e.claim(pin, pinstate.Claim{Role: pinstate.RoleDigitalInput, Pullup: c.Pullup}); err != nil {
		return failed(protocol.OpSetPullup)
	}
	mode := hal.ModeInput
	if c.Pullup {
		mode = hal.ModeInputPullup
	}
	e.io.SetMode(e.b.PhysicalPin(pin), mode)
	return ready(protocol.OpSetPullup)
}

func (e *Engine) handleWriteDigital(c protocol.WriteDigital) Pending {
	pin := int(c.Pin)
	if err := e.claim(pin, pinstate.Claim{Role: pinstate.RoleDigitalOutput}); err != nil {
		return failed(protocol.OpWriteDigital)
	}
	phys := e.b.PhysicalPin(pin)
	e.io.SetMode(phys, hal.ModeOutput)
	e.tb.SetDigital(pin, c.State)
	e.io.WriteDigital(phys, c.State)
	return ready(protocol.OpWriteDigital)
}

func (e *Engine) handleEnableAnalogue(c protocol.EnableAnalogue) Pending {
	ok := e.ana != nil && e.ana.EnableAnalogue(e.tb, int(c.Pin))
	if !ok {
		e.log.Debugf("%v: pin %d", errcode.DelegateRejected, c.Pin)
	}
	return status(protocol.OpEnableAnalog, ok)
}

func (e *Engine) handleWriteAnalogue(c protocol.WriteAnalogue) Pending {
	ok := e.ana != nil && e.ana.WriteAnalogue(e.tb, int(c.Pin), c.Value, c.Profile, c.Duration)
	if !ok {
		e.log.Debugf("%v: pin %d", errcode.DelegateRejected, c.Pin)
	}
	return status(protocol.OpWriteAnalogue, ok)
}

// claim runs a table claim and reports rejections as errcode values after
// logging them.
func (e *Engine) claim(pin int, c pinstate.Claim) error {
	if pin < 0 || pin >= e.tb.Len() {
		e.log.Errorf("pin %s cannot be used as a %s pin", e.b.Label(pin), c.Role)
		return errcode.UnknownPin
	}
	switch e.tb.TryClaim(pin, c) {
	case pinstate.Accepted:
		return nil
	case pinstate.RejectedCapability:
		e.log.Errorf("pin %s not capable of %s", e.b.Label(pin), c.Role)
		return errcode.CapabilityMismatch
	default:
		e.log.Errorf("pin %s already in use, cannot use as a %s pin", e.b.Label(pin), c.Role)
		return errcode.PinConflict
	}
}
