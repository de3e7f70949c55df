package engine

import "exio-go/protocol"

// PendingKind selects which payload the next poll serialises.
type PendingKind uint8

const (
	PendingNone PendingKind = iota
	PendingInit
	PendingAnalogueMap
	PendingAnalogueStates
	PendingDigitalStates
	PendingVersion
	PendingStatus
)

func (k PendingKind) String() string {
	switch k {
	case PendingInit:
		return "init"
	case PendingAnalogueMap:
		return "analogue_map"
	case PendingAnalogueStates:
		return "analogue_states"
	case PendingDigitalStates:
		return "digital_states"
	case PendingVersion:
		return "version"
	case PendingStatus:
		return "status"
	}
	return "none"
}

// Pending is the one-slot response mailbox. Only the dispatcher writes it and
// only the producer reads it. State-backed kinds are serialised from the live
// table at poll time; Status carries its byte inline.
type Pending struct {
	Kind   PendingKind
	Op     protocol.Opcode // command that armed the response
	Status byte            // PendingStatus only
}

func ready(op protocol.Opcode) Pending {
	return Pending{Kind: PendingStatus, Op: op, Status: protocol.StatusReady}
}

func failed(op protocol.Opcode) Pending {
	return Pending{Kind: PendingStatus, Op: op, Status: protocol.StatusError}
}

func status(op protocol.Opcode, ok bool) Pending {
	if ok {
		return ready(op)
	}
	return failed(op)
}
