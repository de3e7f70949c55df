package engine

import "exio-go/protocol"

// Request is the response producer: it appends the armed response to dst and
// returns the result. An unset response yields dst unchanged. Repeated polls
// without an intervening command return the same payload.
func (e *Engine) Request(dst []byte) []byte {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.pending.Kind {
	case PendingInit:
		if !e.st.SetupComplete {
			return append(dst, 0, 0, 0)
		}
		return append(dst, protocol.PinCountsMarker, e.st.NumDigital, e.st.NumAnalogue)
	case PendingAnalogueMap:
		return append(dst, e.tb.AnalogueMap()...)
	case PendingAnalogueStates:
		_, a := e.tb.Bitmaps()
		return append(dst, a...)
	case PendingDigitalStates:
		d, _ := e.tb.Bitmaps()
		return append(dst, d...)
	case PendingVersion:
		return append(dst, e.version[:]...)
	case PendingStatus:
		return append(dst, e.pending.Status)
	}
	return dst
}
