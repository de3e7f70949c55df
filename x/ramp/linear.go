package ramp

import (
	"time"

	"exio-go/x/mathx"
)

// Step sets the new level in [0..top].
type Step func(level uint16)

// Tick waits for d and reports whether to continue (false => cancelled).
type Tick func(d time.Duration) bool

// Linear runs a synchronous (caller-driven) integer ramp from cur to to.
// Call it from a goroutine and provide Tick to handle timing & cancellation.
// steps==0 or d==0 snaps to 'to'. It reports false if cancelled.
func Linear(cur, to, top uint16, d time.Duration, steps uint16, tick Tick, set Step) bool {
	to = mathx.Min(to, top)
	if steps == 0 || d <= 0 {
		set(to)
		return true
	}
	delta := int32(to) - int32(cur)
	st := int32(steps)
	acc := int32(0)
	cur32 := int32(cur)
	stepDur := mathx.Max(d/time.Duration(steps), time.Millisecond)

	for i := uint16(1); i < steps; i++ {
		if !tick(stepDur) {
			return false
		}
		acc += delta
		inc := acc / st
		if inc != 0 {
			acc -= inc * st
			cur32 = mathx.Clamp(cur32+inc, 0, int32(top))
			set(uint16(cur32))
		}
	}
	if !tick(stepDur) {
		return false
	}
	set(to)
	return true
}

// BounceSegments is the number of linear segments in a Bounce.
const BounceSegments = 7

// bounce keyframes as per-mille of the travel distance.
var bounce = [BounceSegments]int32{1000, 1250, 900, 1100, 970, 1030, 1000}

// Bounce moves to 'to' overshooting and settling, like a semaphore arm.
// Each keyframe segment is a Linear ramp of d/len(keyframes).
func Bounce(cur, to, top uint16, d time.Duration, stepsPerSeg uint16, tick Tick, set Step) bool {
	to = mathx.Min(to, top)
	seg := d / BounceSegments
	from := cur
	span := int32(to) - int32(cur)
	for _, k := range bounce {
		tgt := uint16(mathx.Clamp(int32(cur)+span*k/1000, 0, int32(top)))
		if !Linear(from, tgt, top, seg, stepsPerSeg, tick, set) {
			return false
		}
		from = tgt
	}
	return true
}
