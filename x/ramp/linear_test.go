package ramp

import (
	"testing"
	"time"
)

func collect() (*[]uint16, Step) {
	var got []uint16
	return &got, func(l uint16) { got = append(got, l) }
}

func TestLinear_SnapWhenNoSteps(t *testing.T) {
	got, set := collect()
	ok := Linear(0, 5000, 4095, time.Second, 0, func(time.Duration) bool { return true }, set)
	if !ok || len(*got) != 1 || (*got)[0] != 4095 {
		t.Fatalf("got %v ok=%v", *got, ok)
	}
}

func TestLinear_MonotonicAndEndsOnTarget(t *testing.T) {
	got, set := collect()
	ticks := 0
	var waited time.Duration
	tick := func(d time.Duration) bool { ticks++; waited += d; return true }
	if !Linear(100, 1100, 4095, time.Second, 10, tick, set) {
		t.Fatal("unexpected cancel")
	}
	if ticks != 10 || waited != time.Second {
		t.Fatalf("ticks=%d waited=%v", ticks, waited)
	}
	levels := *got
	if levels[len(levels)-1] != 1100 {
		t.Fatalf("last=%d", levels[len(levels)-1])
	}
	for i := 1; i < len(levels); i++ {
		if levels[i] < levels[i-1] {
			t.Fatalf("not monotonic: %v", levels)
		}
	}
}

func TestLinear_Cancel(t *testing.T) {
	got, set := collect()
	n := 0
	tick := func(time.Duration) bool { n++; return n < 3 }
	if Linear(0, 1000, 4095, time.Second, 10, tick, set) {
		t.Fatal("expected cancel")
	}
	for _, l := range *got {
		if l == 1000 {
			t.Fatal("cancelled ramp must not reach target")
		}
	}
}

func TestBounce_OvershootsThenSettles(t *testing.T) {
	got, set := collect()
	if !Bounce(0, 1000, 4095, 700*time.Millisecond, 4, func(time.Duration) bool { return true }, set) {
		t.Fatal("unexpected cancel")
	}
	peak := uint16(0)
	for _, l := range *got {
		if l > peak {
			peak = l
		}
	}
	if peak != 1250 {
		t.Fatalf("peak=%d", peak)
	}
	if last := (*got)[len(*got)-1]; last != 1000 {
		t.Fatalf("last=%d", last)
	}
}
