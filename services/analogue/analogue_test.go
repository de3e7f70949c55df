package analogue

import (
	"math"
	"sync"
	"testing"
	"time"

	"exio-go/board"
	"exio-go/hal"
	"exio-go/pinstate"
)

// ---- fakes ----

// noPWM implements only hal.PinIO.
type noPWM struct{ modes map[int]hal.Mode }

func (n *noPWM) SetMode(p int, m hal.Mode) { n.modes[p] = m }
func (n *noPWM) WriteDigital(int, bool)    {}
func (n *noPWM) ReadDigital(int) bool      { return false }
func (n *noPWM) ReadAnalogue(int) uint16   { return 0 }

// gatedPWM holds its first WritePWM until release is closed.
type gatedPWM struct {
	*hal.HostIO
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedPWM) WritePWM(p int, l uint16) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	g.HostIO.WritePWM(p, l)
}

func immediate(time.Duration) <-chan time.Time {
	c := make(chan time.Time, 1)
	c <- time.Time{}
	return c
}

func newService(t *testing.T) (*Service, *hal.HostIO, *pinstate.Table) {
	t.Helper()
	io := hal.NewHostIO()
	s := New(board.Nano, io, nil)
	s.after = immediate
	return s, io, pinstate.New(board.Nano)
}

// ---- tests ----

func TestEnableAnalogue(t *testing.T) {
	s, io, tb := newService(t)
	if !s.EnableAnalogue(tb, 16) { // A6
		t.Fatal("A6 should accept analogue input")
	}
	if p, _ := io.Get(20); p.Mode != hal.ModeAnalogue {
		t.Fatalf("physical 20 mode=%v", p.Mode)
	}
	if !s.EnableAnalogue(tb, 16) {
		t.Fatal("re-enable should be idempotent")
	}
	if s.EnableAnalogue(tb, 0) {
		t.Fatal("D2 has no ADC")
	}
	tb.TryClaim(12, pinstate.Claim{Role: pinstate.RoleDigitalInput})
	if s.EnableAnalogue(tb, 12) {
		t.Fatal("A0 held as digital input must be rejected")
	}
}

func TestWriteAnalogue_InstantSetsLevel(t *testing.T) {
	s, io, tb := newService(t)
	if !s.WriteAnalogue(tb, 1, 2048, Instant, 0) { // D3
		t.Fatal("rejected")
	}
	p, _ := io.Get(3)
	if p.Mode != hal.ModePWM || p.PWM != 2048 {
		t.Fatalf("pin=%+v", p)
	}
	if s.Level(1) != 2048 || s.Busy(1) {
		t.Fatal("instant write should not leave a ramp running")
	}
	if e, _ := tb.Entry(1); !e.Enabled || e.Role() != pinstate.RolePWMOutput {
		t.Fatalf("entry %+v", e)
	}
}

func TestWriteAnalogue_ClampsValue(t *testing.T) {
	s, io, tb := newService(t)
	s.WriteAnalogue(tb, 1, 60000, Instant|NoPowerOff, 0)
	if p, _ := io.Get(3); p.PWM != hal.PWMTop {
		t.Fatalf("pwm=%d", p.PWM)
	}
}

func TestWriteAnalogue_RampReachesTarget(t *testing.T) {
	s, io, tb := newService(t)
	if !s.WriteAnalogue(tb, 3, 1000, Fast, 0) {
		t.Fatal("rejected")
	}
	s.Wait()
	if p, _ := io.Get(5); p.PWM != 1000 {
		t.Fatalf("pwm=%d", p.PWM)
	}
	if s.Busy(3) {
		t.Fatal("ramp should have finished")
	}

	if !s.WriteAnalogue(tb, 3, 200, Bounce, 3) {
		t.Fatal("bounce rejected")
	}
	s.Wait()
	if s.Level(3) != 200 {
		t.Fatalf("level=%d", s.Level(3))
	}
}

func TestWriteAnalogue_Rejections(t *testing.T) {
	s, _, tb := newService(t)
	if s.WriteAnalogue(tb, 0, 100, Instant, 0) {
		t.Fatal("D2 is not PWM capable")
	}
	if s.WriteAnalogue(tb, 1, 100, 9, 0) {
		t.Fatal("unknown profile accepted")
	}
	tb.TryClaim(3, pinstate.Claim{Role: pinstate.RoleDigitalOutput})
	if s.WriteAnalogue(tb, 3, 100, Instant, 0) {
		t.Fatal("pin held as digital output must be rejected")
	}

	bare := New(board.Nano, &noPWM{modes: map[int]hal.Mode{}}, nil)
	if bare.WriteAnalogue(pinstate.New(board.Nano), 1, 100, Instant, 0) {
		t.Fatal("backend without PWM must reject")
	}
}

func TestReset_CancelsRamps(t *testing.T) {
	io := hal.NewHostIO()
	s := New(board.Nano, io, nil)
	block := make(chan time.Time)
	s.after = func(time.Duration) <-chan time.Time { return block }
	tb := pinstate.New(board.Nano)

	s.WriteAnalogue(tb, 1, 4000, Slow, 0)
	if !s.Busy(1) {
		t.Fatal("ramp should be running")
	}
	s.Reset()
	done := make(chan struct{})
	go func() { s.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ramp goroutine did not exit after Reset")
	}
	if p, _ := io.Get(3); p.PWM == 4000 {
		t.Fatal("cancelled ramp reached its target")
	}
}

func TestStepsFor(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want uint16
	}{
		{0, 0},
		{10 * time.Millisecond, 0},
		{500 * time.Millisecond, 25},
		{1310 * time.Second, 65500},
		{13108 * DurationUnit, math.MaxUint16},
		{math.MaxUint16 * DurationUnit, math.MaxUint16},
	}
	for _, tc := range cases {
		if got := stepsFor(tc.d); got != tc.want {
			t.Fatalf("stepsFor(%v)=%d want %d", tc.d, got, tc.want)
		}
	}
}

func TestWriteAnalogue_LongDurationKeepsFineSteps(t *testing.T) {
	s, io, tb := newService(t)
	var (
		ticks int
		first time.Duration
	)
	s.after = func(d time.Duration) <-chan time.Time {
		if ticks == 0 {
			first = d
		}
		ticks++
		return immediate(d)
	}
	if !s.WriteAnalogue(tb, 1, 4000, Fast, 13108) {
		t.Fatal("rejected")
	}
	s.Wait()
	if ticks != math.MaxUint16 {
		t.Fatalf("ticks=%d", ticks)
	}
	if first < stepEvery || first > stepEvery+time.Millisecond {
		t.Fatalf("first step=%v", first)
	}
	if p, _ := io.Get(3); p.PWM != 4000 {
		t.Fatalf("pwm=%d", p.PWM)
	}
}

func TestWriteAnalogue_SupersededRampCannotOverwrite(t *testing.T) {
	io := &gatedPWM{
		HostIO:  hal.NewHostIO(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	s := New(board.Nano, io, nil)
	s.after = immediate
	tb := pinstate.New(board.Nano)

	if !s.WriteAnalogue(tb, 1, 4000, Fast, 0) {
		t.Fatal("ramp rejected")
	}
	select {
	case <-io.entered:
	case <-time.After(time.Second):
		t.Fatal("ramp never wrote")
	}

	done := make(chan bool)
	go func() { done <- s.WriteAnalogue(tb, 1, 7, Instant, 0) }()
	time.Sleep(10 * time.Millisecond)
	close(io.release)
	if !<-done {
		t.Fatal("instant write rejected")
	}
	s.Wait()

	if p, _ := io.Get(3); p.PWM != 7 || s.Level(1) != 7 {
		t.Fatalf("hardware pwm=%d level=%d, want 7", p.PWM, s.Level(1))
	}
}
