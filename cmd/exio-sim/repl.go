package main

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"exio-go/board"
	"exio-go/diag"
	"exio-go/display"
	"exio-go/engine"
	"exio-go/hal"
	"exio-go/hostlink"
	"exio-go/services/analogue"
	"exio-go/transport"

	"github.com/google/shlex"
)

var errQuit = errors.New("quit")

// sim is one simulated expander with a controller attached over Loopback.
type sim struct {
	b      *board.Board
	io     *hal.HostIO
	eng    *engine.Engine
	bus    *transport.Loopback
	client *hostlink.Client
	log    *diag.Logger
	out    io.Writer
	addr   uint16
}

func newSim(b *board.Board, addr uint16, out io.Writer, diagOn bool, version [3]byte) *sim {
	log := diag.New(out, diagOn)
	hio := hal.NewHostIO()
	eng := engine.New(engine.Options{
		Board:    b,
		IO:       hio,
		Analogue: analogue.New(b, hio, log),
		Log:      log,
		Display:  func(b *board.Board, v uint16) { display.VpinMap(log.Writer(), b, v) },
		Version:  version,
	})
	bus := transport.NewLoopback(addr, eng)
	return &sim{
		b:      b,
		io:     hio,
		eng:    eng,
		bus:    bus,
		client: hostlink.New(bus, addr),
		log:    log,
		out:    out,
		addr:   addr,
	}
}

const helpText = `commands:
  init [count] [vpin]          send EXIOINIT (count defaults to the board total)
  map                          read the analogue pin map
  version                      read the firmware version
  pullup <pin> <0|1>           configure a digital input
  write <pin> <0|1>            drive a digital output
  read                         read the digital state bitmap
  enable <pin>                 enable an analogue input
  analogue <pin> <value> [profile] [duration]
  readan                       read analogue inputs
  drive <physical> <0|1>       set a simulated input level
  adc <physical> <value>       set a simulated analogue reading
  sample                       refresh inputs now
  raw <hex>                    send a raw frame and show the reply
  diag <on|off>                toggle diagnostics
  quit
`

// Run reads commands from r until EOF or quit.
func (s *sim) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		args, err := shlex.Split(sc.Text())
		if err != nil {
			fmt.Fprintf(s.out, "parse error: %v\n", err)
			continue
		}
		if len(args) == 0 || strings.HasPrefix(args[0], "#") {
			continue
		}
		err = s.exec(args)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
	return sc.Err()
}

func (s *sim) exec(args []string) error {
	n := func(i int) (int, error) {
		if i >= len(args) {
			return 0, fmt.Errorf("%s: missing argument %d", args[0], i)
		}
		return strconv.Atoi(args[i])
	}
	opt := func(i, def int) (int, error) {
		if i >= len(args) {
			return def, nil
		}
		return n(i)
	}

	switch args[0] {
	case "help", "?":
		fmt.Fprint(s.out, helpText)
	case "quit", "exit":
		return errQuit
	case "init":
		count, err := opt(1, s.b.NumPins())
		if err != nil {
			return err
		}
		vpin, err := opt(2, 0)
		if err != nil {
			return err
		}
		inv, err := s.client.Init(uint8(count), uint16(vpin))
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "digital=%d analogue=%d\n", inv.NumDigital, inv.NumAnalogue)
	case "map":
		m, err := s.client.AnalogueMap()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "analogue pins: %v\n", m)
	case "version":
		v, err := s.client.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "version %d.%d.%d\n", v[0], v[1], v[2])
	case "pullup", "write":
		pin, err := n(1)
		if err != nil {
			return err
		}
		lvl, err := n(2)
		if err != nil {
			return err
		}
		if args[0] == "pullup" {
			err = s.client.SetPullup(uint8(pin), lvl != 0)
		} else {
			err = s.client.WriteDigital(uint8(pin), lvl != 0)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, "ok")
	case "read":
		bm, err := s.client.ReadDigital()
		if err != nil {
			return err
		}
		var sb strings.Builder
		for pin := 0; pin < s.b.NumPins(); pin++ {
			if hostlink.Bit(bm, pin) {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		fmt.Fprintf(s.out, "%s\n", sb.String())
	case "enable":
		pin, err := n(1)
		if err != nil {
			return err
		}
		if err := s.client.EnableAnalogue(uint8(pin)); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "ok")
	case "analogue":
		pin, err := n(1)
		if err != nil {
			return err
		}
		val, err := n(2)
		if err != nil {
			return err
		}
		prof, err := opt(3, int(analogue.Instant))
		if err != nil {
			return err
		}
		dur, err := opt(4, 0)
		if err != nil {
			return err
		}
		if err := s.client.WriteAnalogue(uint8(pin), uint16(val), uint8(prof), uint16(dur)); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "ok")
	case "readan":
		vals, err := s.client.ReadAnalogue()
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "%v\n", vals)
	case "drive":
		phys, err := n(1)
		if err != nil {
			return err
		}
		lvl, err := n(2)
		if err != nil {
			return err
		}
		s.io.Drive(phys, lvl != 0)
	case "adc":
		phys, err := n(1)
		if err != nil {
			return err
		}
		v, err := n(2)
		if err != nil {
			return err
		}
		s.io.DriveAnalogue(phys, uint16(v))
	case "sample":
		s.eng.Sample()
	case "raw":
		frame, err := hex.DecodeString(strings.Join(args[1:], ""))
		if err != nil {
			return err
		}
		if err := s.bus.Tx(s.addr, frame, nil); err != nil {
			return err
		}
		// Poll the engine directly so the reply length is visible.
		fmt.Fprintf(s.out, "% X\n", s.eng.Request(nil))
	case "diag":
		s.log.SetEnabled(len(args) > 1 && args[1] == "on")
	default:
		return fmt.Errorf("unknown command %q (try help)", args[0])
	}
	return nil
}
