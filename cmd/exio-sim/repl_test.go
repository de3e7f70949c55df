package main

import (
	"bytes"
	"strings"
	"testing"

	"exio-go/board"
)

func runScript(t *testing.T, script string) string {
	t.Helper()
	var out bytes.Buffer
	s := newSim(board.Nano, 0x65, &out, false, [3]byte{0, 1, 0})
	if err := s.Run(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestREPL_Session(t *testing.T) {
	out := runScript(t, `
# bring up and exercise a few pins
init 18 800
version
write 1 1
pullup 2 1
drive 4 0
sample
read
enable 12
adc 14 512
sample
readan
quit
write 1 0
`)
	for _, want := range []string{
		"digital=16 analogue=6",
		"800 => 2(din|dout)",
		"version 0.1.0",
		"010000000000000000", // D3 high, D4 sampled low
		"[512 0 0 0 0 0]",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestREPL_ErrorsAreReported(t *testing.T) {
	out := runScript(t, `
pullup 16 1
write 'x' 1
frobnicate
raw e5 03
`)
	for _, want := range []string{
		"device rejected command",
		"invalid syntax",
		`unknown command "frobnicate"`,
		"EF",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestRootCommandsRegistered(t *testing.T) {
	root := rootCmd()
	for _, name := range []string{"repl", "map", "boards"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Fatalf("command %q not found: %v", name, err)
		}
	}
}
