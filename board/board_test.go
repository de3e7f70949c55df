package board

import (
	"bytes"
	"testing"

	"exio-go/errcode"
)

func TestNanoCounts(t *testing.T) {
	if Nano.NumPins() != 18 {
		t.Fatalf("pins=%d", Nano.NumPins())
	}
	if Nano.NumDigital() != 16 || Nano.NumAnalogue() != 6 || Nano.NumPWM() != 6 {
		t.Fatalf("digital=%d analogue=%d pwm=%d", Nano.NumDigital(), Nano.NumAnalogue(), Nano.NumPWM())
	}
	want := []byte{12, 13, 14, 15, 16, 17}
	if !bytes.Equal(Nano.AnalogueMap(), want) {
		t.Fatalf("analogue map % d", Nano.AnalogueMap())
	}
}

func TestPicoCounts(t *testing.T) {
	if Pico.NumPins() != 22 || Pico.NumAnalogue() != 3 || Pico.NumPWM() != 22 {
		t.Fatalf("pins=%d analogue=%d pwm=%d", Pico.NumPins(), Pico.NumAnalogue(), Pico.NumPWM())
	}
	if err := Pico.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestCapabilityLookup(t *testing.T) {
	if !Nano.Capability(1).Has(DigitalOutput | PWM) {
		t.Fatal("D3 should be dout+pwm")
	}
	if Nano.Capability(16).Has(DigitalInput) {
		t.Fatal("A6 must be analogue only")
	}
	if Nano.Capability(200) != 0 || Nano.PhysicalPin(200) != -1 {
		t.Fatal("out of range pin must have no capability")
	}
	if got := (DigitalInput | PWM).String(); got != "din|pwm" {
		t.Fatalf("String=%q", got)
	}
}

func TestByName(t *testing.T) {
	b, err := ByName("nano")
	if err != nil || b != Nano {
		t.Fatalf("ByName(nano) = %v, %v", b, err)
	}
	if _, err := ByName("uno-r9"); errcode.Of(err) != errcode.UnknownBoard {
		t.Fatalf("want unknown_board, got %v", err)
	}
}

func TestParseYAML(t *testing.T) {
	raw := []byte(`
name: bench
pins:
  - physical: 2
    caps: [din, dout]
  - physical: 3
    caps: [digital, pwm]
  - physical: 26
    caps: [ain]
`)
	b, err := ParseYAML(raw)
	if err != nil {
		t.Fatal(err)
	}
	if b.Name != "bench" || b.NumPins() != 3 || b.NumAnalogue() != 1 {
		t.Fatalf("unexpected board %+v", b)
	}
	if b.Capability(1) != Digital|PWM {
		t.Fatalf("pin 1 caps %v", b.Capability(1))
	}
}

func TestParseYAML_Rejects(t *testing.T) {
	bad := []string{
		"name: x\npins:\n  - physical: 1\n    caps: [laser]\n",
		"pins:\n  - physical: 1\n    caps: [din]\n",
		"name: x\npins:\n  - physical: 1\n    caps: [din]\n  - physical: 1\n    caps: [dout]\n",
		"name: x\npins: []\n",
	}
	for _, s := range bad {
		if _, err := ParseYAML([]byte(s)); errcode.Of(err) != errcode.InvalidConfig {
			t.Fatalf("%q: want invalid_config, got %v", s, err)
		}
	}
}

func TestLabel(t *testing.T) {
	if got := Nano.Label(0); got != "2" {
		t.Fatalf("Label(0)=%q", got)
	}
	if got := Nano.Label(200); got != "#200 (no such pin)" {
		t.Fatalf("Label(200)=%q", got)
	}
}
