package config

import (
	"os"
	"path/filepath"
	"testing"

	"exio-go/errcode"
)

func TestForDevice_Embedded(t *testing.T) {
	c, err := ForDevice("pico")
	if err != nil {
		t.Fatal(err)
	}
	if c.Board != "pico" || c.Address != 0x65 || c.SamplePeriod().Milliseconds() != 10 {
		t.Fatalf("unexpected %+v", c)
	}
	if _, err := ForDevice("toaster"); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("want invalid_config, got %v", err)
	}
}

func TestLookupOverride(t *testing.T) {
	old := EmbeddedConfigLookup
	EmbeddedConfigLookup = func(device string) (Config, bool) {
		return Config{Board: "nano", Address: 0x03, SamplePeriodMs: 5}, true
	}
	t.Cleanup(func() { EmbeddedConfigLookup = old })

	if _, err := ForDevice("any"); errcode.Of(err) != errcode.InvalidConfig {
		t.Fatalf("reserved address accepted: %v", err)
	}
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	p := filepath.Join(t.TempDir(), "exio.yaml")
	if err := os.WriteFile(p, []byte("board: pico\ndiag: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load("sim", p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Board != "pico" || !c.Diag || c.SamplePeriodMs != 20 {
		t.Fatalf("unexpected %+v", c)
	}
}

func TestLoad_UnknownBoard(t *testing.T) {
	p := filepath.Join(t.TempDir(), "exio.yaml")
	_ = os.WriteFile(p, []byte("board: mega\n"), 0o644)
	if _, err := Load("sim", p); errcode.Of(err) != errcode.UnknownBoard {
		t.Fatalf("want unknown_board, got %v", err)
	}
}
