// Package config holds device operating parameters: which board table to
// use, the controller-facing address and diagnostic settings.
package config

import (
	"time"

	"exio-go/board"
	"exio-go/errcode"
)

// Version is reported to the controller on GET_VERSION (major, minor, patch).
var Version = [3]byte{0, 1, 0}

type Config struct {
	Board          string `yaml:"board"`
	Address        uint16 `yaml:"address"`
	Diag           bool   `yaml:"diag"`
	DiagBaud       uint32 `yaml:"diag_baud"`
	SamplePeriodMs int    `yaml:"sample_period_ms"`
}

// SamplePeriod is the input refresh interval.
func (c Config) SamplePeriod() time.Duration {
	return time.Duration(c.SamplePeriodMs) * time.Millisecond
}

// Validate checks ranges and that the board is known.
func (c Config) Validate() error {
	if c.Address < 0x08 || c.Address > 0x77 {
		return errcode.New(errcode.InvalidConfig, "config", "address outside 7-bit user range")
	}
	if c.SamplePeriodMs <= 0 {
		return errcode.New(errcode.InvalidConfig, "config", "sample_period_ms must be positive")
	}
	if _, err := board.ByName(c.Board); err != nil {
		return err
	}
	return nil
}

// EmbeddedConfigLookup allows overriding how device defaults are resolved.
var EmbeddedConfigLookup = func(device string) (Config, bool) {
	c, ok := embeddedConfigs[device]
	return c, ok
}

// ForDevice returns the validated embedded config of device.
func ForDevice(device string) (Config, error) {
	c, ok := EmbeddedConfigLookup(device)
	if !ok {
		return Config{}, errcode.New(errcode.InvalidConfig, "config", "no embedded config for device: "+device)
	}
	return c, c.Validate()
}
