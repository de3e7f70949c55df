//go:build rp2040

package transport

import (
	"context"
	"machine"
)

// TargetConfig selects the controller-facing I2C peripheral and pins.
type TargetConfig struct {
	Bus  *machine.I2C
	SDA  machine.Pin
	SCL  machine.Pin
	Addr uint16
}

// Serve runs the I2C target loop until ctx is done. Each receive event is
// handed to h.Receive and each request event answered with h.Request.
func Serve(ctx context.Context, cfg TargetConfig, h Handler) error {
	if err := cfg.Bus.Configure(machine.I2CConfig{
		Mode: machine.I2CModeTarget,
		SDA:  cfg.SDA,
		SCL:  cfg.SCL,
	}); err != nil {
		return err
	}
	if err := cfg.Bus.Listen(cfg.Addr); err != nil {
		return err
	}

	in := make([]byte, 16)
	out := make([]byte, 0, 64)
	for ctx.Err() == nil {
		evt, n, err := cfg.Bus.WaitForEvent(in)
		if err != nil {
			continue
		}
		switch evt {
		case machine.I2CReceive:
			h.Receive(in[:n])
		case machine.I2CRequest:
			out = h.Request(out[:0])
			_ = cfg.Bus.Reply(out)
		case machine.I2CFinish:
		}
	}
	return ctx.Err()
}
