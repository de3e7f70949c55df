//go:build rp2040

// cmd/exio-pico/main.go
package main

import (
	"context"
	"machine"
	"time"

	"exio-go/board"
	"exio-go/config"
	"exio-go/diag"
	"exio-go/display"
	"exio-go/engine"
	"exio-go/hal"
	"exio-go/services/analogue"
	"exio-go/transport"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
)

func main() {
	// Allow the serial console to attach before we print.
	time.Sleep(2 * time.Second)

	cfg, err := config.ForDevice("pico")
	if err != nil {
		println("config:", err.Error())
		return
	}

	console := uartx.UART0
	_ = console.Configure(uartx.UARTConfig{
		BaudRate: cfg.DiagBaud,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	log := diag.New(console, cfg.Diag)

	b, err := board.ByName(cfg.Board)
	if err != nil {
		log.Errorf("board: %v", err)
		return
	}
	v := config.Version
	log.Printf("EX-IOExpander %d.%d.%d, board %s, address 0x%02X", v[0], v[1], v[2], b.Name, cfg.Address)

	io := hal.NewRP2IO()
	eng := engine.New(engine.Options{
		Board:    b,
		IO:       io,
		Analogue: analogue.New(b, io, log),
		Log:      log,
		Display:  func(b *board.Board, first uint16) { display.VpinMap(log.Writer(), b, first) },
		Version:  v,
	})

	ctx := context.Background()
	go eng.Run(ctx, cfg.SamplePeriod())

	err = transport.Serve(ctx, transport.TargetConfig{
		Bus:  machine.I2C0,
		SDA:  machine.GP4,
		SCL:  machine.GP5,
		Addr: cfg.Address,
	}, eng)
	log.Errorf("i2c target stopped: %v", err)
}
