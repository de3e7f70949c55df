package board

const (
	dio  = Digital
	dioP = Digital | PWM
	aio  = Digital | AnalogueInput
	aOnl = AnalogueInput
)

// Nano is the classic ATmega328 Nano layout: D2..D13, A0..A3 usable as
// digital or analogue, A6/A7 analogue only.
var Nano = &Board{
	Name: "nano",
	Pins: []PinDef{
		{2, dio}, {3, dioP}, {4, dio}, {5, dioP}, {6, dioP}, {7, dio},
		{8, dio}, {9, dioP}, {10, dioP}, {11, dioP}, {12, dio}, {13, dio},
		{14, aio}, {15, aio}, {16, aio}, {17, aio},
		{20, aOnl}, {21, aOnl},
	},
}

// Pico is the RP2040 Pico layout. GP0/GP1 carry the diagnostic UART, GP4/GP5
// the controller bus, and GP23..GP25 are board internal. Every GPIO has a PWM
// channel.
var Pico = &Board{
	Name: "pico",
	Pins: func() []PinDef {
		var p []PinDef
		for _, gp := range []int{2, 3} {
			p = append(p, PinDef{gp, dioP})
		}
		for gp := 6; gp <= 22; gp++ {
			p = append(p, PinDef{gp, dioP})
		}
		for gp := 26; gp <= 28; gp++ {
			p = append(p, PinDef{gp, aio | PWM})
		}
		return p
	}(),
}

func init() {
	Register(Nano)
	Register(Pico)
}
