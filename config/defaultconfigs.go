package config

// Embedded per-device defaults. Key: device ID.
var embeddedConfigs = map[string]Config{
	"pico": {
		Board:          "pico",
		Address:        0x65,
		DiagBaud:       115200,
		SamplePeriodMs: 10,
	},
	"nano": {
		Board:          "nano",
		Address:        0x65,
		DiagBaud:       115200,
		SamplePeriodMs: 10,
	},
	"sim": {
		Board:          "nano",
		Address:        0x65,
		Diag:           true,
		SamplePeriodMs: 20,
	},
}
