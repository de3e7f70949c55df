//go:build !tinygo

package board

import (
	"os"

	"exio-go/errcode"

	"gopkg.in/yaml.v3"
)

// yamlBoard is the on-disk shape of a board table:
//
//	name: bench
//	pins:
//	  - physical: 2
//	    caps: [din, dout, pwm]
type yamlBoard struct {
	Name string `yaml:"name"`
	Pins []struct {
		Physical int      `yaml:"physical"`
		Caps     []string `yaml:"caps"`
	} `yaml:"pins"`
}

var capNames = map[string]Capability{
	"din":     DigitalInput,
	"dout":    DigitalOutput,
	"digital": Digital,
	"ain":     AnalogueInput,
	"pwm":     PWM,
}

// ParseYAML decodes and validates a board table.
func ParseYAML(raw []byte) (*Board, error) {
	var yb yamlBoard
	if err := yaml.Unmarshal(raw, &yb); err != nil {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "board", Msg: "yaml", Err: err}
	}
	if yb.Name == "" {
		return nil, errcode.New(errcode.InvalidConfig, "board", "missing name")
	}
	b := &Board{Name: yb.Name, Pins: make([]PinDef, 0, len(yb.Pins))}
	for _, p := range yb.Pins {
		var c Capability
		for _, n := range p.Caps {
			bit, ok := capNames[n]
			if !ok {
				return nil, errcode.New(errcode.InvalidConfig, "board", "unknown capability "+n)
			}
			c |= bit
		}
		b.Pins = append(b.Pins, PinDef{Physical: p.Physical, Caps: c})
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// LoadYAML reads a board table from path.
func LoadYAML(path string) (*Board, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "board", Msg: path, Err: err}
	}
	return ParseYAML(raw)
}
