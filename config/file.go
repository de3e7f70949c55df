//go:build !tinygo

package config

import (
	"os"

	"exio-go/errcode"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML file over the embedded defaults of device. Keys absent
// from the file keep their default.
func Load(device, path string) (Config, error) {
	c, ok := EmbeddedConfigLookup(device)
	if !ok {
		return Config{}, errcode.New(errcode.InvalidConfig, "config", "no embedded config for device: "+device)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: path, Err: err}
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return Config{}, &errcode.E{C: errcode.InvalidConfig, Op: "config", Msg: "yaml", Err: err}
	}
	return c, c.Validate()
}
