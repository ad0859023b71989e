package config

import (
	"github.com/pelletier/go-toml/v2"
)

// Encode renders cfg as TOML, including settings that came from defaults,
// the environment or overrides.
func Encode(cfg *Config) (string, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
