// Package config loads, normalizes, and validates council configuration.
package config

import (
	"fmt"
	"os"

	"council/internal/spec"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "council.yaml"

// Load reads, parses, normalizes, and validates a config file. A missing
// file at the default path yields the built-in defaults.
func Load(path string) (spec.Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg := spec.Config{}
			Normalize(&cfg)
			return cfg, nil
		}
		return spec.Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := spec.ParseConfig(data)
	if err != nil {
		return spec.Config{}, err
	}
	Normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return spec.Config{}, err
	}
	return cfg, nil
}
