package main

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// config describes a benchmark run. Every field can be set from a TOML file;
// flags override the file.
type config struct {
	// Components lists the fan-out sizes to measure, one table row each.
	Components []int `toml:"components"`

	// Emissions is the number of upstream values pushed per fan-out size.
	Emissions int `toml:"emissions"`

	// Transitions adds a row per size where commits are deferred.
	Transitions bool `toml:"transitions"`
}

func defaultConfig() config {
	return config{
		Components:  []int{1, 10, 100, 1_000},
		Emissions:   100,
		Transitions: true,
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("rxbench: reading %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, fmt.Errorf("rxbench: unknown keys in %s: %v", path, undecoded)
	}
	return cfg, nil
}

func (cfg config) validate() error {
	if len(cfg.Components) == 0 {
		return fmt.Errorf("rxbench: no component counts configured")
	}
	for _, n := range cfg.Components {
		if n <= 0 {
			return fmt.Errorf("rxbench: component count must be positive, got %d", n)
		}
	}
	if cfg.Emissions <= 0 {
		return fmt.Errorf("rxbench: emissions must be positive, got %d", cfg.Emissions)
	}
	return nil
}
