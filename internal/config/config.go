package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the optional imgfit configuration file.
type Config struct {
	Output   OutputConfig             `yaml:"output"`
	Profiles map[string]ProfileConfig `yaml:"profiles"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

// ProfileConfig defines a user profile; the map key is the name.
type ProfileConfig struct {
	TargetKB []int  `yaml:"target_kb"`
	Format   string `yaml:"format"`
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Validate checks field values that would otherwise fail deep inside a
// run.
func (c *Config) Validate() error {
	if f := c.Output.Format; f != "" && f != "jpeg" && f != "jpg" && f != "webp" {
		return fmt.Errorf("output.format: unsupported format %q", f)
	}
	for name, p := range c.Profiles {
		if len(p.TargetKB) == 0 {
			return fmt.Errorf("profiles.%s: target_kb is required", name)
		}
		for _, kb := range p.TargetKB {
			if kb <= 0 {
				return fmt.Errorf("profiles.%s: target_kb must be positive, got %d", name, kb)
			}
		}
		if f := p.Format; f != "" && f != "jpeg" && f != "jpg" && f != "webp" {
			return fmt.Errorf("profiles.%s: unsupported format %q", name, f)
		}
	}
	return nil
}
