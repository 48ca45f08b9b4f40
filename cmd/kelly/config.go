package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ygrebnov/orchestra/simulation"
)

// Config is the optional YAML file passed with -config.
type Config struct {
	Game    simulation.Game `yaml:"game"`
	Steps   int             `yaml:"steps"`
	Seed    uint64          `yaml:"seed"`
	Workers uint            `yaml:"workers"`
	Log     LogConfig       `yaml:"log"`
}

// LogConfig defines logger settings.
type LogConfig struct {
	// Level: debug, info, warn, error
	Level string `yaml:"level"`
	// Format: console or json
	Format string `yaml:"format"`
	// File receives log output; empty means stderr.
	File     string         `yaml:"file"`
	Rotation RotationConfig `yaml:"rotation"`
}

// RotationConfig controls log file rotation when File is set.
type RotationConfig struct {
	Enable     bool `yaml:"enable"`
	MaxSizeMB  int  `yaml:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days"`
	Compress   bool `yaml:"compress"`
}

// DefaultConfig returns a Config populated with the values the command uses without a file.
func DefaultConfig() Config {
	return Config{
		Game:  simulation.DefaultGame(),
		Steps: 100,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
			Rotation: RotationConfig{
				MaxSizeMB:  50,
				MaxBackups: 3,
				MaxAgeDays: 28,
			},
		},
	}
}

// LoadConfig overlays the YAML file at path onto DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
