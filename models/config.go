// Package models defines data structures for configuration and report records.
package models

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is looked up in the working directory when --config is not given.
const DefaultConfigPath = "taxi-report.yaml"

// DefaultTopN is the ranking size used by the reference pickup-location run.
const DefaultTopN = 20

// DefaultLabel names what the ranked keys are in the text header.
const DefaultLabel = "Busiest Pickup Locations"

// Config holds defaults that CLI flags can override.
type Config struct {
	TopN       int    `yaml:"top_n"`
	Label      string `yaml:"label"`
	Format     string `yaml:"format"`
	TripsPath  string `yaml:"trips_path"`
	ZonesPath  string `yaml:"zones_path"`
	ReportPath string `yaml:"report_path"`
}

// NewConfig returns a Config populated with built-in defaults.
func NewConfig() *Config {
	return &Config{
		TopN:   DefaultTopN,
		Label:  DefaultLabel,
		Format: string(OutputText),
	}
}

// LoadConfig reads a YAML config file on top of the defaults.
// A missing file is only an error when required is true.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := NewConfig()

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.TopN < 0 {
		return nil, fmt.Errorf("invalid top_n in %s: %d", path, cfg.TopN)
	}
	if cfg.Label == "" {
		cfg.Label = DefaultLabel
	}
	if cfg.Format == "" {
		cfg.Format = string(OutputText)
	}
	if _, err := ParseOutputFormat(cfg.Format); err != nil {
		return nil, fmt.Errorf("invalid format in %s: %w", path, err)
	}

	return cfg, nil
}
