// Package config loads the optional YAML options file for position-report.
// Everything in the file can also be set by flags; flags win, so partial
// configs are safe.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the optional processing options.
type Config struct {
	// Extension filters input files by suffix, e.g. ".hdf5".
	Extension string `yaml:"extension"`

	// Dataset is the per-device dataset name holding position samples.
	Dataset string `yaml:"dataset"`

	// HistoryDB is the path of the run-history SQLite database. Empty
	// disables history recording.
	HistoryDB string `yaml:"history_db"`
}

// Load reads and parses a YAML options file. The file must carry a .yaml or
// .yml extension.
func Load(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".yaml" && ext != ".yml" {
		return nil, fmt.Errorf("config file must have .yaml or .yml extension, got %q", ext)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}
