// Package config provides configuration file parsing for uvprune.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Dir returns the uvprune config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/uvprune if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "uvprune"), nil
}

// DefaultPath returns the default config file location, {Dir()}/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Config holds the optional file-based defaults. Every field is overridable
// by command-line flags; pointer fields distinguish "not set in the file"
// from an explicit zero.
type Config struct {
	// Roots are the directories scanned when no --dir flag is given.
	Roots []string `yaml:"roots"`

	// ExcludeDirs are directory names skipped during scanning.
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// ExcludePatterns are glob patterns filtering discovered environment
	// paths.
	ExcludePatterns []string `yaml:"exclude_patterns"`

	MaxDepth   int    `yaml:"max_depth"`
	MinAgeDays *int   `yaml:"min_age_days"`
	MinSizeMB  *int64 `yaml:"min_size_mb"`
	UnusedOnly *bool  `yaml:"unused_only"`
}

// Load reads the config file at path. A missing file yields an empty
// config without an error; a malformed file is an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.MinAgeDays != nil && *cfg.MinAgeDays < 0 {
		return nil, fmt.Errorf("invalid min_age_days %d: must be >= 0", *cfg.MinAgeDays)
	}
	if cfg.MinSizeMB != nil && *cfg.MinSizeMB <= 0 {
		return nil, fmt.Errorf("invalid min_size_mb %d: must be > 0", *cfg.MinSizeMB)
	}

	return cfg, nil
}
