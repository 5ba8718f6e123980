// Package config loads tabslice CLI settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = "tabslice.yaml"

// Config holds CLI settings.
type Config struct {
	// StoreDir is the directory parquet blobs are kept in
	StoreDir string `yaml:"store_dir"`

	// Compression is the parquet codec: snappy, zstd, gzip or none
	Compression string `yaml:"compression"`

	// DefaultKey is used by commands when --key is not given
	DefaultKey string `yaml:"default_key"`

	// PreviewRows limits how many rows slice prints (0 = all)
	PreviewRows int `yaml:"preview_rows"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		StoreDir:    ".disk",
		Compression: "snappy",
		DefaultKey:  "test.parquet",
		PreviewRows: 20,
	}
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed file is an error.
// Values present in the file override the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if fileCfg.StoreDir != "" {
		cfg.StoreDir = fileCfg.StoreDir
	}
	if fileCfg.Compression != "" {
		cfg.Compression = fileCfg.Compression
	}
	if fileCfg.DefaultKey != "" {
		cfg.DefaultKey = fileCfg.DefaultKey
	}

	// preview_rows: 0 is meaningful, so check presence rather than value
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err == nil {
		if _, ok := raw["preview_rows"]; ok {
			cfg.PreviewRows = fileCfg.PreviewRows
		}
	}
	if cfg.PreviewRows < 0 {
		return nil, fmt.Errorf("invalid preview_rows %d: must be >= 0", cfg.PreviewRows)
	}

	return cfg, nil
}
