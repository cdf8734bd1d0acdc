package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig mirrors the CLI flags that make sense to persist. Pointer
// fields distinguish "absent" from a zero value.
type fileConfig struct {
	Format                string   `yaml:"format"`
	BaseURI               string   `yaml:"base_uri"`
	CharThreshold         *int     `yaml:"char_threshold"`
	MaxElements           *int     `yaml:"max_elements"`
	KeepClasses           *bool    `yaml:"keep_classes"`
	PreserveClass         []string `yaml:"preserve_class"`
	DisableStructuredData *bool    `yaml:"disable_structured_data"`
	Compact               *bool    `yaml:"compact"`
}

func loadConfigFile(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// apply copies config values onto flags still at their defaults.
// Explicit flags win over the file.
func (cfg *fileConfig) apply(cli *CLI) {
	if cfg.Format != "" && cli.Format == "json" {
		cli.Format = cfg.Format
	}
	if cfg.BaseURI != "" && cli.BaseURI == "" {
		cli.BaseURI = cfg.BaseURI
	}
	if cfg.CharThreshold != nil && cli.CharThreshold == 500 {
		cli.CharThreshold = *cfg.CharThreshold
	}
	if cfg.MaxElements != nil && cli.MaxElements == 0 {
		cli.MaxElements = *cfg.MaxElements
	}
	if cfg.KeepClasses != nil && !cli.KeepClasses {
		cli.KeepClasses = *cfg.KeepClasses
	}
	if len(cfg.PreserveClass) > 0 && len(cli.PreserveClass) == 0 {
		cli.PreserveClass = cfg.PreserveClass
	}
	if cfg.DisableStructuredData != nil && !cli.DisableStructuredData {
		cli.DisableStructuredData = *cfg.DisableStructuredData
	}
	if cfg.Compact != nil && !cli.Compact {
		cli.Compact = *cfg.Compact
	}
}
