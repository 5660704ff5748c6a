// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package config defines the configuration file for the jvedit tool.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Supported document formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the configuration for the jvedit tool.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Debug  bool         `yaml:"debug"`
}

// InputConfig controls how documents are read.
type InputConfig struct {
	// Format is the format of input documents, "json" or "yaml".
	Format string `yaml:"format"`

	// Lenient enables comments and trailing commas in JSON input.
	Lenient bool `yaml:"lenient"`
}

// OutputConfig controls how documents are written.
type OutputConfig struct {
	// Format is the format of output documents, "json" or "yaml".
	Format string `yaml:"format"`

	// Indent is the per-level indentation of JSON output. If empty, JSON
	// output is compact.
	Indent string `yaml:"indent"`
}

// NewConfig returns a Config with default values.
func NewConfig() *Config {
	return &Config{
		Input:  InputConfig{Format: FormatJSON},
		Output: OutputConfig{Format: FormatJSON, Indent: "  "},
	}
}

// LoadConfig loads a configuration from the YAML file at path. Settings not
// present in the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a configuration from YAML text.
func ParseConfig(data []byte) (*Config, error) {
	cfg := NewConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports an error if c has invalid settings.
func (c *Config) Validate() error {
	if err := checkFormat(c.Input.Format); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	if err := checkFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output: %w", err)
	}
	return nil
}

func checkFormat(f string) error {
	switch f {
	case FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("unknown format %q", f)
}

// configNames are the file names FindConfigFile looks for, in order.
var configNames = []string{".jvedit.yml", ".jvedit.yaml", "jvedit.yml", "jvedit.yaml"}

// FindConfigFile searches dir and its ancestors for a configuration file,
// and returns the path of the first one found, or "" if there is none.
func FindConfigFile(dir string) string {
	cur, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range configNames {
			path := filepath.Join(cur, name)
			if fi, err := os.Stat(path); err == nil && fi.Mode().IsRegular() {
				return path
			}
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return ""
		}
		cur = parent
	}
}
