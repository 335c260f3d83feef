// Copyright (c) 2025 Zambia Tennis Association. All Rights Reserved.
// This is licensed software from Zambia Tennis Association, for limitations
// and restrictions contact your company contract manager.

package format

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gkanyanta/zambia-tennis-association-sub003/pkg/scoring"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned when a match asks for a format that is not configured.
var ErrUnknownFormat = errors.New("unknown match format")

// Config is the set of named match formats a deployment offers.
type Config struct {
	Default string   `yaml:"default"`
	Formats []Format `yaml:"formats"`
}

// Format is a named settings preset. Omitted fields keep the scoring defaults.
type Format struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`

	scoring.SettingsOverrides `yaml:",inline"`
}

// LoadConfig loads formats from a YAML file.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read formats file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a formats document.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expanded), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML formats: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid formats configuration: %w", err)
	}

	return &config, nil
}

// Validate checks names are unique and every preset yields playable settings.
func (c *Config) Validate() error {
	if len(c.Formats) == 0 {
		return fmt.Errorf("no formats defined")
	}

	names := make(map[string]bool)
	for _, f := range c.Formats {
		if f.Name == "" {
			return fmt.Errorf("format with empty name found")
		}
		if names[f.Name] {
			return fmt.Errorf("duplicate format name: %s", f.Name)
		}
		names[f.Name] = true

		if err := ValidateSettings(scoring.MergeSettings(f.SettingsOverrides)); err != nil {
			return fmt.Errorf("format %s: %w", f.Name, err)
		}
	}

	if c.Default == "" {
		c.Default = c.Formats[0].Name
	}
	if !names[c.Default] {
		return fmt.Errorf("default format %s is not defined", c.Default)
	}

	return nil
}

// ValidateSettings rejects settings the scoring engine is not meant to play.
func ValidateSettings(s scoring.Settings) error {
	if s.BestOf != 3 && s.BestOf != 5 {
		return fmt.Errorf("bestOf must be 3 or 5, got %d", s.BestOf)
	}
	if s.TiebreakAt < 1 {
		return fmt.Errorf("tiebreakAt must be positive, got %d", s.TiebreakAt)
	}
	if s.FinalSetTiebreakTo < 1 {
		return fmt.Errorf("finalSetTiebreakTo must be positive, got %d", s.FinalSetTiebreakTo)
	}
	return nil
}

// Resolve returns the overrides for a format name. An empty name selects the default.
func (c *Config) Resolve(name string) (scoring.SettingsOverrides, string, error) {
	if name == "" {
		name = c.Default
	}
	for _, f := range c.Formats {
		if f.Name == name {
			return f.SettingsOverrides, f.Name, nil
		}
	}
	return scoring.SettingsOverrides{}, "", fmt.Errorf("%w: %s", ErrUnknownFormat, name)
}

// Names lists the configured format names in file order.
func (c *Config) Names() []string {
	names := make([]string, len(c.Formats))
	for i, f := range c.Formats {
		names[i] = f.Name
	}
	return names
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
