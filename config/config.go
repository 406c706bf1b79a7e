// Package config handles configuration loading and saving.
package config

import (
	"strings"

	"github.com/linanwx/golaunchd/launchd"
)

// Config is the root configuration structure.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Label   LabelConfig   `yaml:"label"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig controls how generated plists are written.
type OutputConfig struct {
	Format string `yaml:"format"`        // xml or binary
	Dir    string `yaml:"dir,omitempty"` // directory for `new -o` with a bare file name
}

// LabelConfig controls generated job labels.
type LabelConfig struct {
	Prefix string `yaml:"prefix"` // reverse-DNS prefix, e.g. com.example
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `yaml:"enabled,omitempty"`
	Level   string `yaml:"level,omitempty"`
	Format  string `yaml:"format,omitempty"` // text or json
	Stderr  bool   `yaml:"stderr,omitempty"`
	File    string `yaml:"file,omitempty"`
}

// OutputFormat returns the configured plist format.
func (c *Config) OutputFormat() (launchd.Format, error) {
	return launchd.ParseFormat(c.Output.Format)
}

// LabelFor joins the configured prefix and name into a job label.
func (c *Config) LabelFor(name string) string {
	prefix := strings.TrimSuffix(strings.TrimSpace(c.Label.Prefix), ".")
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
