package config

import (
	"path/filepath"

	"github.com/linanwx/golaunchd/internal/runtimecfg"
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: runtimecfg.OutputDefaultFormat,
		},
		Label: LabelConfig{
			Prefix: runtimecfg.LabelDefaultPrefix,
		},
		Logging: defaultLoggingConfig(),
	}
}

func defaultLoggingConfig() LoggingConfig {
	dir, err := ConfigDir()
	if err != nil {
		dir = ""
	}
	logFile := filepath.Join(dir, runtimecfg.LogDirName, runtimecfg.LogFileName)
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   "warn",
		Stderr:  true,
		File:    logFile,
	}
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = runtimecfg.OutputDefaultFormat
	}
	if c.Label.Prefix == "" {
		c.Label.Prefix = runtimecfg.LabelDefaultPrefix
	}

	def := defaultLoggingConfig()
	if c.Logging == (LoggingConfig{}) {
		c.Logging = def
		return
	}

	hasAny := c.Logging.Level != "" || c.Logging.File != "" || c.Logging.Stderr
	if c.Logging.Enabled == nil && hasAny {
		enabled := true
		c.Logging.Enabled = &enabled
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Level
	}
	if !c.Logging.Stderr && c.Logging.File == "" {
		c.Logging.Stderr = def.Stderr
	}
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = def.Enabled
	}
}
