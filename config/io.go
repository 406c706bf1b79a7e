package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/linanwx/golaunchd/launchd"
)

// ErrNotFound is returned by Load when no config file exists yet.
var ErrNotFound = errors.New("config not found, run 'golaunchd init' first")

// saveMu serializes concurrent Config.Save() calls to prevent file corruption.
var saveMu sync.Mutex

// Load loads the configuration from disk.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if _, err := cfg.OutputFormat(); err != nil {
		return nil, fmt.Errorf("%s: output.format: %w", path, err)
	}
	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("%s: logging.format: %w", path, &launchd.EnumError{Type: "LogFormat", Value: cfg.Logging.Format})
	}
	return &cfg, nil
}

// LoadOrDefault returns the saved config, or the defaults when none exists.
func LoadOrDefault() (*Config, error) {
	cfg, err := Load()
	if errors.Is(err, ErrNotFound) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Save saves the configuration to config.yaml.
// Concurrent calls are serialized to prevent file corruption.
func (c *Config) Save() error {
	saveMu.Lock()
	defer saveMu.Unlock()

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}
