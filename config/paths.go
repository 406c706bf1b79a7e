package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/linanwx/golaunchd/internal/runtimecfg"
)

var configDirOverride string

// SetDirOverride points ConfigDir at dir instead of ~/.golaunchd. An empty
// dir restores the default.
func SetDirOverride(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// ConfigDir returns the golaunchd config directory (~/.golaunchd).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return expandHome(configDirOverride)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, runtimecfg.ConfigDirName), nil
}

// ConfigPath returns the default YAML config path.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, runtimecfg.ConfigFileName), nil
}

// LaunchAgentsDir returns the per-user LaunchAgents directory.
func LaunchAgentsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, runtimecfg.LaunchAgentsDirName), nil
}

// OutputPath resolves name against output.dir. Absolute names and names with
// a directory part are returned unchanged.
func (c *Config) OutputPath(name string) (string, error) {
	if c.Output.Dir == "" || filepath.IsAbs(name) || filepath.Base(name) != name {
		return name, nil
	}
	dir, err := expandHome(c.Output.Dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}

func expandHome(dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if dir == "~" {
			return home, nil
		}
		return filepath.Join(home, dir[2:]), nil
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), nil
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.Clean(abs), nil
}
