// Package cmd provides CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linanwx/golaunchd/config"
	"github.com/linanwx/golaunchd/logger"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	logLevelOverride  string
	configDirOverride string
)

// rootCmd is the root command.
var rootCmd = &cobra.Command{
	Use:   "golaunchd",
	Short: "golaunchd - build, convert and check launchd.plist files",
	Long: `golaunchd writes and reads macOS launchd job descriptions.

It builds jobs from flags, turns cron expressions into
StartCalendarInterval entries, converts between XML and binary
property lists and validates existing files against the launchd schema.
Nothing is loaded into launchd; use launchctl for that.

Get started with: golaunchd new --label com.example.hello --program /bin/echo`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().StringVar(&logLevelOverride, "log-level", "", "Override log level for this run (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configDirOverride, "config-dir", "", "Config directory (default ~/.golaunchd)")
	rootCmd.PersistentPreRunE = applyRuntimeOverrides
}

func applyRuntimeOverrides(cmd *cobra.Command, args []string) error {
	config.SetDirOverride(configDirOverride)

	level := ""
	if logLevelOverride != "" {
		level = strings.ToLower(strings.TrimSpace(logLevelOverride))
		switch level {
		case "debug", "info", "warn", "error":
		default:
			return fmt.Errorf("invalid --log-level: %q (use debug, info, warn, error)", logLevelOverride)
		}
	}

	cfg, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if level != "" {
		cfg.Logging.Level = level
	}

	configDir, _ := config.ConfigDir()
	logEnabled := true
	if cfg.Logging.Enabled != nil {
		logEnabled = *cfg.Logging.Enabled
	}

	logCfg := logger.Config{
		Enabled: logEnabled,
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Stderr:  cfg.Logging.Stderr,
		File:    cfg.Logging.File,
	}

	if err := logger.Init(logCfg, configDir); err != nil {
		return fmt.Errorf("logger init error: %w", err)
	}
	logger.Debug("command started", "command", cmd.CommandPath(), "args", len(args))
	return nil
}

// loadConfig returns the saved config or defaults. PersistentPreRunE has
// already applied --config-dir.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}
