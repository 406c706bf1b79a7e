package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linanwx/golaunchd/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show golaunchd configuration status",
	Long:  `Display the current golaunchd configuration.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	configPath, _ := config.ConfigPath()

	cfg, err := config.Load()
	if errors.Is(err, config.ErrNotFound) {
		fmt.Fprintln(out, "Status: Not configured (using defaults)")
		fmt.Fprintln(out, "Run 'golaunchd init' to write", configPath)
		fmt.Fprintln(out)
		cfg = config.DefaultConfig()
	} else if err != nil {
		return err
	} else {
		fmt.Fprintln(out, "Config:", configPath)
	}

	fmt.Fprintln(out, "Output format:", cfg.Output.Format)
	if cfg.Output.Dir != "" {
		fmt.Fprintln(out, "Output dir:", cfg.Output.Dir)
	}
	fmt.Fprintln(out, "Label prefix:", cfg.Label.Prefix)
	if agents, err := config.LaunchAgentsDir(); err == nil {
		fmt.Fprintln(out, "LaunchAgents:", agents)
	}
	if cfg.Logging.Enabled != nil && *cfg.Logging.Enabled {
		fmt.Fprintf(out, "Logging: %s (file %s)\n", cfg.Logging.Level, cfg.Logging.File)
	} else {
		fmt.Fprintln(out, "Logging: disabled")
	}
	return nil
}
