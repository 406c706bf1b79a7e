package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linanwx/golaunchd/config"
	"github.com/linanwx/golaunchd/launchd"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate config.yaml with defaults",
	Long: `Generate config.yaml without interactive prompts.
An existing file is never overwritten.

Examples:
  golaunchd init --label-prefix com.example --format binary`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

var (
	initLabelPrefix string
	initFormat      string
	initOutputDir   string
)

func init() {
	initCmd.Flags().StringVar(&initLabelPrefix, "label-prefix", "", "Reverse-DNS prefix for generated labels")
	initCmd.Flags().StringVar(&initFormat, "format", "", "Default output format: xml or binary")
	initCmd.Flags().StringVar(&initOutputDir, "output-dir", "", "Directory for relative output file names")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, _ []string) error {
	cfg := config.DefaultConfig()
	if v := strings.TrimSpace(initLabelPrefix); v != "" {
		cfg.Label.Prefix = v
	}
	if v := strings.TrimSpace(initFormat); v != "" {
		format, err := launchd.ParseFormat(v)
		if err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
		cfg.Output.Format = format.String()
	}
	if v := strings.TrimSpace(initOutputDir); v != "" {
		cfg.Output.Dir = v
	}

	configPath, err := config.ConfigPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if _, err := os.Stat(configPath); err == nil {
		fmt.Fprintln(out, "Config already exists, skipping:", configPath)
		return nil
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	fmt.Fprintln(out, "Config created:", configPath)
	return nil
}
