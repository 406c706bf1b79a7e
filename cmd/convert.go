package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linanwx/golaunchd/launchd"
	"github.com/linanwx/golaunchd/logger"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Re-encode a launchd plist as XML or binary",
	Long: `Read a launchd plist in any property list format, check it against the
schema and write it back in the requested format. Keys are written in
sorted order.

Examples:
  golaunchd convert com.example.agent.plist --format binary -o agent.bplist
  golaunchd convert agent.bplist`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

var (
	convertFormat string
	convertOutput string
)

func init() {
	convertCmd.Flags().StringVar(&convertFormat, "format", "", "Output format: xml or binary (default from config)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "Output file (stdout when empty)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, err := resolveFormat(convertFormat, cfg.Output.Format)
	if err != nil {
		return err
	}

	in := args[0]
	job, err := launchd.ReadFile(in)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	logJob(in, job)

	if convertOutput == "" {
		return job.Write(cmd.OutOrStdout(), format)
	}
	if err := job.WriteFile(convertOutput, format); err != nil {
		return fmt.Errorf("%s: %w", convertOutput, err)
	}
	logger.Info("converted job", "label", job.Label, "from", in, "to", convertOutput, "format", format.String())
	return nil
}
