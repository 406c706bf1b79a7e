package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/linanwx/golaunchd/launchd"
	"github.com/linanwx/golaunchd/logger"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file> [file...]",
	Short: "Check launchd plists against the schema",
	Long: `Decode each file strictly (unknown keys, unknown enum values and
out-of-range calendar values are errors) and check that it has a label
and something to run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		job, err := launchd.ReadFile(path)
		if err == nil {
			logJob(path, job)
			err = job.Validate()
		}
		if err != nil {
			failed++
			logger.Warn("invalid job file", "path", path, "err", err)
			fmt.Fprintf(out, "FAIL\t%s\t%v\n", path, err)
			continue
		}
		fmt.Fprintf(out, "ok\t%s\t%s\n", path, job.Label)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed validation", failed, len(args))
	}
	return nil
}
