package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/linanwx/golaunchd/cron"
	"github.com/linanwx/golaunchd/launchd"
	"github.com/linanwx/golaunchd/logger"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Build a launchd job from flags",
	Long: `Build a launchd job description and write it as a property list.

Without --label a label of the form <label.prefix>.<uuid> is generated.
Each --cron expression is expanded into StartCalendarInterval entries.

Examples:
  golaunchd new --label com.example.backup --program /usr/local/bin/backup --cron "30 2 * * *"
  golaunchd new --program /bin/sh --arg sh --arg -c --arg "date >> /tmp/ticks" --interval 300 -o ticks.plist`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

var (
	newLabel       string
	newProgram     string
	newArgs        []string
	newCrons       []string
	newInterval    uint32
	newRunAtLoad   bool
	newKeepAlive   bool
	newStdout      string
	newStderr      string
	newWorkDir     string
	newEnv         []string
	newProcessType string
	newDisabled    bool
	newFormat      string
	newOutput      string
)

func init() {
	newCmd.Flags().StringVar(&newLabel, "label", "", "Job label (generated when empty)")
	newCmd.Flags().StringVar(&newProgram, "program", "", "Program path")
	newCmd.Flags().StringArrayVar(&newArgs, "arg", nil, "Program argument, repeatable (argv[0] first)")
	newCmd.Flags().StringArrayVar(&newCrons, "cron", nil, "Cron expression, 5-field or @descriptor, repeatable")
	newCmd.Flags().Uint32Var(&newInterval, "interval", 0, "StartInterval in seconds")
	newCmd.Flags().BoolVar(&newRunAtLoad, "run-at-load", false, "Set RunAtLoad")
	newCmd.Flags().BoolVar(&newKeepAlive, "keep-alive", false, "Set KeepAlive to true")
	newCmd.Flags().StringVar(&newStdout, "stdout", "", "StandardOutPath")
	newCmd.Flags().StringVar(&newStderr, "stderr", "", "StandardErrorPath")
	newCmd.Flags().StringVar(&newWorkDir, "workdir", "", "WorkingDirectory")
	newCmd.Flags().StringArrayVar(&newEnv, "env", nil, "Environment variable KEY=VALUE, repeatable")
	newCmd.Flags().StringVar(&newProcessType, "process-type", "", "ProcessType (Background, Standard, Adaptive, Interactive)")
	newCmd.Flags().BoolVar(&newDisabled, "disabled", false, "Set Disabled")
	newCmd.Flags().StringVar(&newFormat, "format", "", "Output format: xml or binary (default from config)")
	newCmd.Flags().StringVarP(&newOutput, "output", "o", "", "Output file (stdout when empty)")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	label := strings.TrimSpace(newLabel)
	if label == "" {
		label = cfg.LabelFor(uuid.NewString())
		logger.Info("generated label", "label", label)
	}

	job := launchd.Job{Label: label}
	if newProgram != "" {
		job = job.WithProgram(newProgram)
	}
	if len(newArgs) > 0 {
		job = job.WithProgramArguments(newArgs...)
	}

	var intervals []launchd.CalendarInterval
	for _, expr := range newCrons {
		expanded, err := cron.Expand(strings.TrimSpace(expr))
		if err != nil {
			return fmt.Errorf("--cron: %w", err)
		}
		if len(expanded) == 0 {
			return fmt.Errorf("--cron %q matches every minute; use --interval 60 instead", expr)
		}
		intervals = append(intervals, expanded...)
	}
	if len(intervals) > 0 {
		job = job.WithStartCalendarIntervals(intervals...)
	}
	if newInterval > 0 {
		job = job.WithStartInterval(newInterval)
	}
	if newKeepAlive {
		job = job.WithKeepAlive(launchd.KeepAliveEnabled(true))
	}
	if newStdout != "" {
		job = job.WithStandardOutPath(newStdout)
	}
	if newStderr != "" {
		job = job.WithStandardErrorPath(newStderr)
	}
	if newWorkDir != "" {
		job = job.WithWorkingDirectory(newWorkDir)
	}
	if len(newEnv) > 0 {
		env, err := parseEnv(newEnv)
		if err != nil {
			return err
		}
		job = job.WithEnvironmentVariables(env)
	}
	if newProcessType != "" {
		pt, err := launchd.ParseProcessType(newProcessType)
		if err != nil {
			return fmt.Errorf("invalid --process-type: %w", err)
		}
		job = job.WithProcessType(pt)
	}
	if newRunAtLoad {
		job = job.Enable(launchd.RunAtLoad)
	}
	if newDisabled {
		job = job.Enable(launchd.Disabled)
	}

	if err := job.Validate(); err != nil {
		return fmt.Errorf("invalid job: %w", err)
	}

	format, err := resolveFormat(newFormat, cfg.Output.Format)
	if err != nil {
		return err
	}
	logger.Debug("built job", "label", job.Label, "intervals", len(job.StartCalendarInterval), "format", format.String())

	if newOutput == "" {
		return job.Write(cmd.OutOrStdout(), format)
	}
	path, err := cfg.OutputPath(newOutput)
	if err != nil {
		return err
	}
	if err := job.WriteFile(path, format); err != nil {
		return err
	}
	logger.Info("wrote job", "label", job.Label, "path", path)
	fmt.Fprintln(cmd.ErrOrStderr(), "Wrote", path)
	return nil
}

func parseEnv(pairs []string) (map[string]string, error) {
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --env %q: want KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}

// resolveFormat prefers the flag value and falls back to the config value.
func resolveFormat(flagValue, configValue string) (launchd.Format, error) {
	name := configValue
	if strings.TrimSpace(flagValue) != "" {
		name = flagValue
	}
	format, err := launchd.ParseFormat(name)
	if err != nil {
		return 0, fmt.Errorf("invalid --format: %w", err)
	}
	return format, nil
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
