package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"howett.net/plist"

	"github.com/linanwx/golaunchd/cron"
	"github.com/linanwx/golaunchd/internal/runtimecfg"
	"github.com/linanwx/golaunchd/logger"
)

// clock supplies "now" for cron next; tests swap in a fake.
var clock = clockwork.NewRealClock()

var cronCmd = &cobra.Command{
	Use:   "cron",
	Short: "Translate cron expressions for launchd",
}

// --- intervals ---

var cronIntervalsCmd = &cobra.Command{
	Use:   "intervals <expr>",
	Short: "Expand a cron expression into StartCalendarInterval entries",
	Long: `Expand a 5-field cron expression (or @daily, @weekly, ...) into the
StartCalendarInterval array launchd understands. The output is a plist
array fragment unless --text is given.

Examples:
  golaunchd cron intervals "0,30 9-17 * * 1-5"
  golaunchd cron intervals --text @weekly`,
	Args: cobra.ExactArgs(1),
	RunE: runCronIntervals,
}

var cronIntervalsText bool

func init() {
	cronIntervalsCmd.Flags().BoolVar(&cronIntervalsText, "text", false, "Print one interval per line instead of plist XML")
	cronCmd.AddCommand(cronIntervalsCmd)
}

func runCronIntervals(cmd *cobra.Command, args []string) error {
	expr := strings.TrimSpace(args[0])
	intervals, err := cron.Expand(expr)
	if err != nil {
		return err
	}
	logger.Debug("expanded cron expression", "expr", expr, "intervals", len(intervals))

	out := cmd.OutOrStdout()
	if cronIntervalsText {
		if len(intervals) == 0 {
			fmt.Fprintln(out, "No intervals: the expression matches every minute.")
			return nil
		}
		for _, ci := range intervals {
			fmt.Fprintln(out, ci.String())
		}
		return nil
	}

	enc := plist.NewEncoderForFormat(out, plist.XMLFormat)
	enc.Indent("\t")
	if err := enc.Encode(intervals); err != nil {
		return fmt.Errorf("failed to encode intervals: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

// --- next ---

var cronNextCmd = &cobra.Command{
	Use:   "next <expr>",
	Short: "Preview the next activation times of a cron expression",
	Args:  cobra.ExactArgs(1),
	RunE:  runCronNext,
}

var cronNextCount int

func init() {
	cronNextCmd.Flags().IntVarP(&cronNextCount, "count", "n", runtimecfg.CronNextDefaultCount, "Number of times to show")
	cronCmd.AddCommand(cronNextCmd)
}

func runCronNext(cmd *cobra.Command, args []string) error {
	if cronNextCount <= 0 || cronNextCount > runtimecfg.CronNextMaxCount {
		return fmt.Errorf("invalid --count %d (use 1..%d)", cronNextCount, runtimecfg.CronNextMaxCount)
	}
	expr := strings.TrimSpace(args[0])
	times, err := cron.Next(expr, clock.Now(), cronNextCount)
	if err != nil {
		return err
	}
	for _, t := range times {
		fmt.Fprintln(cmd.OutOrStdout(), t.Format(time.RFC3339))
	}
	return nil
}

// --- register root ---

func init() {
	rootCmd.AddCommand(cronCmd)
}
