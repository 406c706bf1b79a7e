package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/linanwx/golaunchd/internal/inspect"
)

// --- show ---

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print any plist as YAML or JSON",
	Long: `Print a property list as YAML or JSON. The schema is not applied, so
this also works on files that validate rejects.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

var showFormat string

func init() {
	showCmd.Flags().StringVar(&showFormat, "format", "yaml", "Output format: yaml or json")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	doc, err := inspect.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	var data []byte
	switch strings.ToLower(strings.TrimSpace(showFormat)) {
	case "yaml", "yml":
		data, err = doc.YAML()
	case "json":
		data, err = doc.JSON()
	default:
		return fmt.Errorf("invalid --format: %q (use yaml, json)", showFormat)
	}
	if err != nil {
		return err
	}
	return writeString(cmd.OutOrStdout(), string(data))
}

// --- query ---

var queryCmd = &cobra.Command{
	Use:   "query <file> <path>",
	Short: "Extract a value from a plist with a gjson path",
	Long: `Evaluate a gjson path against the JSON form of a property list.

Examples:
  golaunchd query agent.plist Label
  golaunchd query agent.plist ProgramArguments.0
  golaunchd query agent.plist "StartCalendarInterval.#.Hour"`,
	Args: cobra.ExactArgs(2),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	doc, err := inspect.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	res, err := doc.Query(args[1])
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.String())
	return nil
}
