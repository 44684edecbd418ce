package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

type queryFlags struct {
	config  string
	intents string
	format  string
}

func newQueryCmd() *cobra.Command {
	var f queryFlags
	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Check a natural-language data request",
		Long: "Matches a natural-language blockchain request against the intent\n" +
			"patterns and reports whether it implies a history scan or an\n" +
			"unbounded result. Exit code 0 if safe, 1 if blocked.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "", "Path to safety config YAML")
	cmd.Flags().StringVar(&f.intents, "intents", "", "Path to intent patterns YAML")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format (text|json)")
	return cmd
}

func runQuery(cmd *cobra.Command, args []string, f queryFlags) error {
	text := strings.Join(args, " ")

	engine, _, err := loadEngine(f.config, f.intents)
	if err != nil {
		return err
	}

	verdict := engine.ValidateQuery(text)
	if err := printReport(cmd.OutOrStdout(), newVerdictReport(text, verdict), f.format); err != nil {
		return err
	}
	if !verdict.Safe {
		return &exitError{code: 1}
	}
	return nil
}
