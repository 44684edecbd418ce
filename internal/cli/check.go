package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rpcwatch/internal/scenario"
)

type checkFlags struct {
	scenario string
	config   string
	intents  string
	format   string
}

func newCheckCmd() *cobra.Command {
	var f checkFlags
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run verdict assertions from scenario files",
		Long: "Loads scenario YAML files matching a glob pattern, evaluates each\n" +
			"test case through the safety engine, and reports pass/fail.\n\n" +
			"Exit code 0 if all cases pass, 1 if any fail.\n" +
			"Use in CI to gate deployments on safety config correctness.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.scenario, "scenario", "", "Glob pattern for scenario YAML files (required)")
	cmd.Flags().StringVar(&f.config, "config", "", "Path to safety config YAML (optional)")
	cmd.Flags().StringVar(&f.intents, "intents", "", "Path to intent patterns YAML (optional)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format (text|json)")
	cmd.MarkFlagRequired("scenario")
	return cmd
}

func runCheck(cmd *cobra.Command, f checkFlags) error {
	matches, err := filepath.Glob(f.scenario)
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no scenario files match pattern: %s", f.scenario)
	}

	engine, _, err := loadEngine(f.config, f.intents)
	if err != nil {
		return err
	}

	var results []*scenario.RunResult
	for _, path := range matches {
		r, err := scenario.LoadAndRun(path, engine)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		results = append(results, r)
	}

	w := cmd.OutOrStdout()
	switch f.format {
	case "json":
		out, err := scenario.FormatJSON(results)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	default:
		fmt.Fprint(w, scenario.FormatText(results))
	}

	for _, r := range results {
		if r.Failed > 0 {
			return &exitError{code: 1}
		}
	}
	return nil
}
