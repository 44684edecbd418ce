package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rpcwatch/internal/model"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

type estimateFlags struct {
	config string
	format string
}

type estimateReport struct {
	Method     string `json:"method"`
	Class      string `json:"class"`
	EstimateKB int    `json:"estimate_kb"`
	BudgetKB   int    `json:"budget_kb"`
	OverBudget bool   `json:"over_budget"`
}

func newEstimateCmd() *cobra.Command {
	var f estimateFlags
	cmd := &cobra.Command{
		Use:   "estimate <method> [params-json]",
		Short: "Estimate the response size of a JSON-RPC call",
		Long: "Prints the advisory response-size estimate for a call and compares it\n" +
			"with max_response_size_estimate_kb. Estimates never block a call.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(cmd, args, f)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "", "Path to safety config YAML")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format (text|json)")
	return cmd
}

func runEstimate(cmd *cobra.Command, args []string, f estimateFlags) error {
	method := args[0]
	var rawParams string
	if len(args) > 1 {
		rawParams = args[1]
	}
	params, err := model.ParamsFromJSON(rawParams)
	if err != nil {
		return err
	}

	cfg, err := safety.LoadConfig(f.config)
	if err != nil {
		return err
	}

	r := estimateReport{
		Method:     method,
		Class:      safety.Classify(method).String(),
		EstimateKB: safety.EstimateKB(method, params),
		BudgetKB:   cfg.MaxResponseSizeEstimateKB,
		OverBudget: safety.OverBudget(method, params, cfg),
	}

	w := cmd.OutOrStdout()
	if f.format == "json" {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal estimate: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	status := "within budget"
	if r.OverBudget {
		status = "over budget"
	}
	fmt.Fprintf(w, "%s: %s (%s, budget %s, %s)\n", r.Method, formatKB(r.EstimateKB), r.Class, formatKB(r.BudgetKB), status)
	return nil
}
