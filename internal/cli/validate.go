package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rpcwatch/internal/model"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

type validateFlags struct {
	blockchain string
	config     string
	intents    string
	format     string
	ceilings   ceilingFlags
}

// ceilingFlags are the --max-* and --allow-blocks-with-transactions flags
// shared by commands that adjust the loaded safety config.
type ceilingFlags struct {
	maxTx     int
	maxRange  int
	maxKB     int
	allowTxns bool
}

func (c *ceilingFlags) register(cmd *cobra.Command, verb string) {
	cmd.Flags().IntVar(&c.maxTx, "max-transactions-per-block", 0, verb+" max_transactions_per_block")
	cmd.Flags().IntVar(&c.maxRange, "max-block-range", 0, verb+" max_block_range")
	cmd.Flags().IntVar(&c.maxKB, "max-response-size-kb", 0, verb+" max_response_size_estimate_kb")
	cmd.Flags().BoolVar(&c.allowTxns, "allow-blocks-with-transactions", false, verb+" allow_blocks_with_transactions")
}

// overrides collects only the ceiling flags the user set.
func (c *ceilingFlags) overrides(cmd *cobra.Command) safety.Overrides {
	var o safety.Overrides
	flags := cmd.Flags()
	if flags.Changed("max-transactions-per-block") {
		o.MaxTransactionsPerBlock = &c.maxTx
	}
	if flags.Changed("max-block-range") {
		o.MaxBlockRange = &c.maxRange
	}
	if flags.Changed("max-response-size-kb") {
		o.MaxResponseSizeEstimateKB = &c.maxKB
	}
	if flags.Changed("allow-blocks-with-transactions") {
		o.AllowBlocksWithTransactions = &c.allowTxns
	}
	return o
}

func newValidateCmd() *cobra.Command {
	var f validateFlags
	cmd := &cobra.Command{
		Use:   "validate <method> [params-json]",
		Short: "Validate a JSON-RPC call without sending it",
		Long: "Runs a JSON-RPC call through the safety engine and prints the verdict.\n" +
			"Params are a JSON array, e.g. '[\"latest\", true]'.\n\n" +
			"The --max-* and --allow-blocks-with-transactions flags override the\n" +
			"loaded config for this call only. Exit code 0 if safe, 1 if blocked.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, f)
		},
	}
	cmd.Flags().StringVarP(&f.blockchain, "blockchain", "b", "", "Network id the call targets")
	cmd.Flags().StringVar(&f.config, "config", "", "Path to safety config YAML")
	cmd.Flags().StringVar(&f.intents, "intents", "", "Path to intent patterns YAML")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format (text|json)")
	f.ceilings.register(cmd, "Override")
	return cmd
}

func runValidate(cmd *cobra.Command, args []string, f validateFlags) error {
	method := args[0]
	var rawParams string
	if len(args) > 1 {
		rawParams = args[1]
	}
	params, err := model.ParamsFromJSON(rawParams)
	if err != nil {
		return err
	}

	engine, _, err := loadEngine(f.config, f.intents)
	if err != nil {
		return err
	}

	cfg, err := engine.Config().Override(f.ceilings.overrides(cmd))
	if err != nil {
		return err
	}

	verdict := engine.ValidateCallWith(cfg, f.blockchain, method, params)
	report := newVerdictReport(method, verdict)
	report.Blockchain = f.blockchain
	report.Class = safety.Classify(method).String()
	report.EstimateKB = safety.EstimateKB(method, params)
	report.OverBudget = safety.OverBudget(method, params, cfg)

	if err := printReport(cmd.OutOrStdout(), report, f.format); err != nil {
		return err
	}
	if !verdict.Safe {
		return &exitError{code: 1}
	}
	return nil
}

func formatKB(kb int) string {
	return fmt.Sprintf("~%dKB", kb)
}
