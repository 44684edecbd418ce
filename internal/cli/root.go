package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rpcwatch/internal/intent"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

// exitError ends the process with a status code and no message. Commands
// return it when the output already explains the failure (a blocked
// verdict, a failed scenario, a broken audit chain).
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// NewRootCmd builds the rpcwatch command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "rpcwatch",
		Short: "Safety gate for AI agent blockchain queries",
		Long: "Validates blockchain JSON-RPC calls and natural-language data requests\n" +
			"before any chain is contacted. Calls likely to flood an agent's context\n" +
			"window are blocked with a reason and a cheaper alternative.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newMCPCmd(),
		newValidateCmd(),
		newQueryCmd(),
		newEstimateCmd(),
		newCheckCmd(),
		newInitConfigCmd(),
		newChainsCmd(),
		newAuditCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command.
func Execute() {
	err := NewRootCmd().Execute()
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadEngine builds an engine from a safety config and intent pattern file.
// Empty paths fall back to the files under ~/.rpcwatch.
func loadEngine(configPath, intentsPath string) (*safety.Engine, string, error) {
	cfg, hash, err := safety.LoadConfigWithHash(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("load safety config: %w", err)
	}
	intents, err := intent.Load(intentsPath)
	if err != nil {
		return nil, "", fmt.Errorf("load intent patterns: %w", err)
	}
	engine, err := safety.NewEngine(cfg, intents)
	if err != nil {
		return nil, "", err
	}
	return engine, hash, nil
}
