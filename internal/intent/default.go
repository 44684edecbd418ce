package intent

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// DefaultPatterns contains the built-in intent patterns in evaluation order.
var DefaultPatterns = Patterns{
	History: []Pattern{
		{Name: "last_transaction", Expr: `\b(last|latest|most recent|previous)\s+(\d+\s+)?(transactions?|txs?|txns?|transfers?)\b`},
		{Name: "first_transaction", Expr: `\b(first|earliest|oldest)\s+(\d+\s+)?(transactions?|txs?|txns?|transfers?)\b`},
		{Name: "transaction_history", Expr: `\b(transactions?|tx|txn|transfer|payment)\s+history\b`},
		{Name: "recent_transactions", Expr: `\brecent\s+(transactions?|txs?|txns?|transfers?|activity)\b`},
		{Name: "transactions_by_address", Expr: `\b(transactions?|txs?|transfers?)\s+(sent|received|made|initiated)\s+(by|from|to)\b`},
		{Name: "when_last_active", Expr: `\bwhen\s+(was|did)\b.*\b(last|first)\s+(active|transact\w*|send|sent|receive\w*)\b`},
	},
	Unbounded: []Pattern{
		{Name: "get_all", Expr: `\b(get|fetch|list|show|return|retrieve|find|dump|give me)\s+(me\s+)?all\b`},
		{Name: "every_item", Expr: `\bevery\s+(single\s+)?(transactions?|txs?|blocks?|logs?|events?|transfers?)\b`},
		{Name: "all_logs", Expr: `\ball\b.*\b(logs|events)\b`},
		{Name: "all_transactions", Expr: `\ball\s+(the\s+)?(transactions|txs|transfers|blocks|holders)\b`},
		{Name: "entire_history", Expr: `\b(entire|full|complete|whole)\s+(history|chain|ledger)\b`},
	},
}

const defaultYAMLHeader = `# rpcwatch intent patterns
# Generated by: rpcwatch init-config
#
# Natural-language requests are matched case-insensitively against these
# regular expressions. History patterns run first, then unbounded
# patterns; the first match blocks the request.

`

// DefaultYAML renders DefaultPatterns as a commented intents.yaml.
func DefaultYAML() (string, error) {
	data, err := yaml.Marshal(DefaultPatterns)
	if err != nil {
		return "", fmt.Errorf("marshal default intent patterns: %w", err)
	}
	return defaultYAMLHeader + string(data), nil
}
