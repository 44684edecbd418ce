package safety

import (
	"fmt"
	"strings"

	"github.com/ppiankov/rpcwatch/internal/intent"
	"github.com/ppiankov/rpcwatch/internal/model"
)

const (
	historyReason     = "requires scanning multiple blocks with full transaction data"
	historySuggestion = "1) query a specific transaction by its hash (eth_getTransactionByHash); " +
		"2) use a block-explorer service (Etherscan, Solscan, Mintscan) for address history; " +
		"3) ask for current state instead, such as balance, nonce or latest block height"

	unboundedReason     = "unbounded data requested"
	unboundedSuggestion = "add limits, filters, or a time range (for example: last 100 blocks, a single contract address, one event topic)"
)

// ValidateQuery checks free-text query text against an intent pattern set.
// A nil set means the built-in patterns.
func ValidateQuery(text string, set *intent.Set) model.Verdict {
	if strings.TrimSpace(text) == "" {
		return model.Safe()
	}
	if set == nil {
		set = intent.NewDefault()
	}

	m, ok := set.Match(text)
	if !ok {
		return model.Safe()
	}

	switch m.Class {
	case intent.History:
		return model.Unsafe(fmt.Sprintf("%s (%s)", historyReason, m.Name), historySuggestion)
	case intent.Unbounded:
		return model.Unsafe(fmt.Sprintf("%s (%s)", unboundedReason, m.Name), unboundedSuggestion)
	default:
		return model.Unsafe(fmt.Sprintf("query matched risky intent %s", m.Name), unboundedSuggestion)
	}
}
