package safety

import (
	"fmt"
	"strings"

	"github.com/ppiankov/rpcwatch/internal/model"
)

const blockTxSuggestion = "fetch the block without transactions (includeTransactions=false), " +
	"or query individual transactions by hash with eth_getTransactionByHash"

// CheckBlockQuery validates a block-by-number or block-by-hash call.
// params follow the JSON-RPC layout [blockNumberOrHash, includeTransactions].
//
// A set include-transactions flag is always blocked: first by policy when
// allow_blocks_with_transactions is false, then by the hard rule that a
// full block can hold hundreds of transactions. The second rule makes the
// policy flag unable to permit the fetch on its own.
func CheckBlockQuery(method string, params []any, cfg Config) model.Verdict {
	if Classify(method) != ClassBlockFetch {
		return model.Safe()
	}

	include, ok := includeTransactions(params)
	if !ok {
		return model.Unsafe(
			fmt.Sprintf("cannot validate %s: includeTransactions flag %v is not a boolean", method, params[1]),
			"pass includeTransactions as false",
		)
	}
	if !include {
		return model.Safe()
	}

	if !cfg.AllowBlocksWithTransactions {
		return model.Unsafe(
			"fetching blocks with full transactions is disabled by policy",
			blockTxSuggestion,
		)
	}

	return model.Unsafe(
		fmt.Sprintf("blocks with full transactions routinely hold 100+ transactions (policy ceiling %d per block) and risk crashing the agent context",
			cfg.MaxTransactionsPerBlock),
		blockTxSuggestion,
	)
}

// includeTransactions reads params[1]. Absent or null means false.
// ok is false when the flag has a shape that cannot be interpreted.
func includeTransactions(params []any) (include, ok bool) {
	if len(params) < 2 || params[1] == nil {
		return false, true
	}
	switch v := params[1].(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
	}
	return false, false
}
