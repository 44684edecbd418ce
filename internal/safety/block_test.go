package safety

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockWithoutTransactionsSafe(t *testing.T) {
	v := CheckBlockQuery("eth_getBlockByNumber", []any{"latest", false}, DefaultConfig())
	assert.True(t, v.Safe)
	assert.Empty(t, v.Reason)
	assert.Empty(t, v.Suggestion)
}

func TestBlockFlagAbsentSafe(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, CheckBlockQuery("eth_getBlockByNumber", []any{"0x10"}, cfg).Safe)
	assert.True(t, CheckBlockQuery("eth_getBlockByHash", []any{"0xabc", nil}, cfg).Safe)
	assert.True(t, CheckBlockQuery("eth_getBlockByNumber", nil, cfg).Safe)
}

func TestBlockWithTransactionsBlockedByDefault(t *testing.T) {
	v := CheckBlockQuery("eth_getBlockByNumber", []any{"latest", true}, DefaultConfig())
	assert.False(t, v.Safe)
	assert.Contains(t, v.Reason, "disabled by policy")
	assert.Contains(t, v.Suggestion, "without transactions")
	assert.Contains(t, v.Suggestion, "by hash")
}

// allow_blocks_with_transactions=true does not permit the fetch: a second
// rule still blocks full-transaction blocks.
func TestBlockWithTransactionsBlockedEvenWhenAllowed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowBlocksWithTransactions = true

	v := CheckBlockQuery("eth_getBlockByHash", []any{"0xabc", true}, cfg)
	assert.False(t, v.Safe)
	assert.Contains(t, v.Reason, "100+ transactions")
	assert.NotContains(t, v.Reason, "disabled by policy")
	assert.NotEmpty(t, v.Suggestion)
}

func TestBlockFlagAsString(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, CheckBlockQuery("eth_getBlockByNumber", []any{"latest", "TRUE"}, cfg).Safe)
	assert.True(t, CheckBlockQuery("eth_getBlockByNumber", []any{"latest", "false"}, cfg).Safe)
}

func TestBlockAmbiguousFlagBlocked(t *testing.T) {
	cfg := DefaultConfig()
	for _, flag := range []any{1, "yes", map[string]any{}, 0.0} {
		v := CheckBlockQuery("eth_getBlockByNumber", []any{"latest", flag}, cfg)
		assert.False(t, v.Safe, "flag %v", flag)
		assert.Contains(t, v.Reason, "cannot validate")
		assert.NotEmpty(t, v.Suggestion)
	}
}

func TestBlockCheckIgnoresOtherMethods(t *testing.T) {
	v := CheckBlockQuery("eth_getTransactionByHash", []any{"0xabc", true}, DefaultConfig())
	assert.True(t, v.Safe)
}
