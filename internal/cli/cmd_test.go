package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/rpcwatch/internal/audit"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

// executeCmd runs the root command with args and captures stdout/stderr.
// HOME points at a temp dir so no user config is read.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func exitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return -1
}

func TestValidateSafeCall(t *testing.T) {
	out, err := executeCmd(t, "validate", "eth_blockNumber", "-b", "ethereum")
	require.NoError(t, err)
	assert.Contains(t, out, "ALLOW  eth_blockNumber on ethereum")
	assert.Contains(t, out, "class:      none")
}

func TestValidateBlockedCallExitsOne(t *testing.T) {
	out, err := executeCmd(t, "validate", "eth_getBlockByNumber", `["latest", true]`)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "DENY")
	assert.Contains(t, out, "reason:")
	assert.Contains(t, out, "suggestion:")
	assert.Contains(t, out, "~500KB (over budget)")
}

func TestValidateOverrideFlags(t *testing.T) {
	params := `[{"fromBlock":"0x0","toBlock":"0x1388","address":"0xabc"}]`

	_, err := executeCmd(t, "validate", "eth_getLogs", params)
	assert.Equal(t, 1, exitCode(err))

	_, err = executeCmd(t, "validate", "eth_getLogs", params, "--max-block-range", "10000")
	assert.NoError(t, err)

	_, err = executeCmd(t, "validate", "eth_getLogs", params, "--max-block-range", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid override")
}

func TestValidateAllowTransactionsStillBlocks(t *testing.T) {
	out, err := executeCmd(t, "validate", "eth_getBlockByNumber", `["0x10", true]`, "--allow-blocks-with-transactions")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "100+ transactions")
}

func TestValidateJSONFormat(t *testing.T) {
	out, err := executeCmd(t, "validate", "trace_block", `["0x1"]`, "-f", "json")
	assert.Equal(t, 1, exitCode(err))

	var r verdictReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, "deny", r.Decision)
	assert.Equal(t, "trace_fetch", r.Class)
	assert.NotEmpty(t, r.Reason)
	assert.NotEmpty(t, r.Suggestion)
}

func TestValidateBadParams(t *testing.T) {
	_, err := executeCmd(t, "validate", "eth_call", `{not json`)
	require.Error(t, err)
	assert.Equal(t, -1, exitCode(err))
}

func TestQueryCommand(t *testing.T) {
	out, err := executeCmd(t, "query", "What", "was", "the", "last", "transaction", "on", "vitalik.eth?")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "requires scanning multiple blocks")

	out, err = executeCmd(t, "query", "What is the ETH balance of 0xabc?")
	require.NoError(t, err)
	assert.Contains(t, out, "ALLOW")
}

func TestEstimateCommand(t *testing.T) {
	out, err := executeCmd(t, "estimate", "eth_getLogs", `[{"address":"0xabc"}]`)
	require.NoError(t, err)
	assert.Equal(t, "eth_getLogs: ~200KB (log_fetch, budget ~100KB, over budget)\n", out)

	out, err = executeCmd(t, "estimate", "eth_chainId", "-f", "json")
	require.NoError(t, err)
	var r estimateReport
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 5, r.EstimateKB)
	assert.False(t, r.OverBudget)
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	pass := filepath.Join(dir, "pass.yaml")
	require.NoError(t, os.WriteFile(pass, []byte(`
name: passing
cases:
  - call: {method: txpool_content}
    expect: deny
  - query: "current gas price on base"
    expect: allow
`), 0644))

	out, err := executeCmd(t, "check", "--scenario", pass)
	require.NoError(t, err)
	assert.Contains(t, out, "PASS  passing (2/2)")

	fail := filepath.Join(dir, "fail.yaml")
	require.NoError(t, os.WriteFile(fail, []byte(`
name: failing
cases:
  - call: {method: eth_blockNumber}
    expect: deny
`), 0644))

	out, err = executeCmd(t, "check", "--scenario", filepath.Join(dir, "*.yaml"))
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "FAIL  failing (0/1)")
}

func TestCheckNoMatches(t *testing.T) {
	_, err := executeCmd(t, "check", "--scenario", filepath.Join(t.TempDir(), "*.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenario files match")
}

func TestChainsCommand(t *testing.T) {
	out, err := executeCmd(t, "chains", "--family", "solana")
	require.NoError(t, err)
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "solana")
	assert.Contains(t, out, "finalized")
	assert.NotContains(t, out, "ethereum")
}

func TestChainsJSONAppliesEnvOverride(t *testing.T) {
	t.Setenv("RPCWATCH_RPC_URL_BASE", "http://localhost:8545")
	out, err := executeCmd(t, "chains", "--family", "evm", "-f", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "http://localhost:8545")
}

func TestChainsJSONEmptyFamily(t *testing.T) {
	out, err := executeCmd(t, "chains", "--family", "bitcoin", "-f", "json")
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(out))
}

func TestMCPCeilingFlagsTighten(t *testing.T) {
	cmd := newMCPCmd()
	for _, name := range []string{"max-transactions-per-block", "max-block-range", "max-response-size-kb", "allow-blocks-with-transactions"} {
		require.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	var f ceilingFlags
	flagged := &cobra.Command{Use: "serve"}
	f.register(flagged, "Tighten")
	require.NoError(t, flagged.ParseFlags([]string{"--max-block-range", "20", "--max-response-size-kb", "100000"}))
	o := f.overrides(flagged)
	assert.Nil(t, o.MaxTransactionsPerBlock)
	assert.Nil(t, o.AllowBlocksWithTransactions)

	file := safety.DefaultConfig()
	file.MaxResponseSizeEstimateKB = 50
	got := file.Tighten(o)
	assert.Equal(t, 20, got.MaxBlockRange)
	assert.Equal(t, 50, got.MaxResponseSizeEstimateKB)
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "rpcwatch"`)
	assert.Contains(t, out, version)
}

func TestAuditCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.jsonl")
	l, err := audit.Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record(audit.Entry{TraceID: "t-cli", Subject: audit.Subject{Tool: "rpcwatch_rpc", Blockchain: "ethereum", Method: "eth_chainId"}, Decision: "allow", Dispatched: true, EstimateKB: 5}))
	require.NoError(t, l.Record(audit.Entry{TraceID: "t-cli", Subject: audit.Subject{Tool: "rpcwatch_rpc", Blockchain: "ethereum", Method: "txpool_content"}, Decision: "deny", Reason: "blocked"}))
	require.NoError(t, l.Close())

	out, err := executeCmd(t, "audit", "verify", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK: 2 entries verified")

	out, err = executeCmd(t, "audit", "tail", path, "-n", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "txpool_content")
	assert.NotContains(t, out, "eth_chainId")

	out, err = executeCmd(t, "audit", "replay", path, "--trace", "t-cli")
	require.NoError(t, err)
	assert.Contains(t, out, "Summary: 1 allow, 1 deny, 1 dispatched (~5KB)")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	tampered := strings.Replace(string(data), `"allow"`, `"deny"`, 1)
	require.NoError(t, os.WriteFile(path, []byte(tampered), 0600))

	out, err = executeCmd(t, "audit", "verify", path)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "FAILED at line 2")
}
