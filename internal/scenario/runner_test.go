package scenario

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ppiankov/rpcwatch/internal/safety"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAllCasesPass(t *testing.T) {
	s := &Scenario{
		Name: "basic",
		Cases: []Case{
			{Call: &CallSpec{Blockchain: "ethereum", Method: "eth_blockNumber"}, Expect: "allow"},
			{Call: &CallSpec{Blockchain: "ethereum", Method: "trace_block", Params: []any{"0x1"}}, Expect: "deny"},
			{Query: "show me all transactions for this wallet", Expect: "deny", ExpectReason: "unbounded"},
		},
	}

	result := Run(s, safety.NewDefaultEngine())
	if result.Failed != 0 {
		t.Errorf("expected 0 failures, got %d; cases: %+v", result.Failed, result.Cases)
	}
	if result.Passed != 3 {
		t.Errorf("expected 3 passed, got %d", result.Passed)
	}
}

func TestFailedAssertionDetected(t *testing.T) {
	s := &Scenario{
		Name: "wrong expectation",
		Cases: []Case{
			{Call: &CallSpec{Method: "eth_getBlockByNumber", Params: []any{"latest", false}}, Expect: "deny"},
		},
	}

	result := Run(s, safety.NewDefaultEngine())
	if result.Failed != 1 {
		t.Errorf("expected 1 failure, got %d", result.Failed)
	}
	if result.Cases[0].Actual != "allow" {
		t.Errorf("expected actual allow, got %s", result.Cases[0].Actual)
	}
}

func TestExpectReasonMismatchFails(t *testing.T) {
	s := &Scenario{
		Name: "reason mismatch",
		Cases: []Case{
			{Query: "what was the last transaction", Expect: "deny", ExpectReason: "unbounded"},
		},
	}

	result := Run(s, safety.NewDefaultEngine())
	if result.Failed != 1 {
		t.Fatalf("expected reason mismatch to fail, got %+v", result.Cases)
	}
}

func TestScenarioConfigOverride(t *testing.T) {
	wide := 5000
	logs := &CallSpec{
		Blockchain: "ethereum",
		Method:     "eth_getLogs",
		Params:     []any{map[string]any{"fromBlock": 0, "toBlock": 4000, "address": "0xabc"}},
	}
	s := &Scenario{
		Name:   "wide range",
		Config: &safety.Overrides{MaxBlockRange: &wide},
		Cases:  []Case{{Call: logs, Expect: "allow"}},
	}

	engine := safety.NewDefaultEngine()
	result := Run(s, engine)
	if result.Failed != 0 {
		t.Errorf("expected scenario config to allow range, got %+v", result.Cases)
	}
	if engine.Config().MaxBlockRange != 1000 {
		t.Error("scenario config must not modify the engine")
	}
}

func TestCaseOverride(t *testing.T) {
	narrow := 10
	logs := &CallSpec{
		Method: "eth_getLogs",
		Params: []any{map[string]any{"fromBlock": 0, "toBlock": 100, "topics": []any{"0xddf2"}}},
	}
	s := &Scenario{
		Name: "per-case",
		Cases: []Case{
			{Call: logs, Expect: "allow"},
			{Call: logs, Override: safety.Overrides{MaxBlockRange: &narrow}, Expect: "deny", ExpectReason: "exceeds the maximum of 10"},
		},
	}

	result := Run(s, safety.NewDefaultEngine())
	if result.Failed != 0 {
		t.Errorf("expected 0 failures, got %+v", result.Cases)
	}
}

func TestInvalidCases(t *testing.T) {
	bad := -1
	s := &Scenario{
		Name: "invalid",
		Cases: []Case{
			{Expect: "allow"},
			{Call: &CallSpec{Method: "eth_chainId"}, Query: "hi", Expect: "allow"},
			{Call: &CallSpec{Method: "eth_chainId"}, Override: safety.Overrides{MaxBlockRange: &bad}, Expect: "allow"},
		},
	}

	result := Run(s, safety.NewDefaultEngine())
	if result.Failed != 3 {
		t.Fatalf("expected 3 failures, got %d", result.Failed)
	}
	for _, c := range result.Cases {
		if c.Actual != "invalid" || c.Reason == "" {
			t.Errorf("expected invalid with reason, got %+v", c)
		}
	}
}

func TestLoadAndRunFromFile(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "test.yaml", `
name: "file test"
config:
  allow_blocks_with_transactions: true
cases:
  - call:
      blockchain: ethereum
      method: eth_getBlockByNumber
      params: ["latest", true]
    expect: deny
    expect_reason: "100+ transactions"
  - call:
      blockchain: ethereum
      method: eth_getLogs
      params:
        - fromBlock: "0x100"
          toBlock: "0x200"
          address: "0xdAC17F958D2ee523a2206206994597C13D831ec7"
    expect: allow
  - query: "What is the balance of vitalik.eth?"
    expect: allow
`)

	result, err := LoadAndRun(path, safety.NewDefaultEngine())
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed != 0 {
		t.Errorf("expected 0 failures, got %d; cases: %+v", result.Failed, result.Cases)
	}
	if result.File != path {
		t.Errorf("expected file path set, got %q", result.File)
	}
}

func TestInvalidScenarioYAML(t *testing.T) {
	dir := t.TempDir()
	writeScenario(t, dir, "bad.yaml", ":::not yaml\x00")

	_, err := LoadAndRun(filepath.Join(dir, "bad.yaml"), safety.NewDefaultEngine())
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestMissingScenarioFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEmptyCasesList(t *testing.T) {
	result := Run(&Scenario{Name: "empty", Cases: []Case{}}, safety.NewDefaultEngine())
	if result.Total != 0 {
		t.Errorf("expected 0 total, got %d", result.Total)
	}
	if result.Failed != 0 {
		t.Errorf("expected 0 failed, got %d", result.Failed)
	}
}

func TestCaseResultFieldsPopulated(t *testing.T) {
	s := &Scenario{
		Name: "fields check",
		Cases: []Case{
			{Call: &CallSpec{Blockchain: "ethereum", Method: "txpool_content"}, Expect: "DENY"},
		},
	}

	result := Run(s, safety.NewDefaultEngine())
	if len(result.Cases) != 1 {
		t.Fatalf("expected 1 case, got %d", len(result.Cases))
	}
	c := result.Cases[0]
	if c.Index != 1 {
		t.Errorf("index: got %d", c.Index)
	}
	if c.Kind != "call" {
		t.Errorf("kind: got %s", c.Kind)
	}
	if c.Subject != "txpool_content" {
		t.Errorf("subject: got %s", c.Subject)
	}
	if c.Expected != "deny" {
		t.Errorf("expected: got %s", c.Expected)
	}
	if c.Actual != "deny" {
		t.Errorf("actual: got %s", c.Actual)
	}
	if !c.Passed {
		t.Error("expected passed=true")
	}
	if c.Reason == "" {
		t.Error("reason should not be empty")
	}
}

func TestFormatText(t *testing.T) {
	results := []*RunResult{
		{Name: "good", Total: 1, Passed: 1, Cases: []CaseResult{{Index: 1, Passed: true}}},
		{Name: "bad", Total: 2, Passed: 1, Failed: 1, Cases: []CaseResult{
			{Index: 1, Passed: true},
			{Index: 2, Kind: "query", Subject: "get all logs", Expected: "allow", Actual: "deny", Reason: "unbounded data requested (get_all)"},
		}},
	}

	out := FormatText(results)
	for _, want := range []string{
		"Checking 2 scenario files...",
		"PASS  good (1/1)",
		"FAIL  bad (1/2)",
		"case 2: query  get all logs",
		"reason: unbounded data requested",
		"2 of 3 cases passed. 1 of 2 scenarios failed.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	results := []*RunResult{{Name: "a", Total: 1, Passed: 1}}
	out, err := FormatJSON(results)
	if err != nil {
		t.Fatal(err)
	}
	var decoded []RunResult
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Name != "a" {
		t.Fatalf("unexpected decode: %+v", decoded)
	}
}
