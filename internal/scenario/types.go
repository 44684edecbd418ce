package scenario

import "github.com/ppiankov/rpcwatch/internal/safety"

// CallSpec is an RPC call under test.
type CallSpec struct {
	Blockchain string `yaml:"blockchain,omitempty"`
	Method     string `yaml:"method"`
	Params     []any  `yaml:"params,omitempty"`
}

// Case is one test case within a scenario. Exactly one of Call or Query
// must be set.
type Case struct {
	Call         *CallSpec        `yaml:"call,omitempty"`
	Query        string           `yaml:"query,omitempty"`
	Override     safety.Overrides `yaml:"override,omitempty"`
	Expect       string           `yaml:"expect"`
	ExpectReason string           `yaml:"expect_reason,omitempty"`
}

// Scenario is a named collection of verdict test cases. Config, when
// set, replaces the engine's ceilings for every case in the file.
type Scenario struct {
	Name   string            `yaml:"name"`
	Config *safety.Overrides `yaml:"config,omitempty"`
	Cases  []Case            `yaml:"cases"`
}

// CaseResult is the outcome of evaluating one test case.
type CaseResult struct {
	Index    int    `json:"index"`
	Passed   bool   `json:"passed"`
	Kind     string `json:"kind"`
	Subject  string `json:"subject"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Reason   string `json:"reason,omitempty"`
}

// RunResult is the outcome of running all cases in one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
