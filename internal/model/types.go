package model

import "encoding/json"

// Decision is the enforcement outcome derived from a verdict.
type Decision string

const (
	Allow Decision = "allow"
	Deny  Decision = "deny"
)

// Fallback texts used when an unsafe verdict is constructed without
// a reason or suggestion. An unsafe verdict always carries both.
const (
	fallbackReason     = "query blocked by response-size safety policy"
	fallbackSuggestion = "narrow the request with explicit bounds or filters"
)

// Verdict is the pass/fail decision for one candidate call.
// Safe verdicts carry no reason or suggestion; unsafe verdicts carry both.
type Verdict struct {
	Safe       bool   `json:"safe"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Safe returns the verdict that lets a call proceed.
func Safe() Verdict {
	return Verdict{Safe: true}
}

// Unsafe returns a blocking verdict. Empty texts are replaced so the
// reason/suggestion invariant holds for every unsafe verdict.
func Unsafe(reason, suggestion string) Verdict {
	if reason == "" {
		reason = fallbackReason
	}
	if suggestion == "" {
		suggestion = fallbackSuggestion
	}
	return Verdict{Reason: reason, Suggestion: suggestion}
}

// Decision maps the verdict onto an enforcement decision.
func (v Verdict) Decision() Decision {
	if v.Safe {
		return Allow
	}
	return Deny
}

// Call is a normalized direct RPC invocation: blockchain id, method name
// and positional params.
type Call struct {
	Blockchain string `json:"blockchain" yaml:"blockchain"`
	Method     string `json:"method" yaml:"method"`
	Params     []any  `json:"params" yaml:"params"`
}

// ParamsFromJSON decodes a JSON array of positional params.
// Empty input yields an empty slice.
func ParamsFromJSON(raw string) ([]any, error) {
	if raw == "" {
		return []any{}, nil
	}
	var params []any
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		return nil, err
	}
	return params, nil
}
