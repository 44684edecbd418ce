package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ppiankov/rpcwatch/internal/model"
)

// verdictReport is the printable form of a verdict for validate and query.
type verdictReport struct {
	Subject    string `json:"subject"`
	Blockchain string `json:"blockchain,omitempty"`
	Class      string `json:"class,omitempty"`
	Decision   string `json:"decision"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	EstimateKB int    `json:"estimate_kb,omitempty"`
	OverBudget bool   `json:"over_budget,omitempty"`
}

func newVerdictReport(subject string, v model.Verdict) verdictReport {
	return verdictReport{
		Subject:    subject,
		Decision:   string(v.Decision()),
		Reason:     v.Reason,
		Suggestion: v.Suggestion,
	}
}

func printReport(w io.Writer, r verdictReport, format string) error {
	if format == "json" {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "%-5s  %s", strings.ToUpper(r.Decision), r.Subject)
	if r.Blockchain != "" {
		fmt.Fprintf(w, " on %s", r.Blockchain)
	}
	fmt.Fprintln(w)
	if r.Class != "" {
		fmt.Fprintf(w, "  class:      %s\n", r.Class)
	}
	if r.EstimateKB > 0 {
		budget := ""
		if r.OverBudget {
			budget = " (over budget)"
		}
		fmt.Fprintf(w, "  estimate:   ~%dKB%s\n", r.EstimateKB, budget)
	}
	if r.Reason != "" {
		fmt.Fprintf(w, "  reason:     %s\n", r.Reason)
	}
	if r.Suggestion != "" {
		fmt.Fprintf(w, "  suggestion: %s\n", indentContinuation(r.Suggestion, "              "))
	}
	return nil
}

func indentContinuation(s, prefix string) string {
	return strings.ReplaceAll(s, "\n", "\n"+prefix)
}
