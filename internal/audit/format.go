package audit

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const separator = "──────────────────────────────────────────────────────────────────"

// FormatTimeline renders a ReplayResult as a human-readable timeline.
func FormatTimeline(result *ReplayResult) string {
	label := result.TraceID
	if label == "" {
		label = "all traces"
	}
	if len(result.Entries) == 0 {
		return fmt.Sprintf("Trace: %s | No entries found.\n", label)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Trace: %s | %s–%s UTC\n", label,
		reformat(result.Summary.FirstTimestamp, "2006-01-02 15:04:05"),
		reformat(result.Summary.LastTimestamp, "15:04:05"))
	b.WriteString(separator + "\n")

	for _, e := range result.Entries {
		target := e.Subject.Method
		if target == "" {
			target = e.Subject.Query
		}
		chain := e.Subject.Blockchain
		if chain == "" {
			chain = "-"
		}
		fmt.Fprintf(&b, "%-10s %-6s %-12s %-10s %-40s %5dKB\n",
			reformat(e.Timestamp, "15:04:05"),
			strings.ToUpper(e.Decision),
			truncate(e.Subject.Tool, 12),
			truncate(chain, 10),
			truncate(target, 40),
			e.EstimateKB)
	}

	b.WriteString(separator + "\n")
	b.WriteString(formatSummary(result.Summary))
	return b.String()
}

// FormatJSON renders a ReplayResult as indented JSON.
func FormatJSON(result *ReplayResult) (string, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal replay result: %w", err)
	}
	return string(data), nil
}

func formatSummary(s Summary) string {
	line := fmt.Sprintf("Summary: %d allow, %d deny, %d dispatched (~%dKB)", s.AllowCount, s.DenyCount, s.DispatchedCount, s.EstimatedKB)
	if s.ErrorCount > 0 {
		line += fmt.Sprintf(", %d errors", s.ErrorCount)
	}
	if len(s.TopBlocked) > 0 {
		top := s.TopBlocked[0]
		line += fmt.Sprintf(" | Most blocked: %s (%d)", top.Method, top.Count)
	}
	return line + "\n"
}

func reformat(ts, layout string) string {
	t, err := time.Parse(TimestampFormat, ts)
	if err != nil {
		return ts
	}
	return t.Format(layout)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
