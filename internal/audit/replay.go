package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"
)

// Filter selects entries for a replay. Zero values match everything.
type Filter struct {
	TraceID string
	From    time.Time
	To      time.Time
}

// MethodCount is a blocked method with how often it was blocked.
type MethodCount struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

// Summary aggregates the entries of a replay.
type Summary struct {
	Total           int           `json:"total"`
	AllowCount      int           `json:"allow_count"`
	DenyCount       int           `json:"deny_count"`
	DispatchedCount int           `json:"dispatched_count"`
	ErrorCount      int           `json:"error_count"`
	EstimatedKB     int           `json:"estimated_kb"`
	TopBlocked      []MethodCount `json:"top_blocked,omitempty"`
	FirstTimestamp  string        `json:"first_timestamp,omitempty"`
	LastTimestamp   string        `json:"last_timestamp,omitempty"`
}

// ReplayResult holds filtered entries and their summary.
type ReplayResult struct {
	TraceID string  `json:"trace_id,omitempty"`
	Entries []Entry `json:"entries"`
	Summary Summary `json:"summary"`
}

// Replay reads the audit log and returns entries matching the filter.
// Malformed lines are skipped; use Verify to detect them.
func Replay(path string, filter Filter) (*ReplayResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	result := &ReplayResult{TraceID: filter.TraceID}
	blocked := make(map[string]int)

	scanner := NewScanner(f)
	for scanner.Scan() {
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if !filter.matches(entry) {
			continue
		}
		result.Entries = append(result.Entries, entry)
		addToSummary(&result.Summary, blocked, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read audit log: %w", err)
	}

	result.Summary.TopBlocked = rankBlocked(blocked)
	return result, nil
}

func (f Filter) matches(entry Entry) bool {
	if f.TraceID != "" && entry.TraceID != f.TraceID {
		return false
	}
	if f.From.IsZero() && f.To.IsZero() {
		return true
	}
	ts, err := time.Parse(TimestampFormat, entry.Timestamp)
	if err != nil {
		return false
	}
	if !f.From.IsZero() && ts.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && ts.After(f.To) {
		return false
	}
	return true
}

func addToSummary(s *Summary, blocked map[string]int, entry Entry) {
	s.Total++
	switch entry.Decision {
	case "allow":
		s.AllowCount++
	case "deny":
		s.DenyCount++
		key := entry.Subject.Method
		if key == "" {
			key = entry.Subject.Tool
		}
		blocked[key]++
	}
	if entry.Dispatched {
		s.DispatchedCount++
		s.EstimatedKB += entry.EstimateKB
	}
	if entry.Error != "" {
		s.ErrorCount++
	}
	if s.FirstTimestamp == "" {
		s.FirstTimestamp = entry.Timestamp
	}
	s.LastTimestamp = entry.Timestamp
}

func rankBlocked(blocked map[string]int) []MethodCount {
	out := make([]MethodCount, 0, len(blocked))
	for m, n := range blocked {
		out = append(out, MethodCount{Method: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Method < out[j].Method
	})
	return out
}
