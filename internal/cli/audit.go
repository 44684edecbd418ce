package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/rpcwatch/internal/audit"
)

func newAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit log operations",
		Long:  "Commands for verifying and inspecting the hash-chained audit log.",
	}
	cmd.AddCommand(newAuditVerifyCmd(), newAuditTailCmd(), newAuditReplayCmd())
	return cmd
}

func newAuditVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <path>",
		Short: "Verify hash chain integrity of an audit log",
		Long:  "Walks the JSONL audit log and validates that every entry's prev_hash\nmatches the SHA-256 of the previous entry. Exits 0 if valid, 1 if tampered.",
		Args:  cobra.ExactArgs(1),
		RunE:  runAuditVerify,
	}
}

func runAuditVerify(cmd *cobra.Command, args []string) error {
	result := audit.Verify(args[0])
	if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d entries verified\n", result.Lines)
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "FAILED at line %d: %s\n", result.ErrorLine, result.Error)
	return &exitError{code: 1}
}

func newAuditTailCmd() *cobra.Command {
	var lines int
	cmd := &cobra.Command{
		Use:   "tail <path>",
		Short: "Show recent audit log entries",
		Long:  "Reads the last N entries from the JSONL audit log and pretty-prints them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuditTail(cmd, args[0], lines)
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 10, "Number of recent entries to show")
	return cmd
}

func runAuditTail(cmd *cobra.Command, path string, n int) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := audit.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read audit log: %w", err)
	}

	start := len(lines) - n
	if start < 0 {
		start = 0
	}

	w := cmd.OutOrStdout()
	for _, line := range lines[start:] {
		var entry audit.Entry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			fmt.Fprintln(w, line)
			continue
		}
		out, _ := json.MarshalIndent(entry, "", "  ")
		fmt.Fprintln(w, string(out))
	}
	return nil
}

type replayFlags struct {
	trace  string
	from   string
	to     string
	format string
}

func newAuditReplayCmd() *cobra.Command {
	var f replayFlags
	cmd := &cobra.Command{
		Use:   "replay <path>",
		Short: "Replay a session from the audit log",
		Long:  "Reads the audit log, filters by trace ID and optional time range,\nand renders a decision timeline with summary.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAuditReplay(cmd, args[0], f)
		},
	}
	cmd.Flags().StringVar(&f.trace, "trace", "", "Only show entries for this trace ID")
	cmd.Flags().StringVar(&f.from, "from", "", "Start time filter (RFC3339)")
	cmd.Flags().StringVar(&f.to, "to", "", "End time filter (RFC3339)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format (text|json)")
	return cmd
}

func runAuditReplay(cmd *cobra.Command, path string, f replayFlags) error {
	filter := audit.Filter{TraceID: f.trace}

	if f.from != "" {
		from, err := time.Parse(time.RFC3339, f.from)
		if err != nil {
			return fmt.Errorf("invalid --from time %q: %w", f.from, err)
		}
		filter.From = from
	}
	if f.to != "" {
		to, err := time.Parse(time.RFC3339, f.to)
		if err != nil {
			return fmt.Errorf("invalid --to time %q: %w", f.to, err)
		}
		filter.To = to
	}

	result, err := audit.Replay(path, filter)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	switch f.format {
	case "json":
		out, err := audit.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, out)
	default:
		fmt.Fprint(w, audit.FormatTimeline(result))
	}
	return nil
}
