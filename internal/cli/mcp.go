package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	rpcmcp "github.com/ppiankov/rpcwatch/internal/mcp"
	"github.com/ppiankov/rpcwatch/internal/telemetry"
)

type mcpFlags struct {
	config   string
	intents  string
	chains   string
	auditLog string
	timeout  time.Duration
	watch    bool
	ceilings ceilingFlags
}

func newMCPCmd() *cobra.Command {
	var f mcpFlags
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP tool server for agent integration",
		Long: "Runs rpcwatch as an MCP (Model Context Protocol) server over stdio.\n" +
			"Exposes safety-gated tools: rpc, block, logs, query, check, estimate, chains.\n\n" +
			"The --max-* flags tighten the safety config file and are re-applied on\n" +
			"every reload. Values looser than the file are ignored.\n\n" +
			"Set OTEL_EXPORTER_OTLP_ENDPOINT to export validation spans over OTLP/gRPC.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.config, "config", "", "Path to safety config YAML (default ~/.rpcwatch/safety.yaml)")
	cmd.Flags().StringVar(&f.intents, "intents", "", "Path to intent patterns YAML (default ~/.rpcwatch/intents.yaml)")
	cmd.Flags().StringVar(&f.chains, "chains", "", "Path to chain catalog YAML (default ~/.rpcwatch/chains.yaml)")
	cmd.Flags().StringVar(&f.auditLog, "audit-log", "", "Path to hash-chained audit log (disabled when empty)")
	cmd.Flags().DurationVar(&f.timeout, "timeout", rpcmcp.DefaultTimeout, "Timeout for a single RPC call")
	cmd.Flags().BoolVar(&f.watch, "watch", true, "Hot-reload safety config and intent patterns on change")
	f.ceilings.register(cmd, "Tighten")
	return cmd
}

func runMCP(cmd *cobra.Command, f mcpFlags) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	shutdown, err := telemetry.Init(ctx, telemetry.Endpoint(), version)
	if err != nil {
		fmt.Fprintf(os.Stderr, "WARN: tracing disabled: %v\n", err)
	}
	defer func() {
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		shutdown(shutCtx)
	}()

	srv, err := rpcmcp.New(rpcmcp.Config{
		SafetyPath:   f.config,
		IntentsPath:  f.intents,
		ChainsPath:   f.chains,
		AuditLogPath: f.auditLog,
		Timeout:      f.timeout,
		Version:      version,
		Limits:       f.ceilings.overrides(cmd),
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	if f.watch {
		reloader, err := rpcmcp.NewReloader(srv, srv.WatchPaths())
		if err != nil {
			fmt.Fprintf(os.Stderr, "WARN: hot-reload disabled: %v\n", err)
		} else {
			go reloader.Run(ctx)
		}
	}

	fmt.Fprintln(os.Stderr, "rpcwatch MCP server running on stdio")
	fmt.Fprintf(os.Stderr, "Session: %s\n", srv.TraceID())
	fmt.Fprintf(os.Stderr, "Config:  %s\n", srv.ConfigHash())
	if f.auditLog != "" {
		fmt.Fprintf(os.Stderr, "Audit:   %s\n", f.auditLog)
	}
	fmt.Fprintln(os.Stderr)

	err = srv.Run(ctx)
	fmt.Fprintln(os.Stderr, "\nShutting down MCP server...")
	return err
}
