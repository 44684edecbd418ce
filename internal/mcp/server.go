package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/rpcwatch/internal/audit"
	"github.com/ppiankov/rpcwatch/internal/chains"
	"github.com/ppiankov/rpcwatch/internal/dispatch"
	"github.com/ppiankov/rpcwatch/internal/intent"
	"github.com/ppiankov/rpcwatch/internal/model"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

// DefaultTimeout bounds a single dispatched RPC call.
const DefaultTimeout = 30 * time.Second

// Config holds MCP server configuration.
type Config struct {
	SafetyPath   string
	IntentsPath  string
	ChainsPath   string
	AuditLogPath string
	Timeout      time.Duration
	Version      string
	// Limits are tighten-only ceilings layered over the safety config file.
	// They are re-applied on every reload and can never loosen the file.
	Limits safety.Overrides

	// Dispatcher replaces the JSON-RPC HTTP client. Used by tests.
	Dispatcher dispatch.Dispatcher
	// LogOutput receives structured gate and reload logs. Defaults to stderr.
	LogOutput io.Writer
}

// Server wraps the MCP SDK server with the rpcwatch safety gate.
type Server struct {
	mcpServer  *mcpsdk.Server
	gate       *dispatch.Gate
	auditLog   *audit.Log
	logger     *slog.Logger
	traceID    string
	safetyPath string
	intentPath string
	limits     safety.Overrides

	mu         sync.Mutex
	configHash string
}

// New creates an MCP server with loaded safety config, intent patterns,
// chain catalog and tools.
func New(cfg Config) (*Server, error) {
	engine, configHash, err := loadEngine(cfg.SafetyPath, cfg.IntentsPath, cfg.Limits)
	if err != nil {
		return nil, err
	}

	catalog, err := chains.LoadCatalog(cfg.ChainsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load chain catalog: %w", err)
	}

	logOutput := cfg.LogOutput
	if logOutput == nil {
		logOutput = os.Stderr
	}

	d := cfg.Dispatcher
	if d == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		d = dispatch.NewJSONRPCClient(timeout)
	}

	var auditLog *audit.Log
	if cfg.AuditLogPath != "" {
		auditLog, err = audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit log: %w", err)
		}
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		gate:       dispatch.NewGate(engine, catalog, d, dispatch.NewLogObserver(logOutput)),
		auditLog:   auditLog,
		logger:     slog.New(slog.NewTextHandler(logOutput, nil)),
		traceID:    "t-" + uuid.NewString(),
		safetyPath: cfg.SafetyPath,
		intentPath: cfg.IntentsPath,
		limits:     cfg.Limits,
		configHash: configHash,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "rpcwatch",
			Version: version,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

func loadEngine(safetyPath, intentsPath string, limits safety.Overrides) (*safety.Engine, string, error) {
	cfg, hash, err := safety.LoadConfigWithHash(safetyPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load safety config: %w", err)
	}
	cfg = cfg.Tighten(limits)
	intents, err := intent.Load(intentsPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load intent patterns: %w", err)
	}
	engine, err := safety.NewEngine(cfg, intents)
	if err != nil {
		return nil, "", err
	}
	return engine, hash, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the audit log if configured.
func (s *Server) Close() error {
	if s.auditLog != nil {
		return s.auditLog.Close()
	}
	return nil
}

// Gate returns the server's safety gate.
func (s *Server) Gate() *dispatch.Gate {
	return s.gate
}

// TraceID identifies this server session in audit entries.
func (s *Server) TraceID() string {
	return s.traceID
}

// ConfigHash returns the hash of the safety config currently in force.
func (s *Server) ConfigHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.configHash
}

// Reload rebuilds the engine from the configured files and swaps it in.
// On error the running engine stays in place.
func (s *Server) Reload() error {
	engine, hash, err := loadEngine(s.safetyPath, s.intentPath, s.limits)
	if err != nil {
		return err
	}
	s.gate.SetEngine(engine)

	s.mu.Lock()
	s.configHash = hash
	s.mu.Unlock()
	return nil
}

// WatchPaths returns the files whose changes trigger Reload.
func (s *Server) WatchPaths() []string {
	safetyPath := s.safetyPath
	if safetyPath == "" {
		safetyPath = safety.DefaultConfigPath()
	}
	intentPath := s.intentPath
	if intentPath == "" {
		intentPath = intent.DefaultPath()
	}
	return []string{safetyPath, intentPath}
}

type auditRecord struct {
	subject    audit.Subject
	verdict    model.Verdict
	class      string
	estimateKB int
	dispatched bool
	err        error
}

func (s *Server) recordAudit(r auditRecord) {
	if s.auditLog == nil {
		return
	}
	entry := audit.Entry{
		TraceID:    s.traceID,
		Subject:    r.subject,
		Decision:   string(r.verdict.Decision()),
		Class:      r.class,
		Reason:     r.verdict.Reason,
		Suggestion: r.verdict.Suggestion,
		EstimateKB: r.estimateKB,
		Dispatched: r.dispatched,
		ConfigHash: s.ConfigHash(),
	}
	if r.err != nil {
		entry.Error = r.err.Error()
	}
	if err := s.auditLog.Record(entry); err != nil {
		s.logger.Error("audit_record_failed", "error", err)
	}
}

// registerTools adds all rpcwatch tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rpcwatch_rpc",
		Description: "Call a blockchain JSON-RPC method through the rpcwatch safety gate. Calls likely to flood the agent context are blocked with a reason and a suggestion.",
	}, s.handleRPC)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rpcwatch_block",
		Description: "Fetch an EVM block by number or tag. Fetching full transactions is blocked; use transaction hashes instead.",
	}, s.handleBlock)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rpcwatch_logs",
		Description: "Fetch EVM event logs. Requires an address or topics filter and a bounded block range.",
	}, s.handleLogs)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rpcwatch_query",
		Description: "Check a natural-language blockchain data request for unbounded or history-scanning intent before planning RPC calls.",
	}, s.handleQuery)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rpcwatch_check",
		Description: "Check whether an RPC call would be allowed by rpcwatch without sending it (dry-run).",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rpcwatch_estimate",
		Description: "Estimate the response size of an RPC call in KB.",
	}, s.handleEstimate)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rpcwatch_chains",
		Description: "List the blockchain networks rpcwatch can reach.",
	}, s.handleChains)
}
