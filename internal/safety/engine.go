package safety

import (
	"fmt"

	"github.com/ppiankov/rpcwatch/internal/intent"
	"github.com/ppiankov/rpcwatch/internal/model"
)

// Engine assembles classifier and validator outputs into one verdict per
// call. It holds only immutable data and is safe for concurrent use.
type Engine struct {
	cfg     Config
	intents *intent.Set
}

// NewEngine builds an engine. A nil intent set means the built-in patterns.
func NewEngine(cfg Config, intents *intent.Set) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid safety config: %w", err)
	}
	if intents == nil {
		intents = intent.NewDefault()
	}
	return &Engine{cfg: cfg, intents: intents}, nil
}

// NewDefaultEngine builds an engine from DefaultConfig and the built-in patterns.
func NewDefaultEngine() *Engine {
	return &Engine{cfg: DefaultConfig(), intents: intent.NewDefault()}
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Intents returns the engine's intent pattern set.
func (e *Engine) Intents() *intent.Set {
	return e.intents
}

// ValidateCall validates a direct RPC invocation with the engine config.
func (e *Engine) ValidateCall(blockchain, method string, params []any) model.Verdict {
	return e.ValidateCallWith(e.cfg, blockchain, method, params)
}

// ValidateCallWith validates a direct RPC invocation with an explicit
// per-call config.
//
// Methods outside the dangerous set pass immediately and their params are
// never inspected. Dangerous methods go to the validator for their class;
// classes without one are blocked unconditionally.
func (e *Engine) ValidateCallWith(cfg Config, blockchain, method string, params []any) model.Verdict {
	class := Classify(method)
	switch class {
	case ClassNone:
		return model.Safe()
	case ClassBlockFetch:
		return CheckBlockQuery(method, params, cfg)
	case ClassLogFetch:
		return CheckLogQuery(params, cfg)
	case ClassTraceFetch:
		return model.Unsafe(
			fmt.Sprintf("%s on %s is a trace/debug method whose responses routinely exceed the agent context", method, chainLabel(blockchain)),
			"trace a single transaction by hash (debug_traceTransaction), or use a block-explorer service",
		)
	default:
		return model.Unsafe(
			fmt.Sprintf("%s on %s can return unbounded data and is blocked by default", method, chainLabel(blockchain)),
			"use a narrower method with explicit bounds, such as eth_getLogs with address/topic filters and a small block range",
		)
	}
}

// ValidateQuery validates free-text query text with the engine's patterns.
func (e *Engine) ValidateQuery(text string) model.Verdict {
	return ValidateQuery(text, e.intents)
}

// CheckBlockQuery runs the block validator with the engine config.
func (e *Engine) CheckBlockQuery(method string, params []any) model.Verdict {
	return CheckBlockQuery(method, params, e.cfg)
}

// CheckLogQuery runs the log validator with the engine config.
func (e *Engine) CheckLogQuery(params []any) model.Verdict {
	return CheckLogQuery(params, e.cfg)
}

func chainLabel(blockchain string) string {
	if blockchain == "" {
		return "unspecified chain"
	}
	return blockchain
}
