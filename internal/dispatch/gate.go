package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/ppiankov/rpcwatch/internal/chains"
	"github.com/ppiankov/rpcwatch/internal/model"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

var tracer = otel.Tracer("rpcwatch/dispatch")

// Validator produces the verdict for a call with a given engine.
type Validator func(e *safety.Engine, call model.Call) model.Verdict

// ValidateCall routes through the engine's verdict assembler.
func ValidateCall(e *safety.Engine, call model.Call) model.Verdict {
	return e.ValidateCall(call.Blockchain, call.Method, call.Params)
}

// BlockQuery runs only the block validator.
func BlockQuery(e *safety.Engine, call model.Call) model.Verdict {
	return e.CheckBlockQuery(call.Method, call.Params)
}

// LogQuery runs only the log validator.
func LogQuery(e *safety.Engine, call model.Call) model.Verdict {
	return e.CheckLogQuery(call.Params)
}

// Result is a dispatched call's response.
type Result struct {
	Network    chains.Network
	Method     string
	Result     json.RawMessage
	EstimateKB int
	Duration   time.Duration
}

// Outcome is the gate's assessment of a call without dispatching it.
type Outcome struct {
	Verdict    model.Verdict
	Class      safety.MethodClass
	EstimateKB int
	OverBudget bool
}

// Gate runs every call through the safety engine and dispatches only
// calls with a safe verdict. The engine can be swapped at runtime; each
// call sees one engine snapshot.
type Gate struct {
	engine     atomic.Pointer[safety.Engine]
	catalog    *chains.Catalog
	dispatcher Dispatcher
	observer   Observer
}

// NewGate creates a gate. Nil observers are ignored.
func NewGate(engine *safety.Engine, catalog *chains.Catalog, d Dispatcher, observers ...Observer) *Gate {
	g := &Gate{catalog: catalog, dispatcher: d}
	g.engine.Store(engine)

	var live multiObserver
	for _, o := range observers {
		if o != nil {
			live = append(live, o)
		}
	}
	g.observer = live
	return g
}

// Engine returns the current engine.
func (g *Gate) Engine() *safety.Engine {
	return g.engine.Load()
}

// SetEngine replaces the engine for subsequent calls.
func (g *Gate) SetEngine(e *safety.Engine) {
	g.engine.Store(e)
}

// Catalog returns the chain catalog.
func (g *Gate) Catalog() *chains.Catalog {
	return g.catalog
}

// Check evaluates a call without dispatching it.
func (g *Gate) Check(call model.Call, validate Validator) Outcome {
	if validate == nil {
		validate = ValidateCall
	}
	e := g.Engine()
	return Outcome{
		Verdict:    validate(e, call),
		Class:      safety.Classify(call.Method),
		EstimateKB: safety.EstimateKB(call.Method, call.Params),
		OverBudget: safety.OverBudget(call.Method, call.Params, e.Config()),
	}
}

// Call validates a call and dispatches it when the verdict is safe.
// An unsafe verdict returns *BlockedError and the network is never contacted.
func (g *Gate) Call(ctx context.Context, call model.Call, validate Validator) (*Result, error) {
	start := time.Now()
	ctx, span := tracer.Start(ctx, "rpcwatch.call")
	defer span.End()

	span.SetAttributes(
		attribute.String("rpcwatch.blockchain", call.Blockchain),
		attribute.String("rpcwatch.method", call.Method),
	)

	outcome := g.Check(call, validate)
	span.SetAttributes(
		attribute.String("rpcwatch.class", outcome.Class.String()),
		attribute.Bool("rpcwatch.safe", outcome.Verdict.Safe),
		attribute.Int("rpcwatch.estimate_kb", outcome.EstimateKB),
		attribute.Bool("rpcwatch.over_budget", outcome.OverBudget),
	)

	event := Event{
		Call:       call,
		Class:      outcome.Class.String(),
		Verdict:    outcome.Verdict,
		EstimateKB: outcome.EstimateKB,
		OverBudget: outcome.OverBudget,
	}
	defer func() {
		event.Duration = time.Since(start)
		g.observer.ObserveCall(ctx, event)
	}()

	if !outcome.Verdict.Safe {
		span.SetAttributes(attribute.String("rpcwatch.reason", outcome.Verdict.Reason))
		return nil, &BlockedError{
			Blockchain: call.Blockchain,
			Method:     call.Method,
			Verdict:    outcome.Verdict,
		}
	}

	network, err := g.catalog.Lookup(call.Blockchain)
	if err != nil {
		event.Err = err
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	event.Dispatched = true
	raw, err := g.dispatcher.Dispatch(ctx, network, call.Method, call.Params)
	if err != nil {
		event.Err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("dispatch %s to %s: %w", call.Method, network.ID, err)
	}

	return &Result{
		Network:    network,
		Method:     call.Method,
		Result:     raw,
		EstimateKB: outcome.EstimateKB,
		Duration:   time.Since(start),
	}, nil
}

// WithOverride returns a Validator that evaluates calls against the
// engine's config with o applied via Config.Override. An override that
// fails validation yields an unsafe verdict.
func WithOverride(o safety.Overrides) Validator {
	if o.IsZero() {
		return ValidateCall
	}
	return func(e *safety.Engine, call model.Call) model.Verdict {
		cfg, err := e.Config().Override(o)
		if err != nil {
			return model.Unsafe(err.Error(), "use positive values for every ceiling in the override")
		}
		return e.ValidateCallWith(cfg, call.Blockchain, call.Method, call.Params)
	}
}
