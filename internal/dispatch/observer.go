package dispatch

import (
	"context"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/ppiankov/rpcwatch/internal/model"
)

// Event describes one pass through the gate.
type Event struct {
	Call       model.Call
	Class      string
	Verdict    model.Verdict
	EstimateKB int
	OverBudget bool
	Dispatched bool
	Duration   time.Duration
	Err        error
}

// Observer receives gate events.
type Observer interface {
	ObserveCall(ctx context.Context, event Event)
}

// NoopObserver ignores all events.
type NoopObserver struct{}

func (NoopObserver) ObserveCall(context.Context, Event) {}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, event Event)

func (f ObserverFunc) ObserveCall(ctx context.Context, event Event) { f(ctx, event) }

type logObserver struct {
	logger *slog.Logger
}

// NewLogObserver writes gate events to w as structured text.
func NewLogObserver(w io.Writer) Observer {
	if w == nil {
		return NoopObserver{}
	}
	return &logObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logObserver) ObserveCall(ctx context.Context, event Event) {
	attrs := []any{
		"blockchain", event.Call.Blockchain,
		"method", event.Call.Method,
		"class", event.Class,
		"decision", string(event.Verdict.Decision()),
		"estimate_kb", event.EstimateKB,
		"dispatched", event.Dispatched,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs, "trace_id", sc.TraceID().String())
	}
	if !event.Verdict.Safe {
		attrs = append(attrs, "reason", event.Verdict.Reason)
	}
	if event.OverBudget {
		attrs = append(attrs, "over_budget", true)
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "rpc_call", attrs...)
		return
	}
	if !event.Verdict.Safe {
		o.logger.WarnContext(ctx, "rpc_call", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "rpc_call", attrs...)
}

type multiObserver []Observer

func (m multiObserver) ObserveCall(ctx context.Context, event Event) {
	for _, o := range m {
		o.ObserveCall(ctx, event)
	}
}
