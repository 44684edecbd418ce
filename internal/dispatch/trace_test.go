package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/ppiankov/rpcwatch/internal/model"
)

func TestGateSpanAttributes(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { tp.Shutdown(context.Background()) })

	g := newTestGate(&fakeDispatcher{result: json.RawMessage(`"0x1"`)})
	_, err := g.Call(context.Background(), model.Call{Blockchain: "ethereum", Method: "txpool_content"}, nil)
	require.Error(t, err)

	spans := rec.Ended()
	require.NotEmpty(t, spans)
	span := spans[len(spans)-1]
	assert.Equal(t, "rpcwatch.call", span.Name())

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "txpool_content", attrs["rpcwatch.method"].AsString())
	assert.Equal(t, "other", attrs["rpcwatch.class"].AsString())
	assert.Equal(t, int64(2000), attrs["rpcwatch.estimate_kb"].AsInt64())
	assert.False(t, attrs["rpcwatch.safe"].AsBool())
	assert.NotEmpty(t, attrs["rpcwatch.reason"].AsString())
}

func TestLogObserverIncludesTraceID(t *testing.T) {
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	var buf bytes.Buffer
	NewLogObserver(&buf).ObserveCall(ctx, Event{
		Call:    model.Call{Blockchain: "ethereum", Method: "eth_chainId"},
		Class:   "none",
		Verdict: model.Safe(),
	})

	assert.Contains(t, buf.String(), "trace_id=4bf92f3577b34da6a3ce929d0e0e4736")
	assert.Contains(t, buf.String(), "level=INFO")
}
