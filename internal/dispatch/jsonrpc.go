package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/rpcwatch/internal/chains"
)

// DefaultMaxResponseBytes caps how much of an RPC response is read.
const DefaultMaxResponseBytes = 1 << 20

// Dispatcher sends one RPC call to a network.
type Dispatcher interface {
	Dispatch(ctx context.Context, network chains.Network, method string, params []any) (json.RawMessage, error)
}

// RPCError is a JSON-RPC error object returned by a node.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// JSONRPCClient dispatches JSON-RPC 2.0 calls over HTTP.
type JSONRPCClient struct {
	httpClient       *http.Client
	maxResponseBytes int64
}

// NewJSONRPCClient creates a client with the given request timeout.
func NewJSONRPCClient(timeout time.Duration) *JSONRPCClient {
	return &JSONRPCClient{
		httpClient:       &http.Client{Timeout: timeout},
		maxResponseBytes: DefaultMaxResponseBytes,
	}
}

// WithMaxResponseBytes returns a copy of the client with a different
// response cap.
func (c *JSONRPCClient) WithMaxResponseBytes(n int64) *JSONRPCClient {
	out := *c
	out.maxResponseBytes = n
	return &out
}

// Dispatch posts a JSON-RPC request to the network endpoint.
// Responses larger than the cap are rejected rather than truncated.
func (c *JSONRPCClient) Dispatch(ctx context.Context, network chains.Network, method string, params []any) (json.RawMessage, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		ID:      uuid.NewString(),
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, network.RPCURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %w", network.ID, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if int64(len(raw)) > c.maxResponseBytes {
		return nil, fmt.Errorf("response from %s exceeds %d bytes", network.ID, c.maxResponseBytes)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned HTTP %d", network.ID, resp.StatusCode)
	}

	var out rpcResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode response from %s: %w", network.ID, err)
	}
	if out.Error != nil {
		return nil, out.Error
	}
	return out.Result, nil
}
