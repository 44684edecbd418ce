package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/rpcwatch/internal/audit"
	"github.com/ppiankov/rpcwatch/internal/chains"
	"github.com/ppiankov/rpcwatch/internal/dispatch"
	"github.com/ppiankov/rpcwatch/internal/model"
	"github.com/ppiankov/rpcwatch/internal/safety"
)

// --- Input/Output types ---

// RPCInput defines parameters for the rpcwatch_rpc tool.
type RPCInput struct {
	Blockchain string            `json:"blockchain" jsonschema:"network id or alias (see rpcwatch_chains)"`
	Method     string            `json:"method" jsonschema:"JSON-RPC method name"`
	Params     []any             `json:"params,omitempty" jsonschema:"positional JSON-RPC params"`
	Override   *safety.Overrides `json:"override,omitempty" jsonschema:"explicit per-call safety ceilings"`
}

// CallOutput contains a dispatched call's result or block details.
type CallOutput struct {
	Blockchain string `json:"blockchain"`
	Method     string `json:"method"`
	Result     any    `json:"result,omitempty"`
	EstimateKB int    `json:"estimate_kb"`
	DurationMS int64  `json:"duration_ms,omitempty"`
	Blocked    bool   `json:"blocked,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Error      string `json:"error,omitempty"`
}

// BlockInput defines parameters for the rpcwatch_block tool.
type BlockInput struct {
	Blockchain          string `json:"blockchain" jsonschema:"EVM network id or alias"`
	Block               string `json:"block,omitempty" jsonschema:"block number (decimal or 0x hex) or tag, default latest"`
	IncludeTransactions bool   `json:"include_transactions,omitempty" jsonschema:"return full transaction objects"`
}

// LogsInput defines parameters for the rpcwatch_logs tool.
type LogsInput struct {
	Blockchain string `json:"blockchain" jsonschema:"EVM network id or alias"`
	FromBlock  string `json:"from_block,omitempty" jsonschema:"first block (decimal, 0x hex, or tag)"`
	ToBlock    string `json:"to_block,omitempty" jsonschema:"last block (decimal, 0x hex, or tag), default latest"`
	BlockHash  string `json:"block_hash,omitempty" jsonschema:"restrict to a single block by hash"`
	Address    string `json:"address,omitempty" jsonschema:"contract address"`
	Topics     []any  `json:"topics,omitempty" jsonschema:"topic filters"`
}

// QueryInput defines parameters for the rpcwatch_query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"natural-language description of the data wanted"`
}

// QueryOutput contains the intent verdict.
type QueryOutput struct {
	Safe       bool   `json:"safe"`
	Blocked    bool   `json:"blocked,omitempty"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// CheckInput defines parameters for the rpcwatch_check tool.
type CheckInput struct {
	Blockchain string            `json:"blockchain,omitempty" jsonschema:"network id or alias"`
	Method     string            `json:"method" jsonschema:"JSON-RPC method name"`
	Params     []any             `json:"params,omitempty" jsonschema:"positional JSON-RPC params"`
	Override   *safety.Overrides `json:"override,omitempty" jsonschema:"explicit per-call safety ceilings"`
}

// CheckOutput contains the verdict for a call that was not sent.
type CheckOutput struct {
	Decision   string `json:"decision"`
	Class      string `json:"class"`
	Reason     string `json:"reason,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	EstimateKB int    `json:"estimate_kb"`
	OverBudget bool   `json:"over_budget,omitempty"`
}

// EstimateInput defines parameters for the rpcwatch_estimate tool.
type EstimateInput struct {
	Method string `json:"method" jsonschema:"JSON-RPC method name"`
	Params []any  `json:"params,omitempty" jsonschema:"positional JSON-RPC params"`
}

// EstimateOutput contains the advisory size estimate.
type EstimateOutput struct {
	Method     string `json:"method"`
	Class      string `json:"class"`
	EstimateKB int    `json:"estimate_kb"`
	BudgetKB   int    `json:"budget_kb"`
	OverBudget bool   `json:"over_budget"`
}

// ChainsInput defines parameters for the rpcwatch_chains tool.
type ChainsInput struct {
	Family string `json:"family,omitempty" jsonschema:"only list this family (evm/solana/sui/cosmos)"`
}

// ChainsOutput lists known networks.
type ChainsOutput struct {
	Networks []ChainInfo `json:"networks"`
}

// ChainInfo describes one network without its endpoint.
type ChainInfo struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Family       string   `json:"family"`
	ChainID      string   `json:"chain_id,omitempty"`
	LatestMarker string   `json:"latest_marker"`
	Explorer     string   `json:"explorer,omitempty"`
	Aliases      []string `json:"aliases,omitempty"`
}

// --- Handlers ---

func (s *Server) handleRPC(ctx context.Context, req *mcpsdk.CallToolRequest, input RPCInput) (*mcpsdk.CallToolResult, CallOutput, error) {
	if input.Method == "" {
		return nil, CallOutput{}, errors.New("method is required")
	}
	validate := dispatch.ValidateCall
	if input.Override != nil {
		validate = dispatch.WithOverride(*input.Override)
	}
	call := model.Call{Blockchain: input.Blockchain, Method: input.Method, Params: input.Params}
	return s.gatedCall(ctx, "rpcwatch_rpc", call, validate)
}

func (s *Server) handleBlock(ctx context.Context, req *mcpsdk.CallToolRequest, input BlockInput) (*mcpsdk.CallToolResult, CallOutput, error) {
	network, err := s.evmNetwork(input.Blockchain, "rpcwatch_block")
	if err != nil {
		return nil, CallOutput{}, err
	}

	block := input.Block
	if block == "" {
		block = network.LatestMarker()
	}
	call := model.Call{
		Blockchain: network.ID,
		Method:     "eth_getBlockByNumber",
		Params:     []any{blockTag(block), input.IncludeTransactions},
	}
	return s.gatedCall(ctx, "rpcwatch_block", call, dispatch.BlockQuery)
}

func (s *Server) handleLogs(ctx context.Context, req *mcpsdk.CallToolRequest, input LogsInput) (*mcpsdk.CallToolResult, CallOutput, error) {
	network, err := s.evmNetwork(input.Blockchain, "rpcwatch_logs")
	if err != nil {
		return nil, CallOutput{}, err
	}

	filter := map[string]any{}
	if input.BlockHash != "" {
		filter["blockHash"] = input.BlockHash
	} else {
		if input.FromBlock != "" {
			filter["fromBlock"] = blockTag(input.FromBlock)
		}
		if input.ToBlock != "" {
			filter["toBlock"] = blockTag(input.ToBlock)
		}
	}
	if input.Address != "" {
		filter["address"] = input.Address
	}
	if len(input.Topics) > 0 {
		filter["topics"] = input.Topics
	}

	call := model.Call{Blockchain: network.ID, Method: "eth_getLogs", Params: []any{filter}}
	return s.gatedCall(ctx, "rpcwatch_logs", call, dispatch.LogQuery)
}

func (s *Server) handleQuery(ctx context.Context, req *mcpsdk.CallToolRequest, input QueryInput) (*mcpsdk.CallToolResult, QueryOutput, error) {
	verdict := s.gate.Engine().ValidateQuery(input.Query)
	s.recordAudit(auditRecord{
		subject: audit.Subject{Tool: "rpcwatch_query", Query: input.Query},
		verdict: verdict,
	})

	out := QueryOutput{Safe: verdict.Safe}
	if !verdict.Safe {
		out.Blocked = true
		out.Reason = verdict.Reason
		out.Suggestion = verdict.Suggestion
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}
	return nil, out, nil
}

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	if input.Method == "" {
		return nil, CheckOutput{}, errors.New("method is required")
	}
	validate := dispatch.ValidateCall
	if input.Override != nil {
		validate = dispatch.WithOverride(*input.Override)
	}

	outcome := s.gate.Check(model.Call{Blockchain: input.Blockchain, Method: input.Method, Params: input.Params}, validate)
	return nil, CheckOutput{
		Decision:   string(outcome.Verdict.Decision()),
		Class:      outcome.Class.String(),
		Reason:     outcome.Verdict.Reason,
		Suggestion: outcome.Verdict.Suggestion,
		EstimateKB: outcome.EstimateKB,
		OverBudget: outcome.OverBudget,
	}, nil
}

func (s *Server) handleEstimate(ctx context.Context, req *mcpsdk.CallToolRequest, input EstimateInput) (*mcpsdk.CallToolResult, EstimateOutput, error) {
	cfg := s.gate.Engine().Config()
	return nil, EstimateOutput{
		Method:     input.Method,
		Class:      safety.Classify(input.Method).String(),
		EstimateKB: safety.EstimateKB(input.Method, input.Params),
		BudgetKB:   cfg.MaxResponseSizeEstimateKB,
		OverBudget: safety.OverBudget(input.Method, input.Params, cfg),
	}, nil
}

func (s *Server) handleChains(ctx context.Context, req *mcpsdk.CallToolRequest, input ChainsInput) (*mcpsdk.CallToolResult, ChainsOutput, error) {
	family := strings.ToLower(strings.TrimSpace(input.Family))
	out := ChainsOutput{Networks: []ChainInfo{}}
	for _, n := range s.gate.Catalog().List() {
		if family != "" && string(n.Family) != family {
			continue
		}
		out.Networks = append(out.Networks, ChainInfo{
			ID:           n.ID,
			Name:         n.Name,
			Family:       string(n.Family),
			ChainID:      n.ChainID,
			LatestMarker: n.LatestMarker(),
			Explorer:     n.Explorer,
			Aliases:      n.Aliases,
		})
	}
	return nil, out, nil
}

// --- Helpers ---

// gatedCall sends a call through the gate and maps the outcome to tool output.
// Blocked calls and JSON-RPC errors are tool errors; transport failures are
// protocol errors.
func (s *Server) gatedCall(ctx context.Context, tool string, call model.Call, validate dispatch.Validator) (*mcpsdk.CallToolResult, CallOutput, error) {
	rec := auditRecord{
		subject:    audit.Subject{Tool: tool, Blockchain: call.Blockchain, Method: call.Method},
		class:      safety.Classify(call.Method).String(),
		estimateKB: safety.EstimateKB(call.Method, call.Params),
		verdict:    model.Safe(),
	}
	out := CallOutput{Blockchain: call.Blockchain, Method: call.Method, EstimateKB: rec.estimateKB}

	res, err := s.gate.Call(ctx, call, validate)
	if err != nil {
		var blocked *dispatch.BlockedError
		if errors.As(err, &blocked) {
			rec.verdict = blocked.Verdict
			s.recordAudit(rec)
			out.Blocked = true
			out.Reason = blocked.Verdict.Reason
			out.Suggestion = blocked.Verdict.Suggestion
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}

		rec.dispatched = !errors.Is(err, chains.ErrUnknownNetwork)
		rec.err = err
		s.recordAudit(rec)

		var rpcErr *dispatch.RPCError
		if errors.As(err, &rpcErr) {
			out.Error = rpcErr.Error()
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}
		return nil, CallOutput{}, err
	}

	rec.dispatched = true
	s.recordAudit(rec)

	out.Blockchain = res.Network.ID
	out.DurationMS = res.Duration.Milliseconds()
	if len(res.Result) > 0 {
		var decoded any
		if err := json.Unmarshal(res.Result, &decoded); err != nil {
			decoded = string(res.Result)
		}
		out.Result = decoded
	}
	return nil, out, nil
}

func (s *Server) evmNetwork(id, tool string) (chains.Network, error) {
	network, err := s.gate.Catalog().Lookup(id)
	if err != nil {
		return chains.Network{}, err
	}
	if network.Family != chains.EVM {
		return chains.Network{}, fmt.Errorf("%s supports evm networks only; %s is %s", tool, network.ID, network.Family)
	}
	return network, nil
}

// blockTag converts a decimal block number to the 0x form EVM nodes expect.
// Tags and hex values pass through.
func blockTag(v string) string {
	v = strings.TrimSpace(v)
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return v
	}
	return "0x" + strconv.FormatUint(n, 16)
}
