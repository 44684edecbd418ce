package safety

// Response-size estimates in KB. Conservative by intent; used only for
// telemetry and audit, never for gating.
const (
	defaultEstimateKB = 5
	blockHeaderKB     = 5
	blockWithTxKB     = 500
	logsEstimateKB    = 200
	traceEstimateKB   = 1000
	filterLogsKB      = 200
	filterChangesKB   = 50
	txpoolContentKB   = 2000
)

var estimatesKB = map[string]int{
	"eth_getLogs":                   logsEstimateKB,
	"debug_traceBlockByNumber":      traceEstimateKB,
	"debug_traceBlockByHash":        traceEstimateKB,
	"debug_traceBlock":              traceEstimateKB,
	"trace_block":                   traceEstimateKB,
	"trace_filter":                  traceEstimateKB,
	"trace_replayBlockTransactions": traceEstimateKB,
	"eth_getFilterLogs":             filterLogsKB,
	"eth_getFilterChanges":          filterChangesKB,
	"txpool_content":                txpoolContentKB,
}

// EstimateKB returns a conservative response-size estimate for a call.
func EstimateKB(method string, params []any) int {
	if Classify(method) == ClassBlockFetch {
		if include, ok := includeTransactions(params); include || !ok {
			return blockWithTxKB
		}
		return blockHeaderKB
	}
	if kb, ok := estimatesKB[method]; ok {
		return kb
	}
	return defaultEstimateKB
}

// OverBudget reports whether the estimate for a call exceeds the config's
// advisory response-size budget.
func OverBudget(method string, params []any, cfg Config) bool {
	return EstimateKB(method, params) > cfg.MaxResponseSizeEstimateKB
}
