package safety

import "sort"

// MethodClass is the static risk classification of an RPC method.
type MethodClass int

const (
	// ClassNone marks methods not known to be dangerous.
	ClassNone MethodClass = iota
	// ClassBlockFetch marks block fetchers that can inline full transactions.
	ClassBlockFetch
	// ClassLogFetch marks log fetchers bounded only by their filter.
	ClassLogFetch
	// ClassTraceFetch marks trace/debug methods with very large outputs.
	ClassTraceFetch
	// ClassOther marks dangerous methods without a specialized validator.
	ClassOther
)

// String returns the class label used in audit entries and tool output.
func (c MethodClass) String() string {
	switch c {
	case ClassNone:
		return "none"
	case ClassBlockFetch:
		return "block_fetch"
	case ClassLogFetch:
		return "log_fetch"
	case ClassTraceFetch:
		return "trace_fetch"
	case ClassOther:
		return "other"
	default:
		return "unknown"
	}
}

// dangerousMethods is the closed set of known offenders. Lookup is exact
// and case-sensitive: "ETH_GETLOGS" is not eth_getLogs.
var dangerousMethods = map[string]MethodClass{
	"eth_getBlockByNumber": ClassBlockFetch,
	"eth_getBlockByHash":   ClassBlockFetch,

	"eth_getLogs": ClassLogFetch,

	"debug_traceBlockByNumber":      ClassTraceFetch,
	"debug_traceBlockByHash":        ClassTraceFetch,
	"debug_traceBlock":              ClassTraceFetch,
	"trace_block":                   ClassTraceFetch,
	"trace_filter":                  ClassTraceFetch,
	"trace_replayBlockTransactions": ClassTraceFetch,

	"eth_getFilterLogs":    ClassOther,
	"eth_getFilterChanges": ClassOther,
	"txpool_content":       ClassOther,
}

// Classify returns the risk class of method. Methods outside the known
// set are ClassNone: unknown methods are never blocked.
func Classify(method string) MethodClass {
	return dangerousMethods[method]
}

// IsDangerous reports whether method is in the dangerous set.
func IsDangerous(method string) bool {
	return Classify(method) != ClassNone
}

// DangerousMethods returns the dangerous set sorted by method name.
func DangerousMethods() []string {
	out := make([]string, 0, len(dangerousMethods))
	for m := range dangerousMethods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
