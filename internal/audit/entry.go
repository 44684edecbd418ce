package audit

// TimestampFormat is the layout used in audit entry timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Subject identifies what was validated: a direct RPC call or a free-text
// query.
type Subject struct {
	Tool       string `json:"tool"`
	Blockchain string `json:"blockchain,omitempty"`
	Method     string `json:"method,omitempty"`
	Query      string `json:"query,omitempty"`
}

// Entry is one line in the hash-chained JSONL audit log.
// All fields are structs or scalars (no map[string]any) so json.Marshal
// field order is deterministic and hashes are reproducible.
type Entry struct {
	Timestamp  string  `json:"ts"`
	TraceID    string  `json:"trace_id"`
	Subject    Subject `json:"subject"`
	Decision   string  `json:"decision"`
	Class      string  `json:"class,omitempty"`
	Reason     string  `json:"reason,omitempty"`
	Suggestion string  `json:"suggestion,omitempty"`
	EstimateKB int     `json:"estimate_kb,omitempty"`
	Dispatched bool    `json:"dispatched"`
	Error      string  `json:"error,omitempty"`
	ConfigHash string  `json:"config_hash"`
	PrevHash   string  `json:"prev_hash"`
}
