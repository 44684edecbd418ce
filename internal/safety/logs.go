package safety

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ppiankov/rpcwatch/internal/model"
)

// LatestMarker is the block tag an absent toBlock defaults to.
const LatestMarker = "latest"

var errBadBound = errors.New("block bound is not a number")

// CheckLogQuery validates an eth_getLogs call. params follow the JSON-RPC
// layout [filterObject].
//
// An absent toBlock means "latest". The range check is skipped only when a
// bound is the "latest" marker; every other bound, including an absent
// fromBlock and tags such as "earliest" or "pending", must parse as a block
// number. The address/topics check runs regardless of the range outcome.
func CheckLogQuery(params []any, cfg Config) model.Verdict {
	filter, ok := logFilter(params)
	if !ok {
		return model.Unsafe(
			"cannot validate log filter: expected a filter object as the first parameter",
			"pass a filter object with fromBlock, toBlock, address and topics",
		)
	}

	if hash, present := filter["blockHash"]; present {
		if !singleBlockFilter(filter, hash) {
			return model.Unsafe(
				"cannot validate log filter: blockHash must be a non-empty hash and cannot be combined with fromBlock or toBlock",
				"pass either a blockHash alone or explicit numeric fromBlock/toBlock bounds",
			)
		}
	} else if v := checkLogRange(filter, cfg); !v.Safe {
		return v
	}

	if !hasConstraint(filter["address"]) && !hasConstraint(filter["topics"]) {
		return model.Unsafe(
			"unrestricted log query: no address or topics filter",
			"add address/topic filters to restrict the logs returned",
		)
	}

	return model.Safe()
}

func logFilter(params []any) (map[string]any, bool) {
	if len(params) == 0 {
		return nil, false
	}
	filter, ok := params[0].(map[string]any)
	return filter, ok
}

// singleBlockFilter reports whether an EIP-234 blockHash filter addresses
// exactly one block.
func singleBlockFilter(filter map[string]any, hash any) bool {
	s, ok := hash.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return false
	}
	_, hasFrom := filter["fromBlock"]
	_, hasTo := filter["toBlock"]
	return !hasFrom && !hasTo
}

func checkLogRange(filter map[string]any, cfg Config) model.Verdict {
	from, hasFrom := filter["fromBlock"]
	to, hasTo := filter["toBlock"]
	if !hasTo || to == nil {
		to = LatestMarker
	}
	if isLatest(from) || isLatest(to) {
		return model.Safe()
	}

	fromN, errFrom := parseBlockNumber(from)
	toN, errTo := parseBlockNumber(to)
	switch {
	case errFrom != nil || errTo != nil:
		return model.Unsafe(
			fmt.Sprintf("cannot validate block range: fromBlock=%s toBlock=%s", describeBound(from, hasFrom), describeBound(to, true)),
			"use explicit numeric bounds, as 0x-prefixed hex or decimal block numbers",
		)
	case toN < fromN:
		return model.Unsafe(
			fmt.Sprintf("cannot validate block range: toBlock %d is before fromBlock %d", toN, fromN),
			"use explicit numeric bounds with fromBlock <= toBlock",
		)
	case toN-fromN > uint64(cfg.MaxBlockRange):
		return model.Unsafe(
			fmt.Sprintf("block range %d exceeds the maximum of %d blocks", toN-fromN, cfg.MaxBlockRange),
			fmt.Sprintf("split the query into windows of at most %d blocks", cfg.MaxBlockRange),
		)
	}
	return model.Safe()
}

func isLatest(v any) bool {
	s, ok := v.(string)
	return ok && s == LatestMarker
}

func describeBound(v any, present bool) string {
	if !present {
		return "absent"
	}
	return fmt.Sprintf("%v", v)
}

// parseBlockNumber accepts JSON numbers and hex ("0x...") or decimal strings.
func parseBlockNumber(v any) (uint64, error) {
	switch n := v.(type) {
	case float64:
		if n < 0 || n != math.Trunc(n) || n >= 1<<63 {
			return 0, errBadBound
		}
		return uint64(n), nil
	case int:
		if n < 0 {
			return 0, errBadBound
		}
		return uint64(n), nil
	case int64:
		if n < 0 {
			return 0, errBadBound
		}
		return uint64(n), nil
	case uint64:
		return n, nil
	case json.Number:
		return strconv.ParseUint(n.String(), 10, 64)
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return 0, errBadBound
		}
		if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
			return strconv.ParseUint(s[2:], 16, 64)
		}
		return strconv.ParseUint(s, 10, 64)
	default:
		return 0, errBadBound
	}
}

// hasConstraint reports whether an address or topics value restricts the
// query. Null topic entries are wildcards; shapes that are not recognized
// count as no constraint.
func hasConstraint(v any) bool {
	switch c := v.(type) {
	case nil:
		return false
	case string:
		return strings.TrimSpace(c) != ""
	case []string:
		for _, s := range c {
			if strings.TrimSpace(s) != "" {
				return true
			}
		}
		return false
	case []any:
		for _, item := range c {
			if hasConstraint(item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
