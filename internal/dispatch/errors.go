package dispatch

import (
	"fmt"

	"github.com/ppiankov/rpcwatch/internal/model"
)

// BlockedError is returned when the safety gate refuses a call.
// The call was never sent to the network.
type BlockedError struct {
	Blockchain string
	Method     string
	Verdict    model.Verdict
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("rpcwatch: %s on %s blocked: %s", e.Method, e.Blockchain, e.Verdict.Reason)
}
