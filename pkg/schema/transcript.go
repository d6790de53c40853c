package schema

import (
	"fmt"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Transcript is the ordered conversation history driving each model round.
// It is append-only during a round and owned exclusively by the engine
// worker; there is no concurrent mutation.
type Transcript []*Message

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Append adds a message to the transcript
func (t *Transcript) Append(message *Message) {
	*t = append(*t, message)
}

// Len returns the number of messages in the transcript
func (t Transcript) Len() int {
	return len(t)
}

// Truncate discards all messages after the first n, returning the
// transcript to an earlier snapshot. Used to roll back an incomplete
// tool-request block when a turn is cancelled or errors out.
func (t *Transcript) Truncate(n int) {
	if n < 0 || n > len(*t) {
		return
	}
	*t = (*t)[:n]
}

// Validate checks the tool-call pairing invariant: every tool call in an
// assistant message is answered by exactly one matching tool result, in
// request order, before the next assistant message.
func (t Transcript) Validate() error {
	pending := []ToolCall{}
	for i, msg := range t {
		switch msg.Role {
		case RoleAssistant:
			if len(pending) > 0 {
				return fmt.Errorf("message %d: %d unanswered tool calls before next assistant message", i, len(pending))
			}
			pending = append(pending, msg.ToolCalls()...)
		case RoleTool:
			for _, result := range msg.ToolResults() {
				if len(pending) == 0 {
					return fmt.Errorf("message %d: tool result %q without a matching tool call", i, result.ID)
				}
				if pending[0].ID != result.ID {
					return fmt.Errorf("message %d: tool result %q out of order, expected %q", i, result.ID, pending[0].ID)
				}
				pending = pending[1:]
			}
		case RoleUser, RoleSystem:
			if len(pending) > 0 {
				return fmt.Errorf("message %d: %s message interleaved with unanswered tool calls", i, msg.Role)
			}
		default:
			return fmt.Errorf("message %d: unknown role %q", i, msg.Role)
		}
	}
	if len(pending) > 0 {
		return fmt.Errorf("transcript ends with %d unanswered tool calls", len(pending))
	}
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Transcript) String() string {
	return types.Stringify(t)
}
