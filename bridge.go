/*
bridge connects a conversational language model to tools exposed by an
external MCP tool-provider process. The model backend and the tool-provider
are both collaborators reached over the network or a child process; this
package defines the capability interfaces they must satisfy.
*/
package bridge

import (
	"context"

	// Packages
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Generator is the model backend capability: submit a transcript together
// with the available function specs, and receive either final text or a
// list of requested tool calls, encoded as an assistant message.
type Generator interface {
	// Return the backend name
	Name() string

	// Ping verifies the credential is accepted by the backend. It is a
	// lightweight probe, not a full conversation.
	Ping(context.Context) error

	// Chat submits the transcript and returns the assistant's next message.
	// The returned message contains either text content or tool calls.
	Chat(context.Context, schema.Transcript, []schema.FunctionSpec) (*schema.Message, error)
}

// Invoker is the tool invocation capability: execute a single named tool
// with JSON-encoded arguments against the tool-provider. Each invocation
// is an independent unit of work with no shared connection state.
type Invoker interface {
	// Invoke runs one tool call and returns the provider's text payload.
	Invoke(ctx context.Context, def schema.ToolDefinition, args []byte) (string, error)

	// ListTools discovers the provider's tool descriptors.
	ListTools(context.Context) ([]schema.ToolDefinition, error)
}
