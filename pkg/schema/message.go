package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Message represents a message in a conversation with the model backend.
// It uses a universal content block representation that the backend client
// marshals into its own wire format.
type Message struct {
	Role    string         `json:"role"`    // "user", "assistant", "tool"
	Content []ContentBlock `json:"content"` // Array of content blocks
}

// ContentBlock represents a single piece of content within a message.
// Exactly one of the fields should be non-nil.
type ContentBlock struct {
	Text       *string     `json:"text,omitempty"`        // Text content
	ToolCall   *ToolCall   `json:"tool_call,omitempty"`   // Tool invocation (assistant)
	ToolResult *ToolResult `json:"tool_result,omitempty"` // Tool response (tool)
}

// ToolCall represents a tool invocation requested by the model
type ToolCall struct {
	ID    string          `json:"id"`              // Unique call ID
	Name  string          `json:"name"`            // Tool name
	Input json.RawMessage `json:"input,omitempty"` // JSON-encoded arguments
}

// ToolResult represents the result of running a tool
type ToolResult struct {
	ID      string `json:"id"`                // Matches the ToolCall ID
	Name    string `json:"name,omitempty"`    // Tool name
	Content string `json:"content,omitempty"` // Text payload or error detail
	IsError bool   `json:"is_error,omitempty"`
}

////////////////////////////////////////////////////////////////////////////////
// CONSTANTS

// Message role constants
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewMessage creates a message with the given role and text content
func NewMessage(role, text string) *Message {
	return &Message{
		Role: role,
		Content: []ContentBlock{
			{Text: types.Ptr(text)},
		},
	}
}

// NewToolCallMessage creates an assistant message requesting the given
// tool calls, preceded by any text the model emitted alongside them.
func NewToolCallMessage(text string, calls ...ToolCall) *Message {
	message := &Message{
		Role: RoleAssistant,
	}
	if text != "" {
		message.Content = append(message.Content, ContentBlock{Text: types.Ptr(text)})
	}
	for i := range calls {
		message.Content = append(message.Content, ContentBlock{ToolCall: &calls[i]})
	}
	return message
}

// NewToolResultMessage creates a tool message containing a successful
// tool result payload
func NewToolResultMessage(id, name, content string) *Message {
	return &Message{
		Role: RoleTool,
		Content: []ContentBlock{
			{ToolResult: &ToolResult{
				ID:      id,
				Name:    name,
				Content: content,
			}},
		},
	}
}

// NewToolErrorMessage creates a tool message carrying an error. The error
// text is passed back to the model so it can react to the failure.
func NewToolErrorMessage(id, name string, err error) *Message {
	return &Message{
		Role: RoleTool,
		Content: []ContentBlock{
			{ToolResult: &ToolResult{
				ID:      id,
				Name:    name,
				Content: fmt.Sprintf("Error executing tool %s: %v", name, err),
				IsError: true,
			}},
		},
	}
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Text returns the concatenated text content from all text blocks in the message
func (m Message) Text() string {
	var result []string
	for _, block := range m.Content {
		if block.Text != nil {
			result = append(result, *block.Text)
		}
	}
	return strings.Join(result, "\n")
}

// ToolCalls returns all tool call blocks in the message, in the order the
// model emitted them
func (m Message) ToolCalls() []ToolCall {
	var result []ToolCall
	for _, block := range m.Content {
		if block.ToolCall != nil {
			result = append(result, *block.ToolCall)
		}
	}
	return result
}

// ToolResults returns all tool result blocks in the message
func (m Message) ToolResults() []ToolResult {
	var result []ToolResult
	for _, block := range m.Content {
		if block.ToolResult != nil {
			result = append(result, *block.ToolResult)
		}
	}
	return result
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Message) String() string {
	return types.Stringify(m)
}
