package openai

import (
	"encoding/json"

	// Packages
	uuid "github.com/google/uuid"
	bridge "github.com/mcpbridge/mcpbridge"
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// wireMessage is the chat-completions message representation. Assistant
// tool calls carry their arguments as a JSON-encoded string, and each
// tool result is a separate message referencing the call it answers.
type wireMessage struct {
	Role       string         `json:"role"`
	Content    *string        `json:"content"`
	Name       string         `json:"name,omitempty"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallId string         `json:"tool_call_id,omitempty"`
}

type wireToolCall struct {
	Id       string       `json:"id"`
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// marshalTranscript converts the universal transcript into wire messages.
// A tool message with several results fans out into one wire message per
// result, preserving result order.
func marshalTranscript(transcript schema.Transcript) ([]wireMessage, error) {
	result := make([]wireMessage, 0, len(transcript))
	for _, message := range transcript {
		switch message.Role {
		case schema.RoleSystem, schema.RoleUser:
			result = append(result, wireMessage{
				Role:    message.Role,
				Content: types.Ptr(message.Text()),
			})
		case schema.RoleAssistant:
			wire := wireMessage{
				Role: message.Role,
			}
			if text := message.Text(); text != "" {
				wire.Content = types.Ptr(text)
			}
			for _, call := range message.ToolCalls() {
				wire.ToolCalls = append(wire.ToolCalls, wireToolCall{
					Id:   call.ID,
					Type: "function",
					Function: wireFunction{
						Name:      call.Name,
						Arguments: arguments(call.Input),
					},
				})
			}
			result = append(result, wire)
		case schema.RoleTool:
			for _, toolresult := range message.ToolResults() {
				result = append(result, wireMessage{
					Role:       message.Role,
					Content:    types.Ptr(toolresult.Content),
					ToolCallId: toolresult.ID,
				})
			}
		default:
			return nil, bridge.ErrBadParameter.Withf("unsupported role %q", message.Role)
		}
	}
	return result, nil
}

// unmarshalMessage converts a wire response message into the universal
// representation. Calls returned without an identifier are assigned one
// so that results can be paired to them.
func unmarshalMessage(wire wireMessage) (*schema.Message, error) {
	if wire.Role != schema.RoleAssistant {
		return nil, bridge.ErrInternalServerError.Withf("unexpected role %q in completion", wire.Role)
	}

	var text string
	if wire.Content != nil {
		text = *wire.Content
	}
	calls := make([]schema.ToolCall, 0, len(wire.ToolCalls))
	for _, call := range wire.ToolCalls {
		if call.Id == "" {
			call.Id = uuid.NewString()
		}
		input := call.Function.Arguments
		if input == "" {
			input = "{}"
		}
		if !json.Valid([]byte(input)) {
			return nil, bridge.ErrInternalServerError.Withf("tool call %q carries invalid argument payload", call.Function.Name)
		}
		calls = append(calls, schema.ToolCall{
			ID:    call.Id,
			Name:  call.Function.Name,
			Input: json.RawMessage(input),
		})
	}
	if len(calls) > 0 {
		return schema.NewToolCallMessage(text, calls...), nil
	}
	return schema.NewMessage(schema.RoleAssistant, text), nil
}

// arguments renders the raw call input as the wire's string form
func arguments(input json.RawMessage) string {
	if len(input) == 0 {
		return "{}"
	}
	return string(input)
}
