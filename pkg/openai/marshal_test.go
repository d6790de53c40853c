package openai

import (
	"encoding/json"
	"testing"

	// Packages
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
	types "github.com/mutablelogic/go-server/pkg/types"
	assert "github.com/stretchr/testify/assert"
)

func Test_marshal_001(t *testing.T) {
	assert := assert.New(t)
	var transcript schema.Transcript
	transcript.Append(schema.NewMessage(schema.RoleSystem, "be brief"))
	transcript.Append(schema.NewMessage(schema.RoleUser, "what files are in /tmp?"))

	messages, err := marshalTranscript(transcript)
	assert.NoError(err)
	assert.Len(messages, 2)
	assert.Equal("system", messages[0].Role)
	assert.Equal("be brief", *messages[0].Content)
	assert.Equal("user", messages[1].Role)
}

func Test_marshal_002(t *testing.T) {
	assert := assert.New(t)

	// Assistant tool calls carry their arguments as a JSON string
	var transcript schema.Transcript
	transcript.Append(schema.NewToolCallMessage("checking",
		schema.ToolCall{ID: "call_1", Name: "list_files", Input: json.RawMessage(`{"path":"/tmp"}`)},
	))

	messages, err := marshalTranscript(transcript)
	assert.NoError(err)
	assert.Len(messages, 1)
	assert.Equal("assistant", messages[0].Role)
	assert.Equal("checking", *messages[0].Content)
	assert.Len(messages[0].ToolCalls, 1)
	assert.Equal("call_1", messages[0].ToolCalls[0].Id)
	assert.Equal("function", messages[0].ToolCalls[0].Type)
	assert.Equal("list_files", messages[0].ToolCalls[0].Function.Name)
	assert.JSONEq(`{"path":"/tmp"}`, messages[0].ToolCalls[0].Function.Arguments)
}

func Test_marshal_003(t *testing.T) {
	assert := assert.New(t)

	// An assistant message with calls but no text has a nil content field
	var transcript schema.Transcript
	transcript.Append(schema.NewToolCallMessage("",
		schema.ToolCall{ID: "call_1", Name: "dns_lookup"},
	))

	messages, err := marshalTranscript(transcript)
	assert.NoError(err)
	assert.Nil(messages[0].Content)
	assert.Equal("{}", messages[0].ToolCalls[0].Function.Arguments)
}

func Test_marshal_004(t *testing.T) {
	assert := assert.New(t)

	// Each tool result becomes its own wire message referencing its call
	message := &schema.Message{
		Role: schema.RoleTool,
		Content: []schema.ContentBlock{
			{ToolResult: &schema.ToolResult{ID: "call_1", Name: "dns_lookup", Content: "1.2.3.4"}},
			{ToolResult: &schema.ToolResult{ID: "call_2", Name: "list_files", Content: "a.txt"}},
		},
	}
	messages, err := marshalTranscript(schema.Transcript{message})
	assert.NoError(err)
	assert.Len(messages, 2)
	assert.Equal("tool", messages[0].Role)
	assert.Equal("call_1", messages[0].ToolCallId)
	assert.Equal("1.2.3.4", *messages[0].Content)
	assert.Equal("call_2", messages[1].ToolCallId)
}

func Test_marshal_005(t *testing.T) {
	assert := assert.New(t)
	_, err := marshalTranscript(schema.Transcript{
		{Role: "function", Content: []schema.ContentBlock{}},
	})
	assert.Error(err)
}

func Test_unmarshal_001(t *testing.T) {
	assert := assert.New(t)
	msg, err := unmarshalMessage(wireMessage{
		Role:    "assistant",
		Content: types.Ptr("Found 2 files: a.txt, b.txt."),
	})
	assert.NoError(err)
	assert.Equal(schema.RoleAssistant, msg.Role)
	assert.Equal("Found 2 files: a.txt, b.txt.", msg.Text())
	assert.Empty(msg.ToolCalls())
}

func Test_unmarshal_002(t *testing.T) {
	assert := assert.New(t)
	msg, err := unmarshalMessage(wireMessage{
		Role: "assistant",
		ToolCalls: []wireToolCall{
			{Id: "call_1", Type: "function", Function: wireFunction{Name: "list_files", Arguments: `{"path":"/tmp"}`}},
		},
	})
	assert.NoError(err)

	calls := msg.ToolCalls()
	assert.Len(calls, 1)
	assert.Equal("call_1", calls[0].ID)
	assert.Equal("list_files", calls[0].Name)
	assert.JSONEq(`{"path":"/tmp"}`, string(calls[0].Input))
}

func Test_unmarshal_003(t *testing.T) {
	assert := assert.New(t)

	// A call without an identifier is assigned one so results can pair
	msg, err := unmarshalMessage(wireMessage{
		Role: "assistant",
		ToolCalls: []wireToolCall{
			{Type: "function", Function: wireFunction{Name: "dns_lookup"}},
		},
	})
	assert.NoError(err)

	calls := msg.ToolCalls()
	assert.Len(calls, 1)
	assert.NotEmpty(calls[0].ID)
	assert.JSONEq(`{}`, string(calls[0].Input))
}

func Test_unmarshal_004(t *testing.T) {
	assert := assert.New(t)

	// Malformed argument payloads are rejected
	_, err := unmarshalMessage(wireMessage{
		Role: "assistant",
		ToolCalls: []wireToolCall{
			{Id: "call_1", Type: "function", Function: wireFunction{Name: "list_files", Arguments: `{"path":`}},
		},
	})
	assert.Error(err)

	// Non-assistant roles are not expected in completions
	_, err = unmarshalMessage(wireMessage{Role: "user"})
	assert.Error(err)
}
