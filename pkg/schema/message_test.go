package schema_test

import (
	"encoding/json"
	"errors"
	"testing"

	// Packages
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_message_001(t *testing.T) {
	assert := assert.New(t)
	msg := schema.NewMessage(schema.RoleUser, "hello")
	assert.Equal(schema.RoleUser, msg.Role)
	assert.Equal("hello", msg.Text())
	assert.Empty(msg.ToolCalls())
	assert.Empty(msg.ToolResults())
}

func Test_message_002(t *testing.T) {
	assert := assert.New(t)
	msg := schema.NewToolCallMessage("thinking",
		schema.ToolCall{ID: "call_1", Name: "list_files", Input: json.RawMessage(`{"path":"/tmp"}`)},
		schema.ToolCall{ID: "call_2", Name: "dns_lookup", Input: json.RawMessage(`{"hostname":"example.com"}`)},
	)
	assert.Equal(schema.RoleAssistant, msg.Role)
	assert.Equal("thinking", msg.Text())

	calls := msg.ToolCalls()
	assert.Len(calls, 2)
	assert.Equal("call_1", calls[0].ID)
	assert.Equal("list_files", calls[0].Name)
	assert.Equal("call_2", calls[1].ID)
}

func Test_message_003(t *testing.T) {
	assert := assert.New(t)
	msg := schema.NewToolCallMessage("", schema.ToolCall{ID: "a", Name: "b"})
	assert.Equal("", msg.Text())
	assert.Len(msg.Content, 1)
}

func Test_message_004(t *testing.T) {
	assert := assert.New(t)
	msg := schema.NewToolResultMessage("call_1", "list_files", "two files")
	assert.Equal(schema.RoleTool, msg.Role)

	results := msg.ToolResults()
	assert.Len(results, 1)
	assert.Equal("call_1", results[0].ID)
	assert.Equal("two files", results[0].Content)
	assert.False(results[0].IsError)
}

func Test_message_005(t *testing.T) {
	assert := assert.New(t)
	msg := schema.NewToolErrorMessage("call_1", "list_files", errors.New("no such directory"))

	results := msg.ToolResults()
	assert.Len(results, 1)
	assert.True(results[0].IsError)
	assert.Equal("Error executing tool list_files: no such directory", results[0].Content)
}
