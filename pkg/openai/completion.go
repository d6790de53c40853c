package openai

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	bridge "github.com/mcpbridge/mcpbridge"
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Chat completion request
type reqChat struct {
	Model      string                `json:"model"`
	Messages   []wireMessage         `json:"messages"`
	Tools      []schema.FunctionSpec `json:"tools,omitempty"`
	ToolChoice string                `json:"tool_choice,omitempty"`
}

// Chat completion response
type respChat struct {
	Id      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int         `json:"index"`
		Message      wireMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     uint64 `json:"prompt_tokens"`
		CompletionTokens uint64 `json:"completion_tokens"`
		TotalTokens      uint64 `json:"total_tokens"`
	} `json:"usage"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Chat sends the transcript and the advertised tools to the completions
// endpoint and returns the next assistant message, which may contain
// tool calls, text, or both.
func (c *Client) Chat(ctx context.Context, transcript schema.Transcript, tools []schema.FunctionSpec) (*schema.Message, error) {
	// Marshal the transcript into wire form
	messages, err := marshalTranscript(transcript)
	if err != nil {
		return nil, err
	}

	// The request payload
	req := reqChat{
		Model:    c.model,
		Messages: messages,
		Tools:    tools,
	}
	if len(tools) > 0 {
		req.ToolChoice = "auto"
	}
	payload, err := client.NewJSONRequest(req)
	if err != nil {
		return nil, err
	}

	// Perform the request
	var response respChat
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, err
	}
	if len(response.Choices) == 0 {
		return nil, bridge.ErrInternalServerError.With("no completion choices returned")
	}

	// Return the first choice as a message
	return unmarshalMessage(response.Choices[0].Message)
}
