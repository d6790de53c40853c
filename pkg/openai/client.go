/*
openai implements the model backend capability over the OpenAI
chat-completions API.
https://platform.openai.com/docs/api-reference
*/
package openai

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	bridge "github.com/mcpbridge/mcpbridge"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Client struct {
	*client.Client
	model string
}

var _ bridge.Generator = (*Client)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	endPoint    = "https://api.openai.com/v1"
	defaultName = "openai"
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New creates a client for the given credential and model
func New(apiKey, model string, opts ...client.ClientOpt) (*Client, error) {
	if apiKey == "" {
		return nil, bridge.ErrBadParameter.With("missing api key")
	}
	if model == "" {
		return nil, bridge.ErrBadParameter.With("missing model")
	}

	// Create client
	opts = append(opts, client.OptEndpoint(endPoint))
	opts = append(opts, client.OptReqToken(client.Token{
		Scheme: client.Bearer,
		Value:  apiKey,
	}))
	client, err := client.New(opts...)
	if err != nil {
		return nil, err
	}

	// Return the client
	return &Client{client, model}, nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Return the name of the backend
func (*Client) Name() string {
	return defaultName
}

// Return the configured model
func (c *Client) Model() string {
	return c.model
}

// Ping verifies the credential by listing models. It fails when the
// credential is rejected or the configured model is not available.
func (c *Client) Ping(ctx context.Context) error {
	var response struct {
		Data []struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models")); err != nil {
		return err
	}
	for _, model := range response.Data {
		if model.Id == c.model {
			return nil
		}
	}
	return bridge.ErrNotFound.Withf("model %q", c.model)
}
