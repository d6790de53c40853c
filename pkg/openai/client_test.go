package openai_test

import (
	"testing"

	// Packages
	openai "github.com/mcpbridge/mcpbridge/pkg/openai"
	assert "github.com/stretchr/testify/assert"
)

func Test_client_001(t *testing.T) {
	assert := assert.New(t)
	client, err := openai.New("sk-test", "gpt-4o")
	assert.NoError(err)
	assert.NotNil(client)
	assert.Equal("openai", client.Name())
	assert.Equal("gpt-4o", client.Model())
}

func Test_client_002(t *testing.T) {
	assert := assert.New(t)
	_, err := openai.New("", "gpt-4o")
	assert.Error(err)
	_, err = openai.New("sk-test", "")
	assert.Error(err)
}
