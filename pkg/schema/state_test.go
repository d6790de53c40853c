package schema_test

import (
	"testing"

	// Packages
	schema "github.com/mcpbridge/mcpbridge/pkg/schema"
	assert "github.com/stretchr/testify/assert"
)

func Test_state_001(t *testing.T) {
	assert := assert.New(t)

	// The setup sequence is legal step by step
	sequence := []schema.BridgeState{
		schema.StateUninitialized,
		schema.StateVerifyingBackend,
		schema.StateBackendReady,
		schema.StateConnectingProvider,
		schema.StateProviderReady,
		schema.StateReady,
	}
	for i := 1; i < len(sequence); i++ {
		assert.True(sequence[i-1].CanTransition(sequence[i]), "from %v to %v", sequence[i-1], sequence[i])
	}
}

func Test_state_002(t *testing.T) {
	assert := assert.New(t)

	// No going backwards
	assert.False(schema.StateReady.CanTransition(schema.StateVerifyingBackend))
	assert.False(schema.StateBackendReady.CanTransition(schema.StateUninitialized))

	// Degraded and failed are reachable from anywhere
	assert.True(schema.StateUninitialized.CanTransition(schema.StateFailed))
	assert.True(schema.StateConnectingProvider.CanTransition(schema.StateDegraded))
	assert.True(schema.StateReady.CanTransition(schema.StateFailed))
}

func Test_state_003(t *testing.T) {
	assert := assert.New(t)
	assert.True(schema.StateReady.Usable())
	assert.True(schema.StateDegraded.Usable())
	assert.False(schema.StateFailed.Usable())
	assert.False(schema.StateUninitialized.Usable())
	assert.False(schema.StateConnectingProvider.Usable())
}

func Test_state_004(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("ready", schema.StateReady.String())
	assert.Equal("degraded", schema.StateDegraded.String())
	assert.NotEmpty(schema.BridgeState(99).String())

	event := schema.NewStatusEvent(schema.StateReady, "5 tools")
	assert.Contains(event.String(), "ready")
	assert.Contains(event.String(), "5 tools")
	assert.False(event.Time.IsZero())
}
