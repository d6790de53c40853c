package bridge_test

import (
	"errors"
	"testing"

	// Packages
	bridge "github.com/mcpbridge/mcpbridge"
	assert "github.com/stretchr/testify/assert"
)

func Test_err_001(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("not found", bridge.ErrNotFound.Error())
	assert.Equal("bad parameter", bridge.ErrBadParameter.Error())
	assert.NotEmpty(bridge.Err(99).Error())
}

func Test_err_002(t *testing.T) {
	assert := assert.New(t)

	// Wrapped errors remain matchable
	err := bridge.ErrNotFound.With("tool ", "list_files")
	assert.ErrorIs(err, bridge.ErrNotFound)
	assert.Contains(err.Error(), "tool list_files")

	err = bridge.ErrMaxRounds.Withf("%d rounds", 8)
	assert.ErrorIs(err, bridge.ErrMaxRounds)
	assert.False(errors.Is(err, bridge.ErrCancelled))
}
