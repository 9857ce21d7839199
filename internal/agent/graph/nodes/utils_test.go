package nodes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zodiac-travel/server/internal/agent/model"
)

func TestNormalizeMaxToolCalls(t *testing.T) {
	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(0))
	assert.Equal(t, DefaultMaxToolCalls, normalizeMaxToolCalls(-3))
	assert.Equal(t, 7, normalizeMaxToolCalls(7))
}

func TestToolLimitIsAlwaysReached(t *testing.T) {
	// However many tool-call rounds the model requests, the loop flags the
	// limit after at most max increments and stays flagged.
	state := &model.AppState{}
	max := 5
	for i := 0; i < 100; i++ {
		incrementToolCallAndCheck(state, max)
		if state.ToolCallLimitReached {
			break
		}
	}
	assert.True(t, state.ToolCallLimitReached)
	assert.LessOrEqual(t, state.ToolCallCount, max+1)
}

func TestCheckAndMarkToolLimit(t *testing.T) {
	state := &model.AppState{ToolCallCount: 4}
	assert.False(t, checkAndMarkToolLimit(state, 5))
	assert.False(t, state.ToolCallLimitReached)

	state.ToolCallCount = 5
	assert.True(t, checkAndMarkToolLimit(state, 5))
	assert.True(t, state.ToolCallLimitReached)

	// Marked only once; the wrap-up notice must not repeat.
	assert.False(t, checkAndMarkToolLimit(state, 5))
}
