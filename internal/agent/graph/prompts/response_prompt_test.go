package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zodiac-travel/server/internal/agent/model"
)

func TestRenderGuideSystem(t *testing.T) {
	out, err := RenderGuideSystem(context.Background(), model.GuidePromptConfig{
		GuideName: "Zodiac Travel Guide",
	})
	require.NoError(t, err)

	assert.Contains(t, out, "Zodiac Travel Guide")
	assert.Contains(t, out, "search_destinations")
	assert.Contains(t, out, "get_user_profile")
	assert.Contains(t, out, "get_zodiac_traits")
	// Catalog-derived sheet, not a hardcoded copy.
	assert.Contains(t, out, "Santorini ($450)")
	assert.Contains(t, out, "New York ($500)")
	// No unrendered template tokens left behind.
	assert.NotContains(t, out, "{{")
}
