package tools

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/components/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invokable(t *testing.T, name string) tool.InvokableTool {
	t.Helper()
	ctx := context.Background()
	for _, bt := range GetQueryTools() {
		info, err := bt.Info(ctx)
		require.NoError(t, err)
		if info.Name == name {
			it, ok := bt.(tool.InvokableTool)
			require.True(t, ok, "tool %s is not invokable", name)
			return it
		}
	}
	t.Fatalf("tool %s not registered", name)
	return nil
}

func TestGetToolInfos(t *testing.T) {
	ctx := context.Background()
	ts := GetQueryTools()
	infos, err := GetToolInfos(ctx, ts)
	require.NoError(t, err)
	require.Len(t, infos, 3)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.ElementsMatch(t, []string{ToolSearchDestinations, ToolGetUserProfile, ToolGetZodiacTraits}, names)
}

func TestSearchDestinationsTool(t *testing.T) {
	it := invokable(t, ToolSearchDestinations)
	ctx := context.Background()

	out, err := it.InvokableRun(ctx, `{"max_budget": 500, "vibes": ["romantic"]}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Santorini")
	assert.Contains(t, out, "Paris")
	assert.NotContains(t, out, "Bali")
}

func TestSearchDestinationsToolDefaultsBudget(t *testing.T) {
	it := invokable(t, ToolSearchDestinations)

	out, err := it.InvokableRun(context.Background(), `{"vibes": ["foodie"]}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Tokyo")
	assert.Contains(t, out, "Kyoto")
}

func TestSearchDestinationsToolInvalidBudget(t *testing.T) {
	it := invokable(t, ToolSearchDestinations)

	out, err := it.InvokableRun(context.Background(), `{"max_budget": "plenty"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Invalid budget format")
}

func TestSearchDestinationsToolQuotedBudget(t *testing.T) {
	it := invokable(t, ToolSearchDestinations)

	out, err := it.InvokableRun(context.Background(), `{"max_budget": "450", "vibes": ["romantic"]}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Santorini")
	assert.NotContains(t, out, "Amalfi") // $500, over the quoted budget
}

func TestGetUserProfileTool(t *testing.T) {
	it := invokable(t, ToolGetUserProfile)
	ctx := context.Background()

	out, err := it.InvokableRun(ctx, `{"user_id": "user_001"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Sky")
	assert.Contains(t, out, "Libra")

	out, err = it.InvokableRun(ctx, `{"user_id": "user_404"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "not found")
}

func TestGetZodiacTraitsTool(t *testing.T) {
	it := invokable(t, ToolGetZodiacTraits)
	ctx := context.Background()

	lower, err := it.InvokableRun(ctx, `{"sign": "leo"}`)
	require.NoError(t, err)
	upper, err := it.InvokableRun(ctx, `{"sign": "Leo"}`)
	require.NoError(t, err)
	assert.Contains(t, lower, "Dramatic, Confident, Creative")
	// Same trait text regardless of input case; only the echoed label differs.
	assert.Contains(t, upper, "Dramatic, Confident, Creative")

	unknown, err := it.InvokableRun(ctx, `{"sign": "Ophiuchus"}`)
	require.NoError(t, err)
	assert.Contains(t, unknown, "Unknown sign")
}
