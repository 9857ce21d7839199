package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/zodiac-travel/server/internal/agent/graph/tools"
	"github.com/zodiac-travel/server/internal/agent/model"
	"github.com/zodiac-travel/server/internal/agent/travel"
)

//go:embed template/response_prompt.txt
var guideSystemPrompt string

// RenderGuideSystem renders the travel guide system prompt and triggers
// prompt callbacks. The destination sheet is generated from the live catalog
// so the prompt never drifts from what search_destinations can return.
func RenderGuideSystem(ctx context.Context, config model.GuidePromptConfig) (string, error) {
	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(guideSystemPrompt),
	)
	vars := map[string]any{
		"GuideName":        config.GuideName,
		"SearchTool":       tools.ToolSearchDestinations,
		"ProfileTool":      tools.ToolGetUserProfile,
		"TraitsTool":       tools.ToolGetZodiacTraits,
		"DestinationSheet": destinationSheet(),
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("guide prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("guide prompt render: empty result")
	}
	return msgs[0].Content, nil
}

func destinationSheet() string {
	var b strings.Builder
	for _, d := range travel.Catalog {
		fmt.Fprintf(&b, "• %s ($%d): %s\n", d.City, d.Price, d.Tags)
	}
	return strings.TrimRight(b.String(), "\n")
}
