package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
)

// Tool names as declared to the model.
const (
	ToolSearchDestinations = "search_destinations"
	ToolGetUserProfile     = "get_user_profile"
	ToolGetZodiacTraits    = "get_zodiac_traits"
)

// GetQueryTools returns the deterministic lookup tools the travel guide can
// call during a conversation.
func GetQueryTools() []tool.BaseTool {
	return []tool.BaseTool{
		createSearchDestinationsTool(),
		createGetUserProfileTool(),
		createGetZodiacTraitsTool(),
	}
}

// GetToolInfos collects the ToolInfo declarations to bind to the chat model.
func GetToolInfos(ctx context.Context, ts []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(ts))
	for _, t := range ts {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("get tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
