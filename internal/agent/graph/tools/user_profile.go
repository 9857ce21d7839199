package tools

import (
	"context"

	"github.com/zodiac-travel/server/internal/agent/travel"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type GetUserProfileInput struct {
	UserID string `json:"user_id"`
}

func createGetUserProfileTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetUserProfile,
			Desc: "Get a user's profile including their zodiac sign derived from date of birth. Use this tool when the user identifies themselves by user id (e.g. 'user_001').",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_id": {
					Type:     "string",
					Desc:     "The unique identifier for the user (e.g. 'user_001')",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetUserProfileInput) (string, error) {
			return travel.DescribeUser(in.UserID), nil
		},
	)
}
