package tools

import (
	"context"

	"github.com/zodiac-travel/server/internal/agent/zodiac"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

type GetZodiacTraitsInput struct {
	Sign string `json:"sign"`
}

func createGetZodiacTraitsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolGetZodiacTraits,
			Desc: "Get personality traits and travel preferences for a zodiac sign. Use when reasoning about what kind of destination suits the user.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"sign": {
					Type:     "string",
					Desc:     "The zodiac sign (e.g. 'Leo', 'Pisces'). Case-insensitive.",
					Required: true,
				},
			}),
		},
		func(ctx context.Context, in *GetZodiacTraitsInput) (string, error) {
			return zodiac.DescribeTraits(in.Sign), nil
		},
	)
}
