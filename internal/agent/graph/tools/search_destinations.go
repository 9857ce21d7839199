package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/zodiac-travel/server/internal/agent/travel"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
)

// DefaultMaxBudget is the generous ceiling applied when the model omits
// max_budget entirely.
const DefaultMaxBudget = 100000

type SearchDestinationsInput struct {
	// MaxBudget is loosely typed: models emit numbers, quoted numbers, or
	// garbage here, and none of those may abort the conversation loop.
	MaxBudget any      `json:"max_budget,omitempty"`
	Vibes     []string `json:"vibes,omitempty"`
}

// parseBudget normalises whatever the model supplied for max_budget. ok is
// false when the value is present but not a number.
func parseBudget(v any) (budget int, ok bool) {
	switch n := v.(type) {
	case nil:
		return DefaultMaxBudget, true
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return int(f), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return DefaultMaxBudget, true
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f), true
		}
		return 0, false
	default:
		return 0, false
	}
}

func createSearchDestinationsTool() tool.BaseTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: ToolSearchDestinations,
			Desc: "Search for travel destinations matching vibe keywords within a budget. Returns matching cities with prices and tags, ordered by relevance. Use this tool whenever the user mentions a budget or the kind of trip they want.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"max_budget": {
					Type: "number",
					Desc: "Maximum budget in dollars (e.g. 500). Omit only when the user gave no budget at all.",
				},
				"vibes": {
					Type: "array",
					ElemInfo: &schema.ParameterInfo{
						Type: "string",
						Desc: "A single vibe keyword, e.g. romantic, sun, luxury, party, history",
					},
					Desc: "Vibe keywords to match against destination tags. May be empty.",
				},
			}),
		},
		func(ctx context.Context, in *SearchDestinationsInput) (string, error) {
			budget, ok := parseBudget(in.MaxBudget)
			if !ok {
				// Descriptive result, never an error: a failed tool call
				// would abort the conversation loop.
				return fmt.Sprintf("Invalid budget format: %v. Please provide a number.", in.MaxBudget), nil
			}
			return travel.SearchDestinations(in.Vibes, budget), nil
		},
	)
}
