package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	logx "github.com/zodiac-travel/server/pkg/logger"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/zodiac-travel/server/internal/agent/graph/conversations"
	"github.com/zodiac-travel/server/internal/agent/graph/nodes"
	"github.com/zodiac-travel/server/internal/agent/graph/observers"
	"github.com/zodiac-travel/server/internal/agent/graph/tools"
	"github.com/zodiac-travel/server/internal/agent/model"
)

// fallbackAnswer is returned when the model produced no usable text, e.g.
// when the tool-call cap fired before a content response. The mediator must
// always say something.
const fallbackAnswer = "✨ The stars are swirling and I couldn't settle on an answer. Could you ask me that again?"

// Runner is a thin wrapper to execute the compiled graph with the public QueryInput.
type Runner interface {
	Invoke(ctx context.Context, in model.QueryInput) (string, error)
}

// Config holds everything needed to compose the full guide graph end-to-end.
// This is a convenience layer over GraphConfig that also constructs ChatModels and MessagesManager.
type Config struct {
	APIKey           string
	BaseURL          string
	AgentModel       model.AgentModelConfig
	GuidePrompt      model.GuidePromptConfig
	Conversation     model.ConversationConfig
	ConversationRepo model.ConversationRepository
}

// GraphConfig holds all configuration needed to build the graph
type GraphConfig struct {
	ChatModels        *nodes.ChatModels
	MessagesManager   *conversations.MessagesManager
	GuidePromptConfig *model.GuidePromptConfig
	ToolMaxCalls      int
}

// GraphBuilder handles the construction of the travel guide conversation graph
type GraphBuilder struct {
	config *GraphConfig
	graph  *compose.Graph[model.QueryInput, *schema.Message]
}

type graphRunner struct {
	runnable compose.Runnable[model.QueryInput, *schema.Message]
}

func (r *graphRunner) Invoke(ctx context.Context, in model.QueryInput) (string, error) {
	out, err := r.runnable.Invoke(ctx, model.QueryInput{
		ConversationID: in.ConversationID,
		UserID:         in.UserID,
		Query:          in.Query,
	}, compose.WithCallbacks(observers.NewAllCallbacks()))
	if err != nil {
		return "", err
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return fallbackAnswer, nil
	}
	return out.Content, nil
}

// BuildGuideGraph composes ChatModels, MessagesManager, builds the graph, and returns a Runner.
func BuildGuideGraph(ctx context.Context, cfg Config) (Runner, error) {
	if cfg.ConversationRepo == nil {
		return nil, fmt.Errorf("conversation repo is nil")
	}

	cms, err := nodes.NewChatModels(ctx, nodes.ChatModelConfig{
		APIKey:      cfg.APIKey,
		BaseURL:     cfg.BaseURL,
		AgentConfig: &cfg.AgentModel,
	})
	if err != nil {
		return nil, err
	}

	mm := conversations.NewMessagesManager(cfg.ConversationRepo, cfg.Conversation)

	runnable, err := BuildGraph(ctx, &GraphConfig{
		ChatModels:        cms,
		MessagesManager:   mm,
		GuidePromptConfig: &cfg.GuidePrompt,
		ToolMaxCalls:      cfg.Conversation.Tools.MaxCalls,
	})
	if err != nil {
		return nil, err
	}

	logx.Debug().Msg("Guide graph built successfully")
	return &graphRunner{runnable: runnable}, nil
}

// BuildGraph constructs and returns the compiled guide graph
func BuildGraph(ctx context.Context, config *GraphConfig) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	if config == nil {
		return nil, fmt.Errorf("graph config is nil")
	}
	if config.ChatModels == nil || config.ChatModels.Response == nil {
		return nil, fmt.Errorf("chat model is not properly initialized")
	}
	if config.MessagesManager == nil {
		return nil, fmt.Errorf("messages manager is nil")
	}
	if config.GuidePromptConfig == nil {
		return nil, fmt.Errorf("guide prompt config is nil")
	}

	builder := &GraphBuilder{
		config: config,
		graph: compose.NewGraph[model.QueryInput, *schema.Message](
			compose.WithGenLocalState(func(ctx context.Context) *model.AppState {
				return &model.AppState{}
			}),
		),
	}

	if err := builder.setupTools(ctx); err != nil {
		return nil, err
	}

	builder.addNodes()
	builder.addEdges()

	if err := builder.addBranches(); err != nil {
		return nil, err
	}

	return builder.compile(ctx)
}

// setupTools configures the lookup tools and binds them to the response model
func (b *GraphBuilder) setupTools(ctx context.Context) error {
	guideTools := tools.GetQueryTools()
	toolInfos, err := tools.GetToolInfos(ctx, guideTools)
	if err != nil {
		logx.Error().Err(err).Msg("Failed to get tool infos")
		return fmt.Errorf("failed to get tool infos: %w", err)
	}

	if err := b.config.ChatModels.BindToolsToResponseModel(ctx, toolInfos); err != nil {
		logx.Error().Err(err).Msg("Failed to bind tools to response model")
		return fmt.Errorf("failed to bind tools to response model: %w", err)
	}

	toolsNode, err := compose.NewToolNode(ctx, &compose.ToolsNodeConfig{
		Tools:                guideTools,
		ExecuteSequentially:  true,
		UnknownToolsHandler:  unknownToolFallback,
		ToolArgumentsHandler: sanitizeToolArguments,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Failed to create tools node")
		return fmt.Errorf("failed to create tools node: %w", err)
	}

	b.graph.AddToolsNode(nodes.NodeToolExecutor, toolsNode,
		compose.WithStatePreHandler(nodes.NewToolExecutorPreHandler(b.config.ToolMaxCalls)),
	)

	return nil
}

// unknownToolFallback gracefully handles hallucinated or malformed tool calls
// (e.g. empty name) with a compact, structured message the model can use to
// proceed. It never returns an error: that would abort the conversation.
func unknownToolFallback(ctx context.Context, name, input string) (string, error) {
	logx.Warn().
		Str("tool_name", name).
		Str("arguments", input).
		Msg("Unknown or invalid tool call; returning fallback result")
	return fmt.Sprintf("{\"error\":\"unknown_tool\",\"name\":%q,\"note\":\"ignored\"}", name), nil
}

// sanitizeToolArguments best-effort normalises tool arguments before
// dispatch; it never fails hard.
func sanitizeToolArguments(ctx context.Context, name, arguments string) (string, error) {
	var m map[string]any
	if err := json.Unmarshal([]byte(arguments), &m); err != nil {
		// keep original if not JSON
		return arguments, nil
	}

	switch name {
	case tools.ToolSearchDestinations:
		// max_budget: number (optional); coerce numeric strings, clamp ≥ 0
		if v, ok := m["max_budget"]; ok {
			switch vv := v.(type) {
			case float64:
				if vv < 0 {
					m["max_budget"] = 0
				}
			case string:
				if n, err := strconv.Atoi(strings.TrimSpace(vv)); err == nil {
					if n < 0 {
						n = 0
					}
					m["max_budget"] = n
				}
				// non-numeric strings stay as-is: the tool answers with a
				// descriptive invalid-budget message
			}
		}
		// vibes: array of strings (optional); trim entries, drop non-strings
		if v, ok := m["vibes"]; ok {
			switch vv := v.(type) {
			case []any:
				cleaned := make([]string, 0, len(vv))
				for _, item := range vv {
					if s, ok := item.(string); ok {
						if s = strings.TrimSpace(s); s != "" {
							cleaned = append(cleaned, s)
						}
					}
				}
				m["vibes"] = cleaned
			case string:
				// single keyword instead of an array
				m["vibes"] = []string{strings.TrimSpace(vv)}
			default:
				delete(m, "vibes")
			}
		}
	case tools.ToolGetUserProfile:
		if v, ok := m["user_id"]; ok {
			switch vv := v.(type) {
			case string:
				m["user_id"] = strings.TrimSpace(vv)
			default:
				m["user_id"] = strings.TrimSpace(fmt.Sprint(v))
			}
		}
	case tools.ToolGetZodiacTraits:
		if v, ok := m["sign"]; ok {
			switch vv := v.(type) {
			case string:
				m["sign"] = strings.TrimSpace(vv)
			default:
				m["sign"] = strings.TrimSpace(fmt.Sprint(v))
			}
		}
	}

	b, err := json.Marshal(m)
	if err != nil {
		// fallback to original
		return arguments, nil
	}
	return string(b), nil
}

// addNodes adds all processing nodes to the graph
func (b *GraphBuilder) addNodes() {
	b.graph.AddLambdaNode(nodes.NodeInputConverter,
		nodes.NewInputConverterNode(b.config.MessagesManager, b.config.GuidePromptConfig),
		compose.WithStatePreHandler(nodes.NewInputConverterPreHandler()),
	)

	b.graph.AddChatModelNode(nodes.NodeResponseChatModel,
		nodes.NewResponseChatModelNode(b.config.ChatModels.Response),
		compose.WithStatePreHandler(nodes.NewResponseChatModelPreHandler(b.config.ToolMaxCalls)),
		compose.WithStatePostHandler(nodes.NewResponseChatModelPostHandler(b.config.MessagesManager, b.config.ChatModels.ResponseModelName)),
	)
}

// addEdges creates the main flow connections between nodes
func (b *GraphBuilder) addEdges() {
	edges := [][2]string{
		{compose.START, nodes.NodeInputConverter},
		{nodes.NodeInputConverter, nodes.NodeResponseChatModel},
		{nodes.NodeToolExecutor, nodes.NodeResponseChatModel},
	}

	for _, edge := range edges {
		b.graph.AddEdge(edge[0], edge[1])
	}
}

// addBranches creates conditional routing branches
func (b *GraphBuilder) addBranches() error {
	decisionBranch := compose.NewGraphBranch(
		nodes.NewToolExecutorCondition(),
		map[string]bool{
			nodes.NodeToolExecutor: true,
			compose.END:            true,
		},
	)
	if err := b.graph.AddBranch(nodes.NodeResponseChatModel, decisionBranch); err != nil {
		logx.Error().Err(err).Msg("Error adding decision branch")
		return fmt.Errorf("error adding decision branch: %w", err)
	}

	return nil
}

// compile finalizes and compiles the graph
func (b *GraphBuilder) compile(ctx context.Context) (compose.Runnable[model.QueryInput, *schema.Message], error) {
	// Limit total run steps to avoid infinite loops in branching or tool retries
	maxSteps := 10 + b.config.ToolMaxCalls*2
	if maxSteps < 20 {
		maxSteps = 20
	}

	runnable, err := b.graph.Compile(ctx, compose.WithMaxRunSteps(maxSteps))
	if err != nil {
		logx.Error().Err(err).Msg("Error compiling graph")
		return nil, fmt.Errorf("error compiling graph: %w", err)
	}

	logx.Debug().Msg("Graph compiled successfully")
	return runnable, nil
}
