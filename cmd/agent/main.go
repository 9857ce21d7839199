package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/zodiac-travel/server/internal/agent/graph"
	"github.com/zodiac-travel/server/internal/agent/model"
	"github.com/zodiac-travel/server/internal/agent/repo"
	"github.com/zodiac-travel/server/internal/core"
	logx "github.com/zodiac-travel/server/pkg/logger"
	pkgredis "github.com/zodiac-travel/server/pkg/redis"
)

// AppConfig defines all configurable parameters for the interactive agent,
// sourced from environment variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	// Infrastructure
	Redis pkgredis.Config

	// LLM provider
	APIKey  string `envconfig:"GEMINI_API_KEY" required:"true"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`

	// Agent configs
	AgentModel   model.AgentModelConfig
	Prompt       model.GuidePromptConfig
	Conversation model.ConversationConfig

	// Default user profile to chat as
	UserID string `envconfig:"AGENT_USER_ID" default:"user_001"`
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	rdb, err := cfg.Redis.New()
	if err != nil {
		log.Fatalf("Failed to initialise Redis client: %v", err)
	}
	defer rdb.Close()

	ttl, err := time.ParseDuration(cfg.Conversation.TTL)
	if err != nil {
		log.Fatalf("Invalid CONVERSATION_TTL '%s': %v", cfg.Conversation.TTL, err)
	}
	conversationRepo := repo.NewRedisConversationRepository(rdb, ttl)

	runner, err := graph.BuildGuideGraph(ctx, graph.Config{
		APIKey:           cfg.APIKey,
		BaseURL:          cfg.BaseURL,
		AgentModel:       cfg.AgentModel,
		GuidePrompt:      cfg.Prompt,
		Conversation:     cfg.Conversation,
		ConversationRepo: conversationRepo,
	})
	if err != nil {
		log.Fatalf("Failed to build guide graph: %v", err)
	}

	logx.Info().
		Str("app", cfg.Prompt.AppName).
		Str("model", cfg.AgentModel.Model).
		Str("user_id", cfg.UserID).
		Msg("Guide ready")

	interactiveSession(ctx, runner, conversationRepo, cfg.UserID)
}

func interactiveSession(ctx context.Context, runner graph.Runner, conversationRepo model.ConversationRepository, userID string) {
	fmt.Println()
	fmt.Println("🌌✨ Welcome to the Zodiac Travel Guide! ✨🌌")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()
	fmt.Println("I'll help you find your perfect travel destination")
	fmt.Println("based on your zodiac sign, vibe, and budget!")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  'quit' or 'exit' - End the session")
	fmt.Println("  'new'            - Start a new session")
	fmt.Println("  'clear'          - Forget the current session's history")
	fmt.Println()
	fmt.Println(strings.Repeat("-", 50))

	sessionCount := 1
	sessionID := fmt.Sprintf("session_%03d", sessionCount)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\n🧑 You > ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "quit", "exit":
			fmt.Println("\n✨ Thanks for traveling with us! Safe journeys! ✨")
			return

		case "new":
			sessionCount++
			sessionID = fmt.Sprintf("session_%03d", sessionCount)
			fmt.Printf("\n🔄 Started new session: %s\n", sessionID)
			continue

		case "clear":
			if err := conversationRepo.ClearHistory(ctx, sessionID); err != nil {
				fmt.Printf("\n❌ Could not clear history: %v\n", err)
				continue
			}
			fmt.Printf("\n🧹 Cleared history for session: %s\n", sessionID)
			continue
		}

		fmt.Print("\n🔮 Guide > ")
		response, err := runner.Invoke(ctx, model.QueryInput{
			ConversationID: sessionID,
			UserID:         userID,
			Query:          input,
		})
		if err != nil {
			fmt.Printf("\n❌ Error: %v\n", err)
			continue
		}
		fmt.Println(response)
	}
}
