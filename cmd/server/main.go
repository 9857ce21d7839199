package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/zodiac-travel/server/internal/core"
	"github.com/zodiac-travel/server/internal/gateway"
	logx "github.com/zodiac-travel/server/pkg/logger"
)

// AppConfig defines everything the gateway needs, sourced from environment
// variables (loaded from .env for local runs).
type AppConfig struct {
	Environment string `envconfig:"APP_ENV" default:"development"`

	Gateway gateway.Config

	// Fallback model credentials
	APIKey  string `envconfig:"GEMINI_API_KEY"`
	BaseURL string `envconfig:"GEMINI_BASE_URL"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to process environment config: %v", err)
	}

	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Environment)})

	tokens, err := gateway.DefaultTokenSource(ctx)
	if err != nil {
		// The engine URL may point at a local stub during development;
		// requests then go out unauthenticated.
		logx.Warn().Err(err).Msg("No Google credentials, engine requests will be unauthenticated")
		tokens = nil
	}
	engine := gateway.NewEngineClient(cfg.Gateway.ResolveEngineURL(), tokens, nil)

	var fallback gateway.FallbackGenerator
	if cfg.APIKey != "" {
		fb, err := gateway.NewGeminiFallback(ctx, cfg.APIKey, cfg.BaseURL, cfg.Gateway.FallbackModel)
		if err != nil {
			logx.Warn().Err(err).Msg("Fallback model unavailable, continuing without it")
		} else {
			fallback = fb
		}
	} else {
		logx.Warn().Msg("GEMINI_API_KEY not set, continuing without fallback model")
	}

	router := gateway.NewRouter(gateway.NewChatHandler(engine, fallback))
	if err := gateway.Serve(ctx, cfg.Gateway.Port, router); err != nil {
		logx.Fatal().Err(err).Msg("Gateway stopped")
	}
	logx.Info().Msg("Gateway shut down")
}
