package gateway

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	logx "github.com/zodiac-travel/server/pkg/logger"
)

// FallbackGenerator produces an answer when the primary backend is down.
type FallbackGenerator interface {
	Generate(ctx context.Context, message string) (string, error)
}

// GeminiFallback calls a plain Gemini model directly, without tools or
// history. It receives the raw user message, not the instruction-wrapped one.
type GeminiFallback struct {
	client    *genai.Client
	modelName string
}

// NewGeminiFallback builds the fallback generator. baseURL is optional.
func NewGeminiFallback(ctx context.Context, apiKey, baseURL, modelName string) (*GeminiFallback, error) {
	cc := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cc.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback client: %w", err)
	}

	return &GeminiFallback{client: client, modelName: modelName}, nil
}

var _ FallbackGenerator = (*GeminiFallback)(nil)

func (g *GeminiFallback) Generate(ctx context.Context, message string) (string, error) {
	logx.Info().Str("model", g.modelName).Msg("Using fallback model")

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(message), nil)
	if err != nil {
		return "", fmt.Errorf("fallback generation failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("fallback returned empty response")
	}
	return text, nil
}
