package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	errx "github.com/zodiac-travel/server/internal/core/error"
	logx "github.com/zodiac-travel/server/pkg/logger"
)

// ErrBadStatus marks a reasoning-engine reply with a non-2xx status code.
// The chat handler treats it as the signal to switch to the fallback model.
var ErrBadStatus = errors.New("reasoning engine bad status")

// AgentQuerier asks the primary backend for an answer.
type AgentQuerier interface {
	Query(ctx context.Context, message, userID string, history json.RawMessage) (string, error)
}

// EngineClient talks to a deployed reasoning engine over its :query endpoint
// using IAM credentials.
type EngineClient struct {
	url    string
	tokens oauth2.TokenSource
	http   *http.Client
}

// DefaultTokenSource resolves Application Default Credentials with the
// cloud-platform scope.
func DefaultTokenSource(ctx context.Context) (oauth2.TokenSource, error) {
	ts, err := google.DefaultTokenSource(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default credentials: %w", err)
	}
	return ts, nil
}

// NewEngineClient builds a client for the given query URL. httpClient may be
// nil; a client with a sane timeout is used then.
func NewEngineClient(url string, tokens oauth2.TokenSource, httpClient *http.Client) *EngineClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}
	return &EngineClient{url: url, tokens: tokens, http: httpClient}
}

var _ AgentQuerier = (*EngineClient)(nil)

// Query wraps the message in the reasoning-engine envelope and extracts the
// agent's text from the reply. History is forwarded untouched.
func (c *EngineClient) Query(ctx context.Context, message, userID string, history json.RawMessage) (string, error) {
	if len(history) == 0 {
		history = json.RawMessage("[]")
	}

	payload := map[string]any{
		"class_method": "query",
		"input": map[string]any{
			"input": map[string]any{
				"message": message,
				"user_id": userID,
				"history": history,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode engine payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build engine request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return "", fmt.Errorf("failed to fetch auth token: %w", err)
		}
		token.SetAuthHeader(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errx.WrapUpstream(err, http.StatusBadGateway)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", errx.WrapUpstream(err, http.StatusBadGateway)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logx.Warn().
			Int("status", resp.StatusCode).
			Str("body", truncate(string(respBody), 500)).
			Msg("Reasoning engine returned bad status")
		return "", fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	return extractOutput(respBody), nil
}

// extractOutput pulls the agent text out of the engine reply. The reply is
// {"output": ...} where output may itself be an object with a nested "output".
func extractOutput(body []byte) string {
	out := gjson.GetBytes(body, "output")
	if !out.Exists() {
		return "No response."
	}
	if out.IsObject() {
		if inner := out.Get("output"); inner.Exists() {
			return inner.String()
		}
		return out.Raw
	}
	return out.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
