package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

func staticTokens() oauth2.TokenSource {
	return oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"})
}

func TestEngineClientSendsEnvelope(t *testing.T) {
	var gotAuth string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"output":"✨ Santorini awaits!"}`))
	}))
	defer srv.Close()

	client := NewEngineClient(srv.URL, staticTokens(), srv.Client())

	history := json.RawMessage(`[{"role":"user","text":"hi"}]`)
	out, err := client.Query(context.Background(), "find me a trip", "user_001", history)
	require.NoError(t, err)
	assert.Equal(t, "✨ Santorini awaits!", out)

	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Equal(t, "query", gjson.GetBytes(gotBody, "class_method").String())
	assert.Equal(t, "find me a trip", gjson.GetBytes(gotBody, "input.input.message").String())
	assert.Equal(t, "user_001", gjson.GetBytes(gotBody, "input.input.user_id").String())
	assert.Equal(t, "hi", gjson.GetBytes(gotBody, "input.input.history.0.text").String())
}

func TestEngineClientNestedOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"output":{"output":"nested answer"}}`))
	}))
	defer srv.Close()

	client := NewEngineClient(srv.URL, staticTokens(), srv.Client())

	out, err := client.Query(context.Background(), "q", "user_002", nil)
	require.NoError(t, err)
	assert.Equal(t, "nested answer", out)
}

func TestEngineClientMissingOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"something":"else"}`))
	}))
	defer srv.Close()

	client := NewEngineClient(srv.URL, staticTokens(), srv.Client())

	out, err := client.Query(context.Background(), "q", "user_002", nil)
	require.NoError(t, err)
	assert.Equal(t, "No response.", out)
}

func TestEngineClientBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "engine exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewEngineClient(srv.URL, staticTokens(), srv.Client())

	_, err := client.Query(context.Background(), "q", "user_003", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestEngineClientEmptyHistoryDefaultsToArray(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"output":"ok"}`))
	}))
	defer srv.Close()

	client := NewEngineClient(srv.URL, staticTokens(), srv.Client())

	_, err := client.Query(context.Background(), "q", "user_001", nil)
	require.NoError(t, err)
	assert.True(t, gjson.GetBytes(gotBody, "input.input.history").IsArray())
}

func TestConfigResolveEngineURL(t *testing.T) {
	cfg := Config{ProjectID: "p-123", Location: "us-central1", AgentID: "a-456"}
	assert.Equal(t,
		"https://us-central1-aiplatform.googleapis.com/v1beta1/projects/p-123/locations/us-central1/reasoningEngines/a-456:query",
		cfg.ResolveEngineURL())

	cfg.EngineURL = "http://localhost:9999/query"
	assert.Equal(t, "http://localhost:9999/query", cfg.ResolveEngineURL())
}
