package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgent struct {
	reply      string
	err        error
	gotMessage string
	gotUserID  string
}

func (s *stubAgent) Query(ctx context.Context, message, userID string, history json.RawMessage) (string, error) {
	s.gotMessage = message
	s.gotUserID = userID
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubFallback struct {
	reply  string
	err    error
	called bool
}

func (s *stubFallback) Generate(ctx context.Context, message string) (string, error) {
	s.called = true
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func postChat(t *testing.T, h http.Handler, body string) (*httptest.ResponseRecorder, ChatResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var resp ChatResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec, resp
}

func TestChatPrimarySuccess(t *testing.T) {
	agent := &stubAgent{reply: "✈️ Pack your bags for Lisbon!"}
	fb := &stubFallback{}
	router := NewRouter(NewChatHandler(agent, fb))

	rec, resp := postChat(t, router, `{"user_id":"user_001","message":"somewhere cheap"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "✈️ Pack your bags for Lisbon!", resp.Response)
	assert.Equal(t, "user_001", resp.SessionID)
	assert.False(t, fb.called)

	// instruction block wraps the message sent upstream
	assert.Contains(t, agent.gotMessage, "CRITICAL INSTRUCTIONS:")
	assert.Contains(t, agent.gotMessage, "User Message: somewhere cheap")
	assert.Equal(t, "user_001", agent.gotUserID)
}

func TestChatFallsBackOnBadStatus(t *testing.T) {
	agent := &stubAgent{err: fmt.Errorf("%w: 500", ErrBadStatus)}
	fb := &stubFallback{reply: "plain gemini answer"}
	router := NewRouter(NewChatHandler(agent, fb))

	rec, resp := postChat(t, router, `{"user_id":"user_002","message":"hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, fb.called)
	assert.Equal(t, "plain gemini answer", resp.Response)
	assert.Equal(t, "user_002", resp.SessionID)
}

func TestChatCloudyWhenFallbackFailsToo(t *testing.T) {
	agent := &stubAgent{err: fmt.Errorf("%w: 503", ErrBadStatus)}
	fb := &stubFallback{err: errors.New("quota exceeded")}
	router := NewRouter(NewChatHandler(agent, fb))

	rec, resp := postChat(t, router, `{"user_id":"user_003","message":"hi"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp.Response, "Cosmic Connection Issue")
	assert.Contains(t, resp.Response, "stars are a bit cloudy")
	assert.Equal(t, "error", resp.SessionID)
}

func TestChatCloudyOnTransportError(t *testing.T) {
	agent := &stubAgent{err: errors.New("connection refused")}
	fb := &stubFallback{}
	router := NewRouter(NewChatHandler(agent, fb))

	rec, resp := postChat(t, router, `{"user_id":"user_001","message":"hi"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, fb.called, "fallback is only for bad engine status")
	assert.Contains(t, resp.Response, "Cosmic Connection Issue")
	assert.Equal(t, "error", resp.SessionID)
}

func TestChatSessionIDWithoutUserID(t *testing.T) {
	agent := &stubAgent{reply: "ok"}
	router := NewRouter(NewChatHandler(agent, nil))

	_, resp := postChat(t, router, `{"message":"hi","session_id":"sess-42"}`)
	assert.Equal(t, "sess-42", resp.SessionID)

	_, resp = postChat(t, router, `{"message":"hi"}`)
	assert.NotEmpty(t, resp.SessionID)
	assert.NotEqual(t, "error", resp.SessionID)
}

func TestChatRejectsMalformedJSON(t *testing.T) {
	router := NewRouter(NewChatHandler(&stubAgent{reply: "ok"}, nil))

	rec, _ := postChat(t, router, `{"user_id": nope}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	router := NewRouter(NewChatHandler(&stubAgent{}, nil))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
