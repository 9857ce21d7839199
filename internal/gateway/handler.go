package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	logx "github.com/zodiac-travel/server/pkg/logger"
)

// instructionPrefix is prepended to every message sent to the reasoning
// engine to pin tone and formatting. The fallback model receives the raw
// message without it.
const instructionPrefix = "CRITICAL INSTRUCTIONS:\n" +
	"- **TONE**: Be exciting, cosmic, and engaging! Use emojis (e.g., ✨, 🌌, ✈️) to make the response feel magical.\n" +
	"- **FORMAT**: Your itineraries MUST be presented as a simple list of single-line items. Do NOT use complex markdown or paragraphs for the itinerary list. \n" +
	"  - Example: `• Day 1: Arrive in Paris and visit the Eiffel Tower`\n" +
	"- **CONTEXT**: Do NOT explicitly state the user's star sign as a fact (e.g., 'You are a Leo'). Instead, subtly weave it in.\n" +
	"- **BUDGET**: If budget is not known, ASK for it.\n"

// ChatRequest is the payload the frontend posts to /chat. History entries
// are forwarded to the engine untouched, so they stay raw JSON here.
type ChatRequest struct {
	UserID    string          `json:"user_id"`
	Message   string          `json:"message"`
	SessionID string          `json:"session_id,omitempty"`
	History   json.RawMessage `json:"history,omitempty"`
}

type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"session_id"`
}

// ChatHandler proxies chat requests to the reasoning engine, with a direct
// Gemini fallback when the engine answers with a bad status. Failures beyond
// that still produce HTTP 200 with an in-character error message, so the
// frontend never has to special-case transport errors.
type ChatHandler struct {
	agent    AgentQuerier
	fallback FallbackGenerator
}

func NewChatHandler(agent AgentQuerier, fallback FallbackGenerator) *ChatHandler {
	return &ChatHandler{agent: agent, fallback: fallback}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	sessionID := req.UserID
	if sessionID == "" {
		sessionID = req.SessionID
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	finalMessage := instructionPrefix + "\nUser Message: " + req.Message

	logx.Info().
		Str("user_id", req.UserID).
		Msg("Sending contextualized query to agent")

	text, err := h.agent.Query(r.Context(), finalMessage, req.UserID, req.History)
	if err == nil {
		writeJSON(w, ChatResponse{Response: text, SessionID: sessionID})
		return
	}

	if errors.Is(err, ErrBadStatus) && h.fallback != nil {
		logx.Warn().Err(err).Msg("Agent engine failed, switching to fallback model")

		fbText, fbErr := h.fallback.Generate(r.Context(), req.Message)
		if fbErr == nil {
			writeJSON(w, ChatResponse{Response: fbText, SessionID: sessionID})
			return
		}
		err = fmt.Errorf("fallback failed too: %w", fbErr)
	}

	logx.Error().Err(err).Msg("Error during chat")
	writeJSON(w, ChatResponse{
		Response:  cloudyMessage(err),
		SessionID: "error",
	})
}

func (h *ChatHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

func cloudyMessage(err error) string {
	return fmt.Sprintf(
		"✨ **Cosmic Connection Issue** ✨\n\n"+
			"The stars are a bit cloudy (Agent functionality is limited). \n"+
			"Error: %v\n\n"+
			"Try again later! 🌌",
		err,
	)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logx.Error().Err(err).Msg("Failed to write response")
	}
}
