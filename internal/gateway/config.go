package gateway

import "fmt"

// Config holds the HTTP proxy settings, sourced from environment variables.
type Config struct {
	Port int `envconfig:"GATEWAY_PORT" default:"8000"`

	// Reasoning engine (primary backend)
	ProjectID string `envconfig:"GOOGLE_CLOUD_PROJECT"`
	Location  string `envconfig:"GOOGLE_CLOUD_LOCATION" default:"us-central1"`
	AgentID   string `envconfig:"REASONING_AGENT_ID"`
	// EngineURL overrides the URL derived from project/location/agent when set.
	EngineURL string `envconfig:"REASONING_ENGINE_URL"`

	// Fallback model used when the engine answers with a non-2xx status
	FallbackModel string `envconfig:"FALLBACK_MODEL" default:"gemini-2.5-flash-lite"`
}

// ResolveEngineURL returns the reasoning engine query endpoint.
func (c Config) ResolveEngineURL() string {
	if c.EngineURL != "" {
		return c.EngineURL
	}
	return fmt.Sprintf(
		"https://%s-aiplatform.googleapis.com/v1beta1/projects/%s/locations/%s/reasoningEngines/%s:query",
		c.Location, c.ProjectID, c.Location, c.AgentID,
	)
}
