package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Suggestion is a single ingredient substitution recommendation.
type Suggestion struct {
	For  string `json:"for"`
	Alt  string `json:"alt"`
	Note string `json:"note"`
}

// SearchQuery is a model-elaborated recipe search idea derived from a seed
// intent or a base recipe.
type SearchQuery struct {
	Query   string `json:"query"`
	Cuisine string `json:"cuisine,omitempty"`
	Diet    string `json:"diet,omitempty"`
	MaxTime int    `json:"maxTime,omitempty"`
}

// ProviderID identifies one of the supported LLM backends.
type ProviderID string

const (
	ProviderNone      ProviderID = ""
	ProviderOpenAI    ProviderID = "openai"
	ProviderAnthropic ProviderID = "anthropic"
	ProviderGemini    ProviderID = "gemini"
)

// ProviderConfig is the resolved configuration for a single provider attempt.
// A zero value means "not configured", which is a valid state.
type ProviderConfig struct {
	Provider ProviderID
	APIKey   string
	Model    string
}

// Enabled reports whether this configuration can be attempted at all.
func (c ProviderConfig) Enabled() bool {
	return c.Provider != ProviderNone && c.APIKey != ""
}

// Completion is the raw outcome of one provider invocation. When the backend
// rate limits us RateLimited is set and Payload is empty. Otherwise Payload
// holds the model's completion as a JSON object; completions that were not
// valid JSON are replaced with an empty object so that normalization rejects
// them instead of the transport layer.
type Completion struct {
	RateLimited bool
	Payload     json.RawMessage
}

// Provider is one LLM backend. Implementations translate a generic prompt
// into the backend's wire format and extract the completion text from its
// response envelope.
type Provider interface {
	Name() ProviderID
	Complete(ctx context.Context, apiKey, model, prompt string) (Completion, error)
}

// StatusError reports a non-success, non-rate-limit HTTP status from a
// provider backend.
type StatusError struct {
	Provider ProviderID
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Provider, e.Status)
}

// Registry holds the closed set of provider adapters.
type Registry struct {
	providers map[ProviderID]Provider
}

// NewRegistry builds a registry with all three adapters sharing one HTTP
// client. A nil client gets a bounded-timeout default; the upstream calls
// must never hang a request handler indefinitely.
func NewRegistry(client *http.Client) *Registry {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	reg := &Registry{providers: make(map[ProviderID]Provider)}
	reg.Register(NewOpenAI(client, ""))
	reg.Register(NewAnthropic(client, ""))
	reg.Register(NewGemini(client, ""))
	return reg
}

// Register adds or replaces an adapter. Tests use this to point a provider
// at a local fake backend.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name()] = p
}

// Lookup returns the adapter for id, or nil when the id is unknown or none.
func (r *Registry) Lookup(id ProviderID) Provider {
	return r.providers[id]
}

// sanitizeJSON returns text as a raw JSON value when it parses, or an empty
// object otherwise. Malformed model output is rejected later by
// normalization, not here.
func sanitizeJSON(text string) json.RawMessage {
	if json.Valid([]byte(text)) {
		return json.RawMessage(text)
	}
	return json.RawMessage("{}")
}
