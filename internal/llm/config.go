package llm

import (
	"os"
	"regexp"
	"strings"
)

// Model defaults applied when no explicit model is configured.
const (
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultAnthropicModel = "claude-3-5-sonnet-20240620"
	DefaultGeminiModel    = "gemini-1.5-flash"
)

// keyRescueEnv opts in to the legacy heuristic that treats an API-key-shaped
// value in the provider variable as an OpenAI key. Deployments that relied on
// that misconfiguration can set it to "1"; everyone else gets strict lookup.
const keyRescueEnv = "LLM_KEY_RESCUE"

var apiKeyPattern = regexp.MustCompile(`(?i)^(sk-|sk-proj-)`)

// Resolver resolves per-feature provider configuration from environment-style
// settings. Each concern accepts an ordered list of spellings (feature
// specific, shared generic, lowercase variants and one historical typo); the
// first non-empty value wins. Absence of all settings is a valid outcome and
// yields a disabled ProviderConfig.
type Resolver struct {
	lookup func(string) string
}

// NewResolver resolves against the process environment.
func NewResolver() Resolver {
	return Resolver{lookup: os.Getenv}
}

// NewResolverFunc resolves against a caller-supplied lookup, used by tests.
func NewResolverFunc(lookup func(string) string) Resolver {
	return Resolver{lookup: lookup}
}

func (r Resolver) pick(keys ...string) string {
	for _, k := range keys {
		if v := r.lookup(k); v != "" {
			return v
		}
	}
	return ""
}

func defaultModel(p ProviderID) string {
	switch p {
	case ProviderAnthropic:
		return DefaultAnthropicModel
	case ProviderGemini:
		return DefaultGeminiModel
	default:
		return DefaultOpenAIModel
	}
}

// Substitution returns the primary and secondary provider configurations for
// the ingredient substitution feature.
func (r Resolver) Substitution() (primary, secondary ProviderConfig) {
	primary.Provider = ProviderID(strings.ToLower(r.pick("SUBS_PROVIDER", "SUB_PROVIDER", "sub_provider", "LLM_PROVIDER")))
	primary.APIKey = r.pick("SUBS_API_KEY", "SUBS_KEY", "sub_api_key", "sub_key", "LLM_API_KEY")
	primary.Model = r.pick("SUBS_MODEL", "sub_model", "LLM_MODEL")
	if primary.Model == "" {
		primary.Model = defaultModel(primary.Provider)
	}

	if primary.APIKey == "" && r.lookup(keyRescueEnv) == "1" {
		if maybe := r.pick("sub_provider", "SUB_PROVIDER"); apiKeyPattern.MatchString(maybe) {
			primary.APIKey = maybe
			if primary.Provider == ProviderNone {
				primary.Provider = ProviderOpenAI
			}
		}
	}

	secondary.Provider = ProviderID(strings.ToLower(r.pick("SUBS_FALLBACK_PROVIDER", "subs_fallback_provider")))
	secondary.APIKey = r.pick("SUBS_FALLBACK_API_KEY", "subs_fallback_api_key")
	secondary.Model = r.pick("SUBS_FALLBACK_MODEL", "subs_fallback_model")
	if secondary.Model == "" {
		secondary.Model = defaultModel(secondary.Provider)
	}

	return primary, secondary
}

// Recommendation returns the single provider configuration for the
// recommendation and related-recipes features. There is no secondary
// provider on this path; failures fall back to a plain seed search.
func (r Resolver) Recommendation() ProviderConfig {
	var cfg ProviderConfig
	cfg.Provider = ProviderID(strings.ToLower(r.pick("RECS_PROVIDER", "LLM_PROVIDER")))
	if cfg.Provider == ProviderNone {
		cfg.Provider = ProviderOpenAI
	}
	cfg.APIKey = r.pick("RECS_API_KEY", "LLM_API_KEY")
	cfg.Model = r.pick("RECS_MODEL", "LLM_MODEL")
	if cfg.Model == "" {
		cfg.Model = defaultModel(cfg.Provider)
	}
	return cfg
}
