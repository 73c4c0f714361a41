package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func resolverFor(env map[string]string) Resolver {
	return NewResolverFunc(func(key string) string {
		return env[key]
	})
}

func TestSubstitutionResolution(t *testing.T) {
	t.Run("absent config yields disabled providers", func(t *testing.T) {
		primary, secondary := resolverFor(nil).Substitution()
		assert.False(t, primary.Enabled())
		assert.False(t, secondary.Enabled())
	})

	t.Run("feature specific settings win over generic", func(t *testing.T) {
		primary, _ := resolverFor(map[string]string{
			"SUBS_PROVIDER": "anthropic",
			"LLM_PROVIDER":  "openai",
			"SUBS_API_KEY":  "subs-key",
			"LLM_API_KEY":   "generic-key",
		}).Substitution()
		assert.Equal(t, ProviderAnthropic, primary.Provider)
		assert.Equal(t, "subs-key", primary.APIKey)
		assert.Equal(t, DefaultAnthropicModel, primary.Model)
	})

	t.Run("generic settings fill gaps", func(t *testing.T) {
		primary, _ := resolverFor(map[string]string{
			"LLM_PROVIDER": "gemini",
			"LLM_API_KEY":  "generic-key",
			"LLM_MODEL":    "gemini-2.0-pro",
		}).Substitution()
		assert.Equal(t, ProviderGemini, primary.Provider)
		assert.Equal(t, "generic-key", primary.APIKey)
		assert.Equal(t, "gemini-2.0-pro", primary.Model)
	})

	t.Run("lowercase spellings are honored", func(t *testing.T) {
		primary, _ := resolverFor(map[string]string{
			"sub_provider": "openai",
			"sub_api_key":  "legacy-key",
		}).Substitution()
		assert.Equal(t, ProviderOpenAI, primary.Provider)
		assert.Equal(t, "legacy-key", primary.APIKey)
	})

	t.Run("provider name is lowercased", func(t *testing.T) {
		primary, _ := resolverFor(map[string]string{
			"SUBS_PROVIDER": "OpenAI",
			"SUBS_API_KEY":  "k",
		}).Substitution()
		assert.Equal(t, ProviderOpenAI, primary.Provider)
	})

	t.Run("secondary resolves independently", func(t *testing.T) {
		primary, secondary := resolverFor(map[string]string{
			"SUBS_PROVIDER":          "openai",
			"SUBS_API_KEY":           "pk",
			"SUBS_FALLBACK_PROVIDER": "anthropic",
			"SUBS_FALLBACK_API_KEY":  "sk",
		}).Substitution()
		assert.True(t, primary.Enabled())
		assert.Equal(t, ProviderAnthropic, secondary.Provider)
		assert.Equal(t, "sk", secondary.APIKey)
		assert.Equal(t, DefaultAnthropicModel, secondary.Model)
	})
}

func TestKeyRescueHeuristic(t *testing.T) {
	misconfigured := map[string]string{
		"sub_provider": "sk-abc123",
	}

	t.Run("disabled by default", func(t *testing.T) {
		primary, _ := resolverFor(misconfigured).Substitution()
		assert.False(t, primary.Enabled())
	})

	t.Run("opt in treats key shaped provider as openai key", func(t *testing.T) {
		env := map[string]string{
			"sub_provider":   "sk-abc123",
			"LLM_KEY_RESCUE": "1",
		}
		primary, _ := resolverFor(env).Substitution()
		assert.True(t, primary.Enabled())
		assert.Equal(t, ProviderOpenAI, primary.Provider)
		assert.Equal(t, "sk-abc123", primary.APIKey)
	})

	t.Run("opt in ignores non key values", func(t *testing.T) {
		env := map[string]string{
			"sub_provider":   "anthropic",
			"LLM_KEY_RESCUE": "1",
		}
		primary, _ := resolverFor(env).Substitution()
		assert.False(t, primary.Enabled())
		assert.Equal(t, ProviderAnthropic, primary.Provider)
	})
}

func TestRecommendationResolution(t *testing.T) {
	t.Run("provider defaults to openai", func(t *testing.T) {
		cfg := resolverFor(map[string]string{"RECS_API_KEY": "k"}).Recommendation()
		assert.Equal(t, ProviderOpenAI, cfg.Provider)
		assert.Equal(t, DefaultOpenAIModel, cfg.Model)
		assert.True(t, cfg.Enabled())
	})

	t.Run("no key means disabled", func(t *testing.T) {
		cfg := resolverFor(nil).Recommendation()
		assert.False(t, cfg.Enabled())
	})

	t.Run("feature specific settings win", func(t *testing.T) {
		cfg := resolverFor(map[string]string{
			"RECS_PROVIDER": "gemini",
			"RECS_API_KEY":  "rk",
			"LLM_PROVIDER":  "openai",
			"LLM_API_KEY":   "gk",
		}).Recommendation()
		assert.Equal(t, ProviderGemini, cfg.Provider)
		assert.Equal(t, "rk", cfg.APIKey)
		assert.Equal(t, DefaultGeminiModel, cfg.Model)
	})
}
