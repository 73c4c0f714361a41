package llm

import (
	"context"
	"log"
)

// SourceFallback marks a substitution answered by the deterministic table.
const SourceFallback = "fallback"

// SubstituteResult is what the substitution endpoint returns: the source that
// produced the suggestions and exactly SuggestionCount of them.
type SubstituteResult struct {
	Source      string       `json:"source"`
	Suggestions []Suggestion `json:"suggestions"`
}

// Substituter runs the substitution fallback chain: primary provider, then
// the configured secondary provider, then the deterministic table. Provider
// failures are absorbed here; Suggest never fails.
type Substituter struct {
	resolver  Resolver
	providers *Registry
}

// NewSubstituter creates a Substituter over the given resolver and adapters.
func NewSubstituter(resolver Resolver, providers *Registry) *Substituter {
	return &Substituter{resolver: resolver, providers: providers}
}

// Suggest returns substitutes for the missing ingredient. The caller has
// already validated that missing is non-empty.
func (s *Substituter) Suggest(ctx context.Context, missing string, ingredients []string, diet string) SubstituteResult {
	prompt := SubstitutePrompt(missing, ingredients, diet)
	primary, secondary := s.resolver.Substitution()

	if res, ok := s.tryProvider(ctx, primary, prompt, missing); ok {
		return res
	}
	if res, ok := s.tryProvider(ctx, secondary, prompt, missing); ok {
		return res
	}
	return SubstituteResult{Source: SourceFallback, Suggestions: FallbackSuggestions(missing)}
}

// tryProvider attempts one provider configuration. Rate limiting, transport
// errors and normalization failures all report !ok so the chain advances;
// none of them are fatal to the request.
func (s *Substituter) tryProvider(ctx context.Context, cfg ProviderConfig, prompt, missing string) (SubstituteResult, bool) {
	if !cfg.Enabled() {
		return SubstituteResult{}, false
	}
	provider := s.providers.Lookup(cfg.Provider)
	if provider == nil {
		log.Printf("[Substituter] unsupported provider %q, skipping", cfg.Provider)
		return SubstituteResult{}, false
	}

	out, err := provider.Complete(ctx, cfg.APIKey, cfg.Model, prompt)
	if err != nil {
		log.Printf("[Substituter] %s call failed: %v", cfg.Provider, err)
		return SubstituteResult{}, false
	}
	if out.RateLimited {
		log.Printf("[Substituter] %s rate limited, trying next", cfg.Provider)
		return SubstituteResult{}, false
	}

	suggestions, ok := NormalizeSuggestions(DecodeSuggestions(out.Payload), missing)
	if !ok {
		log.Printf("[Substituter] %s output failed normalization, trying next", cfg.Provider)
		return SubstituteResult{}, false
	}
	return SubstituteResult{Source: string(cfg.Provider), Suggestions: suggestions}, true
}
