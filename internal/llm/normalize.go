package llm

import "encoding/json"

// SuggestionCount is the exact number of substitutes every substitution
// response carries. The value is a product decision carried over from the
// original UX, not an algorithmic necessity.
const SuggestionCount = 3

// MaxQueries caps how many elaborated search queries are taken from a model
// payload.
const MaxQueries = 3

// DecodeSuggestions extracts the suggestions array from a model payload.
// Any shape problem yields nil, which normalization treats as a failure.
func DecodeSuggestions(payload json.RawMessage) []Suggestion {
	var wrapper struct {
		Suggestions []Suggestion `json:"suggestions"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil
	}
	return wrapper.Suggestions
}

// NormalizeSuggestions validates and coerces raw model output into the fixed
// suggestion shape: truncate to SuggestionCount entries, default a missing
// "for" to the requested ingredient, drop entries without a substitute name.
// It reports ok only when exactly SuggestionCount valid entries remain;
// callers must escalate to the fallback chain otherwise.
func NormalizeSuggestions(raw []Suggestion, missing string) ([]Suggestion, bool) {
	if raw == nil {
		return nil, false
	}
	if len(raw) > SuggestionCount {
		raw = raw[:SuggestionCount]
	}
	out := make([]Suggestion, 0, SuggestionCount)
	for _, s := range raw {
		if s.For == "" {
			s.For = missing
		}
		if s.Alt == "" {
			continue
		}
		out = append(out, s)
	}
	if len(out) != SuggestionCount {
		return nil, false
	}
	return out, true
}

// DecodeQueries extracts up to MaxQueries elaborated search queries from a
// model payload. Nil means the model gave us nothing usable and the caller
// should search with the seed alone.
func DecodeQueries(payload json.RawMessage) []SearchQuery {
	var wrapper struct {
		Queries []SearchQuery `json:"queries"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil
	}
	queries := wrapper.Queries
	if len(queries) > MaxQueries {
		queries = queries[:MaxQueries]
	}
	return queries
}
