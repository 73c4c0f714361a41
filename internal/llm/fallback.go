package llm

import (
	"regexp"
	"strings"
)

// fallbackRule pairs a pattern over the missing-ingredient string with a
// fixed set of substitutes. First match wins.
type fallbackRule struct {
	match *regexp.Regexp
	subs  [SuggestionCount]Suggestion
}

var fallbackTable = []fallbackRule{
	{
		match: regexp.MustCompile(`milk|whole milk|dairy`),
		subs: [SuggestionCount]Suggestion{
			{Alt: "unsweetened almond milk", Note: "1:1; add 1 tsp oil per cup for richness"},
			{Alt: "oat milk", Note: "1:1; neutral flavor"},
			{Alt: "evaporated milk + water", Note: "1:1 by volume with water"},
		},
	},
	{
		match: regexp.MustCompile(`butter`),
		subs: [SuggestionCount]Suggestion{
			{Alt: "olive oil", Note: "Use 3/4 cup oil for each 1 cup butter in cooking"},
			{Alt: "coconut oil", Note: "1:1; solid at room temp for pastries"},
			{Alt: "margarine", Note: "1:1; baking sticks preferred"},
		},
	},
	{
		match: regexp.MustCompile(`egg`),
		subs: [SuggestionCount]Suggestion{
			{Alt: "flax egg", Note: "1 tbsp flax + 3 tbsp water = 1 egg (binder)"},
			{Alt: "applesauce", Note: "1/4 cup per egg in cakes and muffins"},
			{Alt: "silken tofu", Note: "1/4 cup blended per egg"},
		},
	},
	{
		match: regexp.MustCompile(`cream|heavy cream`),
		subs: [SuggestionCount]Suggestion{
			{Alt: "half-and-half", Note: "1:1 for soups and sauces"},
			{Alt: "evaporated milk", Note: "3/4 cup evap + 1/4 cup oil ~ 1 cup cream"},
			{Alt: "cashew cream", Note: "Blend 1/2 cup soaked cashews + 1/2 cup water"},
		},
	},
}

var genericSubs = [SuggestionCount]Suggestion{
	{Alt: "closest flavor match", Note: "Swap with similar profile (e.g., shallot for onion)"},
	{Alt: "textural stand-in", Note: "Match texture and moisture; adjust liquid"},
	{Alt: "acid/salt balance", Note: "Add lemon or vinegar; use soy or fish sauce sparingly"},
}

// FallbackSuggestions returns three deterministic substitutes for the given
// ingredient. It is pure, total and does no I/O: when no provider is
// configured, all providers fail, or output cannot be normalized, this is
// the terminal state of the fallback chain. The For field always carries the
// caller's original string, not a normalized form.
func FallbackSuggestions(missing string) []Suggestion {
	lower := strings.ToLower(missing)
	for _, rule := range fallbackTable {
		if rule.match.MatchString(lower) {
			return fillFor(rule.subs, missing)
		}
	}
	return fillFor(genericSubs, missing)
}

func fillFor(subs [SuggestionCount]Suggestion, missing string) []Suggestion {
	out := make([]Suggestion, SuggestionCount)
	for i, s := range subs {
		s.For = missing
		out[i] = s
	}
	return out
}
