package llm

import (
	"fmt"
	"strings"
)

// maxPromptIngredients bounds how many ingredient names are embedded in a
// related-recipes prompt.
const maxPromptIngredients = 12

// SubstitutePrompt builds the instruction for the ingredient substitution
// task. The JSON schema description is part of the prompt so every backend
// receives it verbatim, including those without a native JSON response mode.
func SubstitutePrompt(missing string, ingredients []string, diet string) string {
	existing := strings.Join(ingredients, ", ")
	if existing == "" {
		existing = "unknown"
	}
	if diet == "" {
		diet = "none"
	}
	return fmt.Sprintf(`You are a culinary expert. Suggest exactly 3 practical substitutes for the ingredient %q in a recipe.
Existing ingredients: %s
Dietary constraints: %s
Each suggestion must include { for: %q, alt: "name of substitute", note: "short usage note" }.
Return only JSON with shape: { "suggestions": [ { "for": "", "alt": "", "note": "" }, { ... }, { ... } ] }`,
		missing, existing, diet, missing)
}

// RecommendPrompt builds the instruction that turns a seed search intent and
// optional filters into 2-3 concrete search queries.
func RecommendPrompt(seed, diet, cuisine string, maxTime int) string {
	if diet == "" {
		diet = "-"
	}
	if cuisine == "" {
		cuisine = "-"
	}
	maxTimeStr := "-"
	if maxTime > 0 {
		maxTimeStr = fmt.Sprintf("%d", maxTime)
	}
	return fmt.Sprintf(`You are assisting a cooking app. Given a user intent and optional filters, output 2-3 high quality recipe search ideas.
Seed intent: %s
User filters (optional): diet=%s, cuisine=%s, maxTime=%s
Return only JSON: { "queries": [ { "query": string, "cuisine"?: string, "diet"?: string, "maxTime"?: number } ] }.
Keep queries concrete (e.g., 'quick vegetarian pasta', 'protein-rich Indian curry', 'gluten-free tacos').`,
		seed, diet, cuisine, maxTimeStr)
}

// RelatedPrompt builds the instruction that derives 2-3 similar-recipe search
// queries from a base recipe's attributes.
func RelatedPrompt(title string, cuisines, diets, ingredients []string) string {
	if len(ingredients) > maxPromptIngredients {
		ingredients = ingredients[:maxPromptIngredients]
	}
	join := func(ss []string) string {
		if len(ss) == 0 {
			return "-"
		}
		return strings.Join(ss, ", ")
	}
	return fmt.Sprintf(`You are assisting a cooking app. Recommend 2-3 highly similar recipe search ideas given a base recipe. Keep the cuisine, diet, core technique, and key flavors aligned; vary toppings or minor ingredients only.
Base recipe: %s
Cuisines: %s
Diets: %s
Key ingredients: %s
Return only JSON: { "queries": [ { "query": string }, { "query": string }, { "query": string } ] }.`,
		title, join(cuisines), join(diets), join(ingredients))
}
