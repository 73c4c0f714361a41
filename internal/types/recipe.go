package types

import "encoding/json"

// Recipe is the upstream recipe shape as returned by the Spoonacular API.
// Only the fields the application reads are declared; ingredient lists,
// instruction steps and nutrition blobs stay raw because their schema
// belongs to the upstream.
type Recipe struct {
	ID                   int64           `json:"id"`
	Title                string          `json:"title"`
	Summary              string          `json:"summary,omitempty"`
	Image                string          `json:"image,omitempty"`
	SourceURL            string          `json:"sourceUrl,omitempty"`
	ReadyInMinutes       int             `json:"readyInMinutes,omitempty"`
	Servings             int             `json:"servings,omitempty"`
	Cuisines             []string        `json:"cuisines,omitempty"`
	Diets                []string        `json:"diets,omitempty"`
	ExtendedIngredients  json.RawMessage `json:"extendedIngredients,omitempty"`
	AnalyzedInstructions json.RawMessage `json:"analyzedInstructions,omitempty"`
	Nutrition            json.RawMessage `json:"nutrition,omitempty"`

	// Local rating aggregates, filled in from our own database when the
	// recipe has reviews here. Nil when unknown.
	AvgRating   *float64 `json:"avgRating,omitempty"`
	RatingCount *int     `json:"ratingCount,omitempty"`
}

// SearchParams are the supported upstream search filters.
type SearchParams struct {
	Query        string
	Diet         string
	Cuisine      string
	MaxReadyTime int
	MaxCalories  int
	Number       int
}
