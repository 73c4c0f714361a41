package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/types"
)

const defaultSpoonacularBaseURL = "https://api.spoonacular.com"

// SpoonacularClient talks to the upstream recipe search/detail API. A
// fallback API key, when configured, is tried automatically after quota
// responses on the primary key.
type SpoonacularClient struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	fallbackKey string
}

// NewSpoonacularClient creates a client from configuration.
func NewSpoonacularClient(cfg *config.Config) *SpoonacularClient {
	baseURL := cfg.SpoonacularAPIURL
	if baseURL == "" {
		baseURL = defaultSpoonacularBaseURL
	}
	return &SpoonacularClient{
		client:      &http.Client{Timeout: 15 * time.Second},
		baseURL:     baseURL,
		apiKey:      cfg.SpoonacularAPIKey,
		fallbackKey: cfg.SpoonacularAPIKeyFallback,
	}
}

// doWithKeyFallback issues the request with the primary key and retries once
// with the fallback key on quota statuses. Spoonacular typically responds
// with 402 or 429 when out of quota; some tiers use 403.
func (c *SpoonacularClient) doWithKeyFallback(ctx context.Context, buildURL func(key string) string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, buildURL(c.apiKey), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	if (resp.StatusCode == http.StatusPaymentRequired ||
		resp.StatusCode == http.StatusTooManyRequests ||
		resp.StatusCode == http.StatusForbidden) && c.fallbackKey != "" {
		resp.Body.Close()
		retry, err := http.NewRequestWithContext(ctx, http.MethodGet, buildURL(c.fallbackKey), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create retry request: %w", err)
		}
		resp, err = c.client.Do(retry)
		if err != nil {
			return nil, fmt.Errorf("failed to send retry request: %w", err)
		}
	}

	return resp, nil
}

// Search runs a complex search with the given filters.
func (c *SpoonacularClient) Search(ctx context.Context, p types.SearchParams) ([]types.Recipe, error) {
	number := p.Number
	if number <= 0 {
		number = 24
	}
	params := url.Values{}
	params.Set("query", p.Query)
	params.Set("number", strconv.Itoa(number))
	params.Set("addRecipeInformation", "true")
	params.Set("fillIngredients", "true")
	params.Set("instructionsRequired", "true")
	if p.Diet != "" {
		params.Set("diet", p.Diet)
	}
	if p.Cuisine != "" {
		params.Set("cuisine", p.Cuisine)
	}
	if p.MaxReadyTime > 0 {
		params.Set("maxReadyTime", strconv.Itoa(p.MaxReadyTime))
	}
	if p.MaxCalories > 0 {
		params.Set("maxCalories", strconv.Itoa(p.MaxCalories))
	}

	resp, err := c.doWithKeyFallback(ctx, func(key string) string {
		return fmt.Sprintf("%s/recipes/complexSearch?%s&apiKey=%s", c.baseURL, params.Encode(), key)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spoonacular search failed with status %d", resp.StatusCode)
	}

	var data struct {
		Results []types.Recipe `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return data.Results, nil
}

// Trending fetches popular recipes using the upstream popularity sorting.
func (c *SpoonacularClient) Trending(ctx context.Context, number int, diet, cuisine string) ([]types.Recipe, error) {
	if number <= 0 {
		number = 12
	}
	params := url.Values{}
	params.Set("number", strconv.Itoa(number))
	params.Set("addRecipeInformation", "true")
	params.Set("fillIngredients", "true")
	params.Set("instructionsRequired", "true")
	params.Set("sort", "popularity")
	params.Set("sortDirection", "desc")
	if diet != "" {
		params.Set("diet", diet)
	}
	if cuisine != "" {
		params.Set("cuisine", cuisine)
	}

	resp, err := c.doWithKeyFallback(ctx, func(key string) string {
		return fmt.Sprintf("%s/recipes/complexSearch?%s&apiKey=%s", c.baseURL, params.Encode(), key)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spoonacular trending failed with status %d", resp.StatusCode)
	}

	var data struct {
		Results []types.Recipe `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trending response: %w", err)
	}
	return data.Results, nil
}

// Details fetches full recipe information including nutrition.
func (c *SpoonacularClient) Details(ctx context.Context, id int64) (*types.Recipe, error) {
	resp, err := c.doWithKeyFallback(ctx, func(key string) string {
		return fmt.Sprintf("%s/recipes/%d/information?apiKey=%s&includeNutrition=true", c.baseURL, id, key)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spoonacular details failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read details response: %w", err)
	}
	var recipe types.Recipe
	if err := json.Unmarshal(body, &recipe); err != nil {
		return nil, fmt.Errorf("failed to decode details response: %w", err)
	}
	return &recipe, nil
}

// PriceBreakdown fetches the per-ingredient cost document for a recipe. The
// payload is passed through untouched; its schema belongs to the upstream.
func (c *SpoonacularClient) PriceBreakdown(ctx context.Context, id int64) (json.RawMessage, error) {
	resp, err := c.doWithKeyFallback(ctx, func(key string) string {
		return fmt.Sprintf("%s/recipes/%d/priceBreakdownWidget.json?apiKey=%s", c.baseURL, id, key)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spoonacular price breakdown failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read price breakdown response: %w", err)
	}
	return json.RawMessage(body), nil
}

// Similar fetches the upstream similar-recipes list and hydrates each entry
// with details so results include images. Hydration failures are isolated
// per recipe.
func (c *SpoonacularClient) Similar(ctx context.Context, id int64, number int) ([]types.Recipe, error) {
	if number <= 0 {
		number = 4
	}
	resp, err := c.doWithKeyFallback(ctx, func(key string) string {
		return fmt.Sprintf("%s/recipes/%d/similar?apiKey=%s&number=%d", c.baseURL, id, key, number)
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spoonacular similar failed with status %d", resp.StatusCode)
	}

	var sims []struct {
		ID int64 `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&sims); err != nil {
		return nil, fmt.Errorf("failed to decode similar response: %w", err)
	}

	hydrated := make([]*types.Recipe, len(sims))
	var wg sync.WaitGroup
	for i, s := range sims {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			if d, err := c.Details(ctx, id); err == nil {
				hydrated[i] = d
			}
		}(i, s.ID)
	}
	wg.Wait()

	items := make([]types.Recipe, 0, len(hydrated))
	for _, d := range hydrated {
		if d == nil {
			continue
		}
		items = append(items, types.Recipe{
			ID:             d.ID,
			Title:          d.Title,
			Image:          d.Image,
			ReadyInMinutes: d.ReadyInMinutes,
			Servings:       d.Servings,
			Cuisines:       d.Cuisines,
			Diets:          d.Diets,
		})
		if len(items) >= number {
			break
		}
	}
	return items, nil
}
