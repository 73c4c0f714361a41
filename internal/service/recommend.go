package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/plateful/backend/internal/llm"
	"github.com/plateful/backend/internal/types"
)

// ErrUpstreamUnavailable signals that no recipe could be obtained from the
// upstream API by any strategy, including the direct seed search.
var ErrUpstreamUnavailable = errors.New("recipe search upstream unavailable")

// Recommender produces recommendation and related-recipe result sets by
// elaborating a seed into multiple search queries with an LLM, fanning the
// queries out to the upstream API concurrently and merging the results.
type Recommender struct {
	resolver  llm.Resolver
	providers *llm.Registry
	upstream  UpstreamAPI

	// Per-query fetch size, merged pool cap and final response cap for the
	// recommendations feed.
	BatchSize int
	MergeCap  int
	FinalCap  int

	// Same knobs for the related-recipes strip, which is rendered smaller.
	RelatedBatchSize int
	RelatedMergeCap  int
	RelatedFinalCap  int
}

func NewRecommender(resolver llm.Resolver, providers *llm.Registry, upstream UpstreamAPI) *Recommender {
	return &Recommender{
		resolver:  resolver,
		providers: providers,
		upstream:  upstream,

		BatchSize: 12,
		MergeCap:  18,
		FinalCap:  12,

		RelatedBatchSize: 8,
		RelatedMergeCap:  6,
		RelatedFinalCap:  4,
	}
}

// Recommend returns a merged, deduplicated recommendation set for the seed
// intent. The LLM elaboration is advisory; when it is unavailable or yields
// nothing, the seed itself is searched directly.
func (r *Recommender) Recommend(ctx context.Context, seed, diet, cuisine string, maxTime int) ([]types.Recipe, error) {
	queries := r.elaborate(ctx, llm.RecommendPrompt(seed, diet, cuisine, maxTime))
	if len(queries) == 0 {
		queries = []llm.SearchQuery{{Query: seed, Diet: diet, Cuisine: cuisine, MaxTime: maxTime}}
	}
	for i := range queries {
		if queries[i].Diet == "" {
			queries[i].Diet = diet
		}
		if queries[i].Cuisine == "" {
			queries[i].Cuisine = cuisine
		}
		if queries[i].MaxTime == 0 {
			queries[i].MaxTime = maxTime
		}
	}

	merged := r.fanOut(ctx, queries, r.BatchSize, r.MergeCap)
	if len(merged) == 0 {
		direct, err := r.upstream.Search(ctx, types.SearchParams{
			Query: seed, Diet: diet, Cuisine: cuisine, MaxReadyTime: maxTime, Number: r.BatchSize,
		})
		if err != nil {
			return nil, ErrUpstreamUnavailable
		}
		// A search that finds nothing is still an answer.
		merged = append(merged, direct...)
	}

	if len(merged) > r.FinalCap {
		merged = merged[:r.FinalCap]
	}
	return merged, nil
}

// Related returns recipes similar to the base recipe. The LLM derives search
// queries from the base recipe's attributes; the upstream similar-recipes
// endpoint is the fallback when elaboration produces nothing usable.
func (r *Recommender) Related(ctx context.Context, base *types.Recipe, ingredients []string) ([]types.Recipe, error) {
	queries := r.elaborate(ctx, llm.RelatedPrompt(base.Title, base.Cuisines, base.Diets, ingredients))

	var merged []types.Recipe
	if len(queries) > 0 {
		merged = r.fanOut(ctx, queries, r.RelatedBatchSize, r.RelatedMergeCap)
		merged = dropID(merged, base.ID)
	}
	if len(merged) == 0 {
		similar, err := r.upstream.Similar(ctx, base.ID, r.RelatedFinalCap)
		if err != nil {
			return nil, ErrUpstreamUnavailable
		}
		merged = dropID(similar, base.ID)
	}

	if len(merged) > r.RelatedFinalCap {
		merged = merged[:r.RelatedFinalCap]
	}
	return merged, nil
}

// elaborate runs the prompt against the configured recommendation provider
// and decodes the query list. All failure modes collapse to nil; the caller
// always has a non-LLM path.
func (r *Recommender) elaborate(ctx context.Context, prompt string) []llm.SearchQuery {
	cfg := r.resolver.Recommendation()
	if !cfg.Enabled() {
		return nil
	}
	provider := r.providers.Lookup(cfg.Provider)
	if provider == nil {
		log.Printf("[Recommender] unknown provider %q, skipping elaboration", cfg.Provider)
		return nil
	}
	completion, err := provider.Complete(ctx, cfg.APIKey, cfg.Model, prompt)
	if err != nil {
		log.Printf("[Recommender] %s elaboration failed: %v", cfg.Provider, err)
		return nil
	}
	if completion.RateLimited {
		log.Printf("[Recommender] %s rate limited, skipping elaboration", cfg.Provider)
		return nil
	}
	return llm.DecodeQueries(completion.Payload)
}

// fanOut searches all queries concurrently and merges the results in query
// order, dropping duplicate recipe ids. A failed branch contributes nothing
// and does not affect its siblings.
func (r *Recommender) fanOut(ctx context.Context, queries []llm.SearchQuery, batchSize, mergeCap int) []types.Recipe {
	batches := make([][]types.Recipe, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q llm.SearchQuery) {
			defer wg.Done()
			results, err := r.upstream.Search(ctx, types.SearchParams{
				Query:        q.Query,
				Diet:         q.Diet,
				Cuisine:      q.Cuisine,
				MaxReadyTime: q.MaxTime,
				Number:       batchSize,
			})
			if err != nil {
				log.Printf("[Recommender] search %q failed: %v", q.Query, err)
				return
			}
			batches[i] = results
		}(i, q)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	merged := make([]types.Recipe, 0, mergeCap)
	for _, batch := range batches {
		for _, recipe := range batch {
			if seen[recipe.ID] {
				continue
			}
			seen[recipe.ID] = true
			merged = append(merged, recipe)
			if len(merged) >= mergeCap {
				return merged
			}
		}
	}
	return merged
}

func dropID(results []types.Recipe, id int64) []types.Recipe {
	out := make([]types.Recipe, 0, len(results))
	for _, r := range results {
		if r.ID == id {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IngredientNames extracts ingredient names from a raw upstream ingredient
// list for prompt building.
func IngredientNames(raw []byte) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, it := range items {
		if it.Name != "" {
			names = append(names, it.Name)
		}
	}
	return names
}
