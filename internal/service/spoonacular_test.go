package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/types"
)

func testSearchParams() types.SearchParams {
	return types.SearchParams{
		Query:        "pasta",
		Diet:         "vegetarian",
		Cuisine:      "italian",
		MaxReadyTime: 30,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*SpoonacularClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewSpoonacularClient(&config.Config{
		SpoonacularAPIURL:         srv.URL,
		SpoonacularAPIKey:         "primary",
		SpoonacularAPIKeyFallback: "fallback",
	})
	return client, srv
}

func TestSpoonacularSearch(t *testing.T) {
	t.Run("builds query parameters", func(t *testing.T) {
		var got map[string]string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			got = map[string]string{
				"query":                r.URL.Query().Get("query"),
				"diet":                 r.URL.Query().Get("diet"),
				"cuisine":              r.URL.Query().Get("cuisine"),
				"maxReadyTime":         r.URL.Query().Get("maxReadyTime"),
				"number":               r.URL.Query().Get("number"),
				"addRecipeInformation": r.URL.Query().Get("addRecipeInformation"),
				"apiKey":               r.URL.Query().Get("apiKey"),
			}
			_, _ = w.Write([]byte(`{"results":[{"id":1,"title":"Pasta"}]}`))
		})

		results, err := client.Search(context.Background(), testSearchParams())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "Pasta", results[0].Title)
		assert.Equal(t, "pasta", got["query"])
		assert.Equal(t, "vegetarian", got["diet"])
		assert.Equal(t, "italian", got["cuisine"])
		assert.Equal(t, "30", got["maxReadyTime"])
		assert.Equal(t, "24", got["number"])
		assert.Equal(t, "true", got["addRecipeInformation"])
		assert.Equal(t, "primary", got["apiKey"])
	})

	t.Run("retries with fallback key on quota", func(t *testing.T) {
		var keys []string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Query().Get("apiKey")
			keys = append(keys, key)
			if key == "primary" {
				w.WriteHeader(http.StatusPaymentRequired)
				return
			}
			_, _ = w.Write([]byte(`{"results":[{"id":2,"title":"Curry"}]}`))
		})

		results, err := client.Search(context.Background(), testSearchParams())
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, []string{"primary", "fallback"}, keys)
	})

	t.Run("fails when both keys are exhausted", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Search(context.Background(), testSearchParams())
		assert.Error(t, err)
	})
}

func TestSpoonacularDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/42/information", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("includeNutrition"))
		_, _ = w.Write([]byte(`{"id":42,"title":"Tacos","readyInMinutes":25}`))
	})

	recipe, err := client.Details(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(42), recipe.ID)
	assert.Equal(t, "Tacos", recipe.Title)
	assert.Equal(t, 25, recipe.ReadyInMinutes)
}

func TestSpoonacularPriceBreakdown(t *testing.T) {
	t.Run("passes the upstream document through", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/recipes/42/priceBreakdownWidget.json", r.URL.Path)
			assert.Equal(t, "primary", r.URL.Query().Get("apiKey"))
			_, _ = w.Write([]byte(`{"totalCost":512.3,"ingredients":[{"name":"cheese","price":120.5}]}`))
		})

		doc, err := client.PriceBreakdown(context.Background(), 42)
		require.NoError(t, err)
		assert.JSONEq(t, `{"totalCost":512.3,"ingredients":[{"name":"cheese","price":120.5}]}`, string(doc))
	})

	t.Run("retries with fallback key on quota", func(t *testing.T) {
		var keys []string
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			key := r.URL.Query().Get("apiKey")
			keys = append(keys, key)
			if key == "primary" {
				w.WriteHeader(http.StatusPaymentRequired)
				return
			}
			_, _ = w.Write([]byte(`{"totalCost":100}`))
		})

		_, err := client.PriceBreakdown(context.Background(), 42)
		require.NoError(t, err)
		assert.Equal(t, []string{"primary", "fallback"}, keys)
	})
}

func TestSpoonacularSimilar(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/recipes/42/similar":
			_, _ = w.Write([]byte(`[{"id":7},{"id":8}]`))
		case "/recipes/7/information":
			_, _ = w.Write([]byte(`{"id":7,"title":"Seven","image":"seven.jpg"}`))
		case "/recipes/8/information":
			_, _ = w.Write([]byte(`{"id":8,"title":"Eight","image":"eight.jpg"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	results, err := client.Similar(context.Background(), 42, 4)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEmpty(t, r.Title)
		assert.NotEmpty(t, r.Image)
	}
}
