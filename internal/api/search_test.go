package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

func searchRouter(env *testEnv, upstream service.UpstreamAPI) *gin.Engine {
	recipes := service.NewRecipeService(env.db, upstream, nil)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewSearchHandler(upstream, recipes).RegisterRoutes(v1)
	return router
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("upstream results are enriched with local ratings", func(t *testing.T) {
		env := newTestEnv(t)
		rated := models.Recipe{ID: "42", Title: "Rated", AvgRating: 4.5, RatingCount: 3,
			Cuisines: models.JSONBStringArray{}, Diets: models.JSONBStringArray{}}
		require.NoError(t, env.db.Create(&rated).Error)

		router := searchRouter(env, &staticUpstream{results: []types.Recipe{{ID: 42, Title: "Rated"}, {ID: 7, Title: "Other"}}})
		w := doJSON(router, http.MethodGet, "/api/v1/search?q=pasta", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Results []types.Recipe `json:"results"`
			Source  string         `json:"source"`
		}
		decodeBody(t, w, &resp)
		assert.Equal(t, "api", resp.Source)
		require.Len(t, resp.Results, 2)
		require.NotNil(t, resp.Results[0].AvgRating)
		assert.Equal(t, 4.5, *resp.Results[0].AvgRating)
		assert.Nil(t, resp.Results[1].AvgRating)
	})

	t.Run("upstream failure falls back to local cache", func(t *testing.T) {
		env := newTestEnv(t)
		cached := models.Recipe{ID: "1", Title: "Local Pasta",
			Cuisines: models.JSONBStringArray{}, Diets: models.JSONBStringArray{}}
		require.NoError(t, env.db.Create(&cached).Error)

		router := searchRouter(env, &erroringUpstream{})
		w := doJSON(router, http.MethodGet, "/api/v1/search?q=pasta", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Results []models.Recipe `json:"results"`
			Source  string          `json:"source"`
		}
		decodeBody(t, w, &resp)
		assert.Equal(t, "local", resp.Source)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "Local Pasta", resp.Results[0].Title)
	})

	t.Run("both paths failing is a 502 with empty results", func(t *testing.T) {
		env := newTestEnv(t)
		router := searchRouter(env, &erroringUpstream{})

		w := doJSON(router, http.MethodGet, "/api/v1/search?q=nothing", "", nil)
		require.Equal(t, http.StatusBadGateway, w.Code)

		var resp struct {
			Error   string         `json:"error"`
			Results []types.Recipe `json:"results"`
		}
		decodeBody(t, w, &resp)
		assert.NotEmpty(t, resp.Error)
		assert.NotNil(t, resp.Results)
		assert.Empty(t, resp.Results)
	})

	t.Run("searches are logged", func(t *testing.T) {
		env := newTestEnv(t)
		router := searchRouter(env, &staticUpstream{results: []types.Recipe{{ID: 1, Title: "Hit"}}})

		w := doJSON(router, http.MethodGet, "/api/v1/search?q=pasta&diet=vegan", "", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var logs []models.SearchLog
		require.NoError(t, env.db.Find(&logs).Error)
		require.Len(t, logs, 1)
		assert.Equal(t, "pasta", logs[0].Query)
		assert.Equal(t, 1, logs[0].Results)
		assert.Equal(t, "api", logs[0].Source)
	})
}
