package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/service"
)

func reviewRouter(env *testEnv) *gin.Engine {
	recipes := service.NewRecipeService(env.db, &erroringUpstream{}, nil)
	reviews := service.NewReviewService(env.db, recipes)

	router := gin.New()
	v1 := router.Group("/api/v1")
	NewReviewHandler(reviews, env.auth).RegisterRoutes(v1)
	return router
}

func TestReviewEndpoint(t *testing.T) {
	t.Run("post then get round trip with aggregates", func(t *testing.T) {
		env := newTestEnv(t)
		router := reviewRouter(env)
		token := env.newUserToken(t, "cook@example.com", "")

		w := doJSON(router, http.MethodPost, "/api/v1/reviews", token, gin.H{
			"recipeId": "101",
			"rating":   4,
			"comment":  "good weeknight dish",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var page service.ReviewPage
		decodeBody(t, w, &page)
		assert.Equal(t, 1, page.Count)
		assert.Equal(t, 4.0, page.AvgRating)
		require.NotNil(t, page.Mine)
		assert.Equal(t, "good weeknight dish", page.Mine.Comment)

		anon := doJSON(router, http.MethodGet, "/api/v1/reviews?recipeId=101", "", nil)
		require.Equal(t, http.StatusOK, anon.Code)
		decodeBody(t, anon, &page)
		assert.Equal(t, 1, page.Count)
		assert.Nil(t, page.Mine)
	})

	t.Run("anonymous post is a 401", func(t *testing.T) {
		router := reviewRouter(newTestEnv(t))
		w := doJSON(router, http.MethodPost, "/api/v1/reviews", "", gin.H{
			"recipeId": "101", "rating": 4,
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rating out of range is a 400", func(t *testing.T) {
		env := newTestEnv(t)
		router := reviewRouter(env)
		token := env.newUserToken(t, "cook@example.com", "")

		w := doJSON(router, http.MethodPost, "/api/v1/reviews", token, gin.H{
			"recipeId": "101", "rating": 6,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("get without recipeId is a 400", func(t *testing.T) {
		router := reviewRouter(newTestEnv(t))
		w := doJSON(router, http.MethodGet, "/api/v1/reviews", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
