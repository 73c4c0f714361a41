package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// SearchHandler serves recipe search against the upstream API with a local
// database fallback.
type SearchHandler struct {
	upstream service.UpstreamAPI
	recipes  *service.RecipeService
}

func NewSearchHandler(upstream service.UpstreamAPI, recipes *service.RecipeService) *SearchHandler {
	return &SearchHandler{upstream: upstream, recipes: recipes}
}

// RegisterRoutes registers the search routes.
func (h *SearchHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/search", h.Search)
	router.GET("/trending", h.Trending)
}

// Search runs an upstream search and enriches hits with local rating
// aggregates. When the upstream fails, the local recipe cache answers
// instead, marked with source "local". Both failing yields a 502.
func (h *SearchHandler) Search(c *gin.Context) {
	start := time.Now()

	q := c.Query("q")
	diet := c.Query("diet")
	cuisine := c.Query("cuisine")
	maxTime, _ := strconv.Atoi(c.DefaultQuery("maxTime", "0"))
	maxCalories, _ := strconv.Atoi(c.DefaultQuery("maxCalories", "0"))

	params := types.SearchParams{
		Query:        q,
		Diet:         diet,
		Cuisine:      cuisine,
		MaxReadyTime: maxTime,
		MaxCalories:  maxCalories,
	}

	results, err := h.upstream.Search(c.Request.Context(), params)
	if err == nil {
		h.recipes.EnrichRatings(results)
		h.logSearch(c, q, params, len(results), start, "api")
		c.JSON(http.StatusOK, gin.H{"results": results, "source": "api"})
		return
	}

	local, lerr := h.recipes.LocalSearch(q, diet, cuisine, maxTime)
	if lerr == nil && len(local) > 0 {
		h.logSearch(c, q, params, len(local), start, "local")
		c.JSON(http.StatusOK, gin.H{"results": local, "source": "local"})
		return
	}

	h.logSearch(c, q, params, 0, start, "error")
	c.JSON(http.StatusBadGateway, gin.H{"error": "search is temporarily unavailable", "results": []types.Recipe{}})
}

// Trending returns popular recipes from the upstream API.
func (h *SearchHandler) Trending(c *gin.Context) {
	number, _ := strconv.Atoi(c.DefaultQuery("number", "12"))
	results, err := h.upstream.Trending(c.Request.Context(), number, c.Query("diet"), c.Query("cuisine"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "trending is temporarily unavailable", "results": []types.Recipe{}})
		return
	}
	h.recipes.EnrichRatings(results)
	c.JSON(http.StatusOK, gin.H{"results": results, "source": "api"})
}

func (h *SearchHandler) logSearch(c *gin.Context, q string, params types.SearchParams, results int, start time.Time, source string) {
	entry := &models.SearchLog{
		Query:   q,
		Results: results,
		TookMs:  time.Since(start).Milliseconds(),
		Source:  source,
	}
	if filters, err := json.Marshal(params); err == nil {
		entry.Filters = models.JSONBRaw(filters)
	}
	if userID, ok := currentUserID(c); ok {
		id := userID
		entry.UserID = &id
	}
	h.recipes.LogSearch(entry)
}
