package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// RecommendHandler serves the personalized recommendation feed.
type RecommendHandler struct {
	recommender *service.Recommender
}

func NewRecommendHandler(recommender *service.Recommender) *RecommendHandler {
	return &RecommendHandler{recommender: recommender}
}

// RegisterRoutes registers the recommendation route.
func (h *RecommendHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/recommendations", h.Recommend)
}

// Recommend elaborates the seed intent into multiple searches and returns
// the merged results. An empty q answers immediately with no results; total
// upstream failure yields a 502 with an empty result list.
func (h *RecommendHandler) Recommend(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	diet := c.Query("diet")
	cuisine := c.Query("cuisine")
	maxTime, _ := strconv.Atoi(c.DefaultQuery("maxTime", "0"))

	if q == "" {
		c.JSON(http.StatusOK, gin.H{"results": []types.Recipe{}})
		return
	}

	results, err := h.recommender.Recommend(c.Request.Context(), q, diet, cuisine, maxTime)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "recommendations are temporarily unavailable", "results": []types.Recipe{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
