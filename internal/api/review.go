package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/service"
)

// ReviewHandler serves recipe reviews.
type ReviewHandler struct {
	reviews   *service.ReviewService
	validator middleware.TokenValidator
}

func NewReviewHandler(reviews *service.ReviewService, validator middleware.TokenValidator) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, validator: validator}
}

// RegisterRoutes registers the review routes.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reviews", middleware.OptionalAuth(h.validator), h.List)
	router.POST("/reviews", middleware.AuthMiddleware(h.validator), h.Upsert)
}

// List returns the reviews for a recipe with aggregates and, for an
// authenticated caller, their own review.
func (h *ReviewHandler) List(c *gin.Context) {
	recipeID := c.Query("recipeId")
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId is required"})
		return
	}

	var userID *uuid.UUID
	if id, ok := currentUserID(c); ok {
		userID = &id
	}

	page, err := h.reviews.List(recipeID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// Upsert creates or replaces the caller's review and returns the refreshed
// listing.
func (h *ReviewHandler) Upsert(c *gin.Context) {
	var req struct {
		RecipeID string `json:"recipeId"`
		Rating   int    `json:"rating"`
		Comment  string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RecipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId is required"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}
	if len(req.Comment) > 1000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment must be at most 1000 characters"})
		return
	}

	userID, _ := currentUserID(c)
	if _, err := h.reviews.Upsert(c.Request.Context(), userID, req.RecipeID, req.Rating, req.Comment); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save review"})
		return
	}

	page, err := h.reviews.List(req.RecipeID, &userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, page)
}
