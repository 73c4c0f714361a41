package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// FavoriteHandler serves favorite listing and toggling.
type FavoriteHandler struct {
	favorites *service.FavoriteService
	validator middleware.TokenValidator
}

func NewFavoriteHandler(favorites *service.FavoriteService, validator middleware.TokenValidator) *FavoriteHandler {
	return &FavoriteHandler{favorites: favorites, validator: validator}
}

// RegisterRoutes registers the favorite routes. GET works for anonymous
// callers; POST requires auth.
func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/favorites", middleware.OptionalAuth(h.validator), h.Get)
	router.POST("/favorites", middleware.AuthMiddleware(h.validator), h.Toggle)
}

// Get returns either the favorited state of one recipe (?recipeId=) or the
// caller's full favorite list. Anonymous callers get an empty answer rather
// than an error so pages can render before login.
func (h *FavoriteHandler) Get(c *gin.Context) {
	recipeID := c.Query("recipeId")
	userID, authed := currentUserID(c)

	if recipeID != "" {
		if !authed {
			c.JSON(http.StatusOK, gin.H{"favorited": false})
			return
		}
		favorited, err := h.favorites.IsFavorited(userID, recipeID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check favorite"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"favorited": favorited})
		return
	}

	if !authed {
		c.JSON(http.StatusOK, gin.H{"favorites": []models.Favorite{}})
		return
	}
	favorites, err := h.favorites.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// Toggle flips the favorite state for a recipe, caching the supplied recipe
// snapshot locally.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	var req struct {
		RecipeID string        `json:"recipeId"`
		Recipe   *types.Recipe `json:"recipe"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RecipeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId is required"})
		return
	}

	userID, _ := currentUserID(c)
	favorited, err := h.favorites.Toggle(userID, req.RecipeID, req.Recipe)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorited": favorited})
}
