package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

// RecipeHandler serves recipe details and related recipes.
type RecipeHandler struct {
	recipes     *service.RecipeService
	recommender *service.Recommender
}

func NewRecipeHandler(recipes *service.RecipeService, recommender *service.Recommender) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, recommender: recommender}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/:id/related", h.GetRelated)
		recipes.GET("/:id/price", h.GetPrice)
	}
}

// GetRecipe returns one recipe, from cache when possible.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// GetPrice returns the upstream per-ingredient cost breakdown.
func (h *RecipeHandler) GetPrice(c *gin.Context) {
	price, err := h.recipes.Price(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pricing for this recipe"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "pricing is temporarily unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json", price)
}

// GetRelated returns recipes similar to the given one.
func (h *RecipeHandler) GetRelated(c *gin.Context) {
	recipe, err := h.recipes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found", "results": []types.Recipe{}})
		return
	}

	base := &types.Recipe{
		Title:    recipe.Title,
		Cuisines: recipe.Cuisines,
		Diets:    recipe.Diets,
	}
	if recipe.SpoonacularID != nil {
		base.ID = *recipe.SpoonacularID
	}
	ingredients := service.IngredientNames(recipe.Ingredients)

	results, err := h.recommender.Related(c.Request.Context(), base, ingredients)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "related recipes are temporarily unavailable", "results": []types.Recipe{}})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}
