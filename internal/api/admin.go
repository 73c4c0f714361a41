package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
)

// AdminHandler serves the back office: user management, recipe curation and
// review moderation. Every route requires the ADMIN role.
type AdminHandler struct {
	admin   *service.AdminService
	reviews *service.ReviewService
	images  *service.ImageService
}

func NewAdminHandler(admin *service.AdminService, reviews *service.ReviewService, images *service.ImageService) *AdminHandler {
	return &AdminHandler{admin: admin, reviews: reviews, images: images}
}

// RegisterRoutes registers the admin routes on an admin-only group.
func (h *AdminHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/users", h.ListUsers)
	router.PATCH("/users/:id/role", h.SetUserRole)
	router.DELETE("/users/:id", h.DeleteUser)

	router.GET("/recipes", h.ListRecipes)
	router.POST("/recipes", h.CreateRecipe)
	router.PATCH("/recipes/:id", h.UpdateRecipe)
	router.DELETE("/recipes/:id", h.DeleteRecipe)
	router.POST("/recipes/:id/image", h.UploadRecipeImage)

	router.GET("/reviews", h.ListReviews)
	router.DELETE("/reviews/:id", h.DeleteReview)
}

// ListUsers returns all accounts.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SetUserRole changes an account's role.
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role is required"})
		return
	}

	user, err := h.admin.SetUserRole(userID, req.Role)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account and everything it owns.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}
	if err := h.admin.DeleteUser(userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListRecipes returns a filtered page of cached recipes.
func (h *AdminHandler) ListRecipes(c *gin.Context) {
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	take, _ := strconv.Atoi(c.DefaultQuery("take", "50"))

	page, err := h.admin.ListRecipes(c.Query("q"), skip, take)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list recipes"})
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateRecipe creates a curated recipe, updating in place when the
// spoonacular id is already cached.
func (h *AdminHandler) CreateRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe body"})
		return
	}

	saved, err := h.admin.SaveRecipe(&recipe)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, saved)
}

// UpdateRecipe patches fields on a cached recipe.
func (h *AdminHandler) UpdateRecipe(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	recipe, err := h.admin.UpdateRecipe(c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes a cached recipe and its dependents.
func (h *AdminHandler) DeleteRecipe(c *gin.Context) {
	if err := h.admin.DeleteRecipe(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadRecipeImage stores an uploaded image in S3 and sets it on the recipe.
func (h *AdminHandler) UploadRecipeImage(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, 10<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), data, header.Header.Get("Content-Type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.admin.UpdateRecipe(c.Param("id"), map[string]interface{}{"image": url})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// ListReviews returns the newest reviews across all recipes.
func (h *AdminHandler) ListReviews(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	reviews, err := h.reviews.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reviews"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// DeleteReview removes a review by id.
func (h *AdminHandler) DeleteReview(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid review id"})
		return
	}
	if err := h.reviews.Delete(reviewID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "review not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
