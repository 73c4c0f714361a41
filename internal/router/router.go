package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/middleware"
)

// Handlers collects everything the router mounts.
type Handlers struct {
	Auth       *api.AuthHandler
	Search     *api.SearchHandler
	Recipe     *api.RecipeHandler
	Substitute *api.SubstituteHandler
	Recommend  *api.RecommendHandler
	Favorite   *api.FavoriteHandler
	Review     *api.ReviewHandler
	Shopping   *api.ShoppingHandler
	Admin      *api.AdminHandler
}

// SetupRouter configures the application routes.
func SetupRouter(h Handlers, validator middleware.TokenValidator, aiLimiter *middleware.RateLimiter, corsOrigins string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(corsOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes. Favorites and reviews register their own per-route
	// auth so GET can answer anonymously.
	h.Auth.RegisterRoutes(v1)
	h.Search.RegisterRoutes(v1)
	h.Recipe.RegisterRoutes(v1)
	h.Favorite.RegisterRoutes(v1)
	h.Review.RegisterRoutes(v1)

	// AI-backed routes, rate limited per caller.
	ai := v1.Group("")
	ai.Use(middleware.OptionalAuth(validator), aiLimiter.Middleware())
	h.Substitute.RegisterRoutes(ai)
	h.Recommend.RegisterRoutes(ai)

	// Authenticated routes.
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	h.Shopping.RegisterRoutes(protected)

	// Admin back office.
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware(validator), middleware.RequireAdmin())
	h.Admin.RegisterRoutes(admin)

	return router
}
