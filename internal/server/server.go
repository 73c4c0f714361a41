package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/llm"
	"github.com/plateful/backend/internal/middleware"
	"github.com/plateful/backend/internal/router"
	"github.com/plateful/backend/internal/service"
)

// Server wires services, handlers and routes into one HTTP server.
type Server struct {
	cfg  *config.Config
	http *http.Server
}

// New builds the full application. redisClient and s3cfg may be nil; caching
// and image upload degrade gracefully without them.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, s3cfg *config.S3Config) *Server {
	upstream := service.NewSpoonacularClient(cfg)
	resolver := llm.NewResolver()
	providers := llm.NewRegistry(nil)

	authService := service.NewAuthService(db, cfg.JWTSecret, cfg.AdminInvite)
	recipeService := service.NewRecipeService(db, upstream, redisClient)
	recommender := service.NewRecommender(resolver, providers, upstream)
	substituter := llm.NewSubstituter(resolver, providers)
	reviewService := service.NewReviewService(db, recipeService)
	favoriteService := service.NewFavoriteService(db, recipeService)
	shoppingService := service.NewShoppingService(db)
	adminService := service.NewAdminService(db)

	var imageService *service.ImageService
	if s3cfg != nil {
		imageService = service.NewImageService(s3cfg)
	}

	aiLimiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
		Window:    time.Minute,
		Limit:     20,
		KeyPrefix: "ratelimit:ai",
	})

	handlers := router.Handlers{
		Auth:       api.NewAuthHandler(authService),
		Search:     api.NewSearchHandler(upstream, recipeService),
		Recipe:     api.NewRecipeHandler(recipeService, recommender),
		Substitute: api.NewSubstituteHandler(substituter),
		Recommend:  api.NewRecommendHandler(recommender),
		Favorite:   api.NewFavoriteHandler(favoriteService, authService),
		Review:     api.NewReviewHandler(reviewService, authService),
		Shopping:   api.NewShoppingHandler(shoppingService),
		Admin:      api.NewAdminHandler(adminService, reviewService, imageService),
	}

	engine := router.SetupRouter(handlers, authService, aiLimiter, cfg.CORSOrigins)

	return &Server{
		cfg: cfg,
		http: &http.Server{
			Addr:              cfg.ServerHost + ":" + cfg.ServerPort,
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start begins serving. It blocks until the listener fails or Stop is
// called.
func (s *Server) Start() error {
	log.Printf("Server listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
