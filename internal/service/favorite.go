package service

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// FavoriteService manages per-user recipe favorites.
type FavoriteService struct {
	db      *gorm.DB
	recipes *RecipeService
}

func NewFavoriteService(db *gorm.DB, recipes *RecipeService) *FavoriteService {
	return &FavoriteService{db: db, recipes: recipes}
}

// IsFavorited reports whether the user has favorited the recipe.
func (s *FavoriteService) IsFavorited(userID uuid.UUID, recipeID string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

// List returns the user's favorites newest first, with the cached recipe row
// attached where one exists.
func (s *FavoriteService) List(userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.Preload("Recipe").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}

// Toggle flips the favorite state for the recipe and reports the new state.
// When the client supplies a recipe snapshot it is upserted into the local
// cache so favorite listings can render without an upstream call.
func (s *FavoriteService) Toggle(userID uuid.UUID, recipeID string, snapshot *types.Recipe) (bool, error) {
	if snapshot != nil {
		if err := s.recipes.UpsertFromPayload(recipeID, snapshot); err != nil {
			return false, fmt.Errorf("failed to cache recipe: %w", err)
		}
	}

	var existing models.Favorite
	err := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&existing).Error
	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}

	favorite := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&favorite).Error; err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}
