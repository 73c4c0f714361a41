package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// ReviewService manages per-recipe reviews and keeps the denormalized rating
// aggregates on the recipe row in sync.
type ReviewService struct {
	db      *gorm.DB
	recipes *RecipeService
}

func NewReviewService(db *gorm.DB, recipes *RecipeService) *ReviewService {
	return &ReviewService{db: db, recipes: recipes}
}

// ReviewPage is the review listing for one recipe, including the caller's own
// review when they are authenticated.
type ReviewPage struct {
	Reviews   []models.Review `json:"reviews"`
	AvgRating float64         `json:"avg_rating"`
	Count     int             `json:"count"`
	Mine      *models.Review  `json:"mine,omitempty"`
}

// List returns all reviews for a recipe, newest first, with aggregates. A nil
// userID is an anonymous caller and yields no "mine" entry.
func (s *ReviewService) List(recipeID string, userID *uuid.UUID) (*ReviewPage, error) {
	var reviews []models.Review
	if err := s.db.Preload("User").
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	page := &ReviewPage{Reviews: reviews, Count: len(reviews)}
	if len(reviews) > 0 {
		var sum int
		for _, r := range reviews {
			sum += r.Rating
		}
		page.AvgRating = float64(sum) / float64(len(reviews))
	}
	if userID != nil {
		for i := range reviews {
			if reviews[i].UserID == *userID {
				page.Mine = &reviews[i]
				break
			}
		}
	}
	return page, nil
}

// Upsert creates or replaces the user's review for the recipe, making sure a
// recipe row exists first and refreshing the recipe's rating aggregates
// afterwards.
func (s *ReviewService) Upsert(ctx context.Context, userID uuid.UUID, recipeID string, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}
	if len(comment) > 1000 {
		return nil, fmt.Errorf("comment must be at most 1000 characters")
	}

	if err := s.recipes.EnsureExists(ctx, recipeID); err != nil {
		return nil, fmt.Errorf("failed to prepare recipe row: %w", err)
	}

	var review models.Review
	err := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).First(&review).Error
	switch {
	case err == nil:
		review.Rating = rating
		review.Comment = comment
		if err := s.db.Save(&review).Error; err != nil {
			return nil, fmt.Errorf("failed to update review: %w", err)
		}
	default:
		review = models.Review{
			UserID:   userID,
			RecipeID: recipeID,
			Rating:   rating,
			Comment:  comment,
		}
		if err := s.db.Create(&review).Error; err != nil {
			return nil, fmt.Errorf("failed to create review: %w", err)
		}
	}

	if err := s.refreshAggregates(recipeID); err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes a review by id and refreshes the affected recipe's
// aggregates. Used by the admin back office.
func (s *ReviewService) Delete(reviewID uuid.UUID) error {
	var review models.Review
	if err := s.db.Where("id = ?", reviewID).First(&review).Error; err != nil {
		return err
	}
	if err := s.db.Delete(&review).Error; err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	return s.refreshAggregates(review.RecipeID)
}

// Recent lists the newest reviews across all recipes with their user and
// recipe rows, for the admin back office.
func (s *ReviewService) Recent(limit int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var reviews []models.Review
	if err := s.db.Preload("User").Preload("Recipe").
		Order("created_at DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent reviews: %w", err)
	}
	return reviews, nil
}

// refreshAggregates recomputes avg_rating and rating_count on the recipe row
// from the surviving reviews.
func (s *ReviewService) refreshAggregates(recipeID string) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	if err := s.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("recipe_id = ?", recipeID).
		Scan(&agg).Error; err != nil {
		return fmt.Errorf("failed to compute rating aggregates: %w", err)
	}
	return s.db.Model(&models.Recipe{}).
		Where("id = ?", recipeID).
		Updates(map[string]interface{}{
			"avg_rating":   agg.Avg,
			"rating_count": agg.Count,
		}).Error
}
