package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// AdminService backs the back-office endpoints: user management, recipe
// curation and review moderation helpers.
type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// ListUsers returns all users, newest first.
func (s *AdminService) ListUsers() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// SetUserRole changes a user's role.
func (s *AdminService) SetUserRole(userID uuid.UUID, role string) (*models.User, error) {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("invalid role %q", role)
	}
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ErrNotFound
	}
	if err := s.db.Model(&user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = role
	return &user, nil
}

// DeleteUser removes a user and all rows that reference them.
func (s *AdminService) DeleteUser(userID uuid.UUID) error {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return ErrNotFound
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		var listIDs []uuid.UUID
		if err := tx.Model(&models.ShoppingList{}).Where("user_id = ?", userID).Pluck("id", &listIDs).Error; err != nil {
			return err
		}
		if len(listIDs) > 0 {
			if err := tx.Where("list_id IN ?", listIDs).Delete(&models.ShoppingItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", listIDs).Delete(&models.ShoppingList{}).Error; err != nil {
				return err
			}
		}
		return tx.Unscoped().Delete(&user).Error
	})
}

// RecipePage is one page of the admin recipe listing.
type RecipePage struct {
	Recipes []models.Recipe `json:"recipes"`
	Total   int64           `json:"total"`
	Skip    int             `json:"skip"`
	Take    int             `json:"take"`
}

// ListRecipes returns a filtered page of cached recipes. take is clamped to
// at most 100.
func (s *AdminService) ListRecipes(q string, skip, take int) (*RecipePage, error) {
	if take <= 0 || take > 100 {
		take = 50
	}
	if skip < 0 {
		skip = 0
	}

	query := s.db.Model(&models.Recipe{})
	if q != "" {
		query = query.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(q)+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count recipes: %w", err)
	}

	var recipes []models.Recipe
	if err := query.Order("updated_at DESC").Offset(skip).Limit(take).Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return &RecipePage{Recipes: recipes, Total: total, Skip: skip, Take: take}, nil
}

// SaveRecipe creates a curated recipe row, or updates the existing row when
// one with the same spoonacular id is already cached.
func (s *AdminService) SaveRecipe(recipe *models.Recipe) (*models.Recipe, error) {
	if recipe.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if recipe.ID == "" {
		if recipe.SpoonacularID != nil {
			recipe.ID = strconv.FormatInt(*recipe.SpoonacularID, 10)
		} else {
			recipe.ID = uuid.New().String()
		}
	}
	recipe.Embedding = GenerateEmbedding(recipe.Title + " " + recipe.Summary)
	if recipe.Cuisines == nil {
		recipe.Cuisines = models.JSONBStringArray{}
	}
	if recipe.Diets == nil {
		recipe.Diets = models.JSONBStringArray{}
	}

	if recipe.SpoonacularID != nil {
		var existing models.Recipe
		if err := s.db.Where("spoonacular_id = ?", *recipe.SpoonacularID).First(&existing).Error; err == nil {
			recipe.ID = existing.ID
			if err := s.db.Model(&existing).Updates(recipe).Error; err != nil {
				return nil, fmt.Errorf("failed to update recipe: %w", err)
			}
			return recipe, nil
		}
	}

	if err := s.db.Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// UpdateRecipe patches fields on a cached recipe row.
func (s *AdminService) UpdateRecipe(recipeID string, fields map[string]interface{}) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		return nil, ErrNotFound
	}
	if title, ok := fields["title"].(string); ok && title != "" {
		fields["embedding"] = GenerateEmbedding(title + " " + recipe.Summary)
	}
	if err := s.db.Model(&recipe).Updates(fields).Error; err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}
	if err := s.db.Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a cached recipe and its dependent rows.
func (s *AdminService) DeleteRecipe(recipeID string) error {
	var recipe models.Recipe
	if err := s.db.Where("id = ?", recipeID).First(&recipe).Error; err != nil {
		return ErrNotFound
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}
