package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

const recipeCacheTTL = 24 * time.Hour

// RecipeService maintains the local recipe cache: rows mirrored from the
// upstream API plus admin-created recipes. A redis client is optional; when
// nil, only the database cache is used.
type RecipeService struct {
	db       *gorm.DB
	upstream UpstreamAPI
	redis    *redis.Client
}

func NewRecipeService(db *gorm.DB, upstream UpstreamAPI, redisClient *redis.Client) *RecipeService {
	return &RecipeService{db: db, upstream: upstream, redis: redisClient}
}

// GetByID returns the recipe from redis or the local database, fetching and
// persisting it from the upstream API on a miss.
func (s *RecipeService) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	if cached := s.cacheGet(ctx, id); cached != nil {
		return cached, nil
	}

	var recipe models.Recipe
	query := s.db.Where("id = ?", id)
	if num, err := strconv.ParseInt(id, 10, 64); err == nil {
		query = s.db.Where("id = ? OR spoonacular_id = ?", id, num)
	}
	if err := query.First(&recipe).Error; err == nil {
		s.cacheSet(ctx, id, &recipe)
		return &recipe, nil
	}

	num, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("recipe %s not found", id)
	}

	d, err := s.upstream.Details(ctx, num)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe %d: %w", num, err)
	}

	recipe = recipeFromUpstream(d)
	if err := s.db.Create(&recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to persist recipe %d: %w", num, err)
	}
	s.cacheSet(ctx, id, &recipe)
	return &recipe, nil
}

// EnsureExists guarantees a recipe row is present for recipeID, hydrating it
// from the upstream when possible and creating a stub row otherwise. Used
// before attaching reviews, which carry a foreign key to recipes.
func (s *RecipeService) EnsureExists(ctx context.Context, recipeID string) error {
	var existing models.Recipe
	if err := s.db.Where("id = ?", recipeID).First(&existing).Error; err == nil {
		return nil
	}

	if num, err := strconv.ParseInt(recipeID, 10, 64); err == nil {
		if d, err := s.upstream.Details(ctx, num); err == nil {
			recipe := recipeFromUpstream(d)
			recipe.ID = recipeID
			if err := s.db.Create(&recipe).Error; err == nil {
				return nil
			}
		}
	}

	stub := models.Recipe{
		ID:       recipeID,
		Title:    "Recipe " + recipeID,
		Cuisines: models.JSONBStringArray{},
		Diets:    models.JSONBStringArray{},
	}
	return s.db.Create(&stub).Error
}

// Price returns the upstream cost breakdown for a recipe. Admin-created
// recipes without an upstream id have no pricing; that is ErrNotFound.
func (s *RecipeService) Price(ctx context.Context, id string) (json.RawMessage, error) {
	num, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		var recipe models.Recipe
		if err := s.db.Select("id", "spoonacular_id").Where("id = ?", id).First(&recipe).Error; err != nil {
			return nil, ErrNotFound
		}
		if recipe.SpoonacularID == nil {
			return nil, ErrNotFound
		}
		num = *recipe.SpoonacularID
	}
	return s.upstream.PriceBreakdown(ctx, num)
}

// UpsertFromPayload stores or refreshes a recipe row from a client-supplied
// snapshot (the favorites flow sends the card it rendered), so local pages
// can render without another upstream call.
func (s *RecipeService) UpsertFromPayload(recipeID string, r *types.Recipe) error {
	recipe := recipeFromUpstream(r)
	recipe.ID = recipeID
	if recipe.SpoonacularID == nil {
		if num, err := strconv.ParseInt(recipeID, 10, 64); err == nil {
			recipe.SpoonacularID = &num
		}
	}
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"title", "image", "source_url", "spoonacular_id",
			"ready_in_minutes", "servings", "cuisines", "diets", "updated_at",
		}),
	}).Create(&recipe).Error
}

// EnrichRatings fills local rating aggregates into upstream search results.
// Failures are ignored; ratings are garnish, not the meal.
func (s *RecipeService) EnrichRatings(results []types.Recipe) {
	if len(results) == 0 {
		return
	}
	ids := make([]string, 0, len(results))
	for _, r := range results {
		ids = append(ids, strconv.FormatInt(r.ID, 10))
	}

	var rows []models.Recipe
	if err := s.db.Select("id", "avg_rating", "rating_count").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return
	}
	byID := make(map[string]models.Recipe, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	for i := range results {
		if row, ok := byID[strconv.FormatInt(results[i].ID, 10)]; ok && row.RatingCount > 0 {
			avg, count := row.AvgRating, row.RatingCount
			results[i].AvgRating = &avg
			results[i].RatingCount = &count
		}
	}
}

// LocalSearch queries the local recipe cache, used when the upstream is
// unavailable. On postgres the results are ordered by embedding distance to
// the query; elsewhere by recency.
func (s *RecipeService) LocalSearch(q, diet, cuisine string, maxTime int) ([]models.Recipe, error) {
	query := s.db.Limit(24)

	like := "%" + strings.ToLower(q) + "%"
	query = query.Where("LOWER(title) LIKE ?", like)
	if diet != "" {
		query = query.Where("LOWER(diets) LIKE ?", "%"+strings.ToLower(diet)+"%")
	}
	if cuisine != "" {
		query = query.Where("LOWER(cuisines) LIKE ?", "%"+strings.ToLower(cuisine)+"%")
	}
	if maxTime > 0 {
		query = query.Where("ready_in_minutes <= ?", maxTime)
	}

	if s.db.Dialector.Name() == "postgres" {
		vec := GenerateEmbedding(q)
		query = query.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
		})
	} else {
		query = query.Order("updated_at DESC")
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// LogSearch records a search request, best effort.
func (s *RecipeService) LogSearch(entry *models.SearchLog) {
	if err := s.db.Create(entry).Error; err != nil {
		log.Printf("[RecipeService] failed to write search log: %v", err)
	}
}

func (s *RecipeService) cacheGet(ctx context.Context, id string) *models.Recipe {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(ctx, recipeCacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var recipe models.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil
	}
	return &recipe
}

func (s *RecipeService) cacheSet(ctx context.Context, id string, recipe *models.Recipe) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(recipe)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, recipeCacheKey(id), data, recipeCacheTTL).Err(); err != nil {
		log.Printf("[RecipeService] failed to cache recipe %s: %v", id, err)
	}
}

func recipeCacheKey(id string) string {
	return "recipe:detail:" + id
}

// recipeFromUpstream maps an upstream recipe into a local cache row.
func recipeFromUpstream(d *types.Recipe) models.Recipe {
	recipe := models.Recipe{
		ID:        strconv.FormatInt(d.ID, 10),
		Title:     d.Title,
		Summary:   d.Summary,
		Image:     d.Image,
		SourceURL: d.SourceURL,
		Cuisines:  models.JSONBStringArray(d.Cuisines),
		Diets:     models.JSONBStringArray(d.Diets),
		Embedding: GenerateEmbedding(d.Title + " " + d.Summary),
	}
	if d.ID != 0 {
		id := d.ID
		recipe.SpoonacularID = &id
	}
	if d.ReadyInMinutes > 0 {
		v := d.ReadyInMinutes
		recipe.ReadyInMinutes = &v
	}
	if d.Servings > 0 {
		v := d.Servings
		recipe.Servings = &v
	}
	if recipe.Cuisines == nil {
		recipe.Cuisines = models.JSONBStringArray{}
	}
	if recipe.Diets == nil {
		recipe.Diets = models.JSONBStringArray{}
	}
	if len(d.ExtendedIngredients) > 0 {
		recipe.Ingredients = models.JSONBRaw(d.ExtendedIngredients)
	}
	if len(d.AnalyzedInstructions) > 0 {
		recipe.Steps = models.JSONBRaw(d.AnalyzedInstructions)
	}
	if len(d.Nutrition) > 0 {
		recipe.Nutrition = models.JSONBRaw(d.Nutrition)
	}
	return recipe
}
