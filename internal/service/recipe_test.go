package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/testhelpers"
	"github.com/plateful/backend/internal/types"
)

func TestRecipeGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("serves from local cache without upstream", func(t *testing.T) {
		db := testhelpers.NewTestDB(t)
		seed := models.Recipe{ID: "42", Title: "Cached Tacos", Cuisines: models.JSONBStringArray{}, Diets: models.JSONBStringArray{}}
		require.NoError(t, db.Create(&seed).Error)

		svc := NewRecipeService(db, &fakeUpstream{err: errors.New("must not be called")}, nil)
		recipe, err := svc.GetByID(ctx, "42")
		require.NoError(t, err)
		assert.Equal(t, "Cached Tacos", recipe.Title)
	})

	t.Run("fetches and persists on miss", func(t *testing.T) {
		db := testhelpers.NewTestDB(t)
		svc := NewRecipeService(db, &hydratingUpstream{}, nil)

		recipe, err := svc.GetByID(ctx, "77")
		require.NoError(t, err)
		assert.Equal(t, "Hydrated 77", recipe.Title)

		var stored models.Recipe
		require.NoError(t, db.Where("id = ?", "77").First(&stored).Error)
		require.NotNil(t, stored.SpoonacularID)
		assert.Equal(t, int64(77), *stored.SpoonacularID)
	})

	t.Run("miss with upstream down fails", func(t *testing.T) {
		db := testhelpers.NewTestDB(t)
		svc := NewRecipeService(db, &fakeUpstream{err: errors.New("down")}, nil)
		_, err := svc.GetByID(ctx, "99")
		assert.Error(t, err)
	})

	t.Run("non numeric unknown id fails without upstream call", func(t *testing.T) {
		db := testhelpers.NewTestDB(t)
		svc := NewRecipeService(db, &fakeUpstream{err: errors.New("must not be called")}, nil)
		_, err := svc.GetByID(ctx, "not-a-number")
		assert.Error(t, err)
	})
}

func TestUpsertFromPayload(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db, &fakeUpstream{}, nil)

	snapshot := &types.Recipe{ID: 42, Title: "Snapshot Pizza", Image: "pizza.jpg"}
	require.NoError(t, svc.UpsertFromPayload("42", snapshot))

	snapshot.Title = "Snapshot Pizza v2"
	require.NoError(t, svc.UpsertFromPayload("42", snapshot))

	var stored models.Recipe
	require.NoError(t, db.Where("id = ?", "42").First(&stored).Error)
	assert.Equal(t, "Snapshot Pizza v2", stored.Title)

	var count int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnrichRatings(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db, &fakeUpstream{}, nil)

	rated := models.Recipe{ID: "42", Title: "Rated", AvgRating: 4.5, RatingCount: 12,
		Cuisines: models.JSONBStringArray{}, Diets: models.JSONBStringArray{}}
	require.NoError(t, db.Create(&rated).Error)

	results := []types.Recipe{{ID: 42, Title: "Rated"}, {ID: 7, Title: "Unrated"}}
	svc.EnrichRatings(results)

	require.NotNil(t, results[0].AvgRating)
	assert.Equal(t, 4.5, *results[0].AvgRating)
	require.NotNil(t, results[0].RatingCount)
	assert.Equal(t, 12, *results[0].RatingCount)
	assert.Nil(t, results[1].AvgRating)
}

func TestLocalSearch(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	svc := NewRecipeService(db, &fakeUpstream{}, nil)

	mins := 20
	rows := []models.Recipe{
		{ID: "1", Title: "Quick Veggie Pasta", Diets: models.JSONBStringArray{"vegetarian"}, Cuisines: models.JSONBStringArray{"italian"}, ReadyInMinutes: &mins},
		{ID: "2", Title: "Slow Beef Stew", Diets: models.JSONBStringArray{}, Cuisines: models.JSONBStringArray{}},
		{ID: "3", Title: "Pasta Carbonara", Diets: models.JSONBStringArray{}, Cuisines: models.JSONBStringArray{"italian"}},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	t.Run("title match is case insensitive", func(t *testing.T) {
		results, err := svc.LocalSearch("PASTA", "", "", 0)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("diet filter narrows results", func(t *testing.T) {
		results, err := svc.LocalSearch("pasta", "vegetarian", "", 0)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "1", results[0].ID)
	})

	t.Run("max time filter narrows results", func(t *testing.T) {
		results, err := svc.LocalSearch("pasta", "", "", 30)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "1", results[0].ID)
	})

	t.Run("no matches is empty not error", func(t *testing.T) {
		results, err := svc.LocalSearch("sushi", "", "", 0)
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}
