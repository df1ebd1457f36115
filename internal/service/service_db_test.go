package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/psmolich79/healthy-meal/internal/models"
	"github.com/psmolich79/healthy-meal/internal/testdb"
)

// openTestDB starts a throwaway postgres container for a test function.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	td := testdb.SetupTestDB(t)
	t.Cleanup(func() { _ = td.Close() })
	return td.DB
}

func createTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Email:        uuid.New().String() + "@example.com",
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}

func createTestRecipe(t *testing.T, db *gorm.DB, userID uuid.UUID, title string) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		Query:     "query for " + title,
		Content:   models.RecipeContent{Ingredients: []string{}, ShoppingList: []string{}, Instructions: []string{}},
		IsVisible: true,
		Model:     "gpt-4o-mini",
		Embedding: GenerateEmbedding(title),
	}
	require.NoError(t, db.Create(&recipe).Error)
	return &recipe
}
