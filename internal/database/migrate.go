package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/psmolich79/healthy-meal/internal/models"
)

// RunMigrations brings the schema up to date. The vector extension must be
// installed before the recipes table is created.
func RunMigrations(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector;").Error; err != nil {
		return fmt.Errorf("failed to install pgvector extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Recipe{},
		&models.RecipeRating{},
		&models.SavedRecipe{},
		&models.AIUsageRecord{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	return nil
}
