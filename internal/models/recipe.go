package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// RecipeContent is the structured body of a generated recipe, stored as a
// single JSONB column. All three lists are always present, possibly empty.
type RecipeContent struct {
	Ingredients  []string `json:"ingredients"`
	ShoppingList []string `json:"shopping_list"`
	Instructions []string `json:"instructions"`
}

// Normalize replaces nil slices with empty ones so the JSON shape is stable.
func (c *RecipeContent) Normalize() {
	if c.Ingredients == nil {
		c.Ingredients = []string{}
	}
	if c.ShoppingList == nil {
		c.ShoppingList = []string{}
	}
	if c.Instructions == nil {
		c.Instructions = []string{}
	}
}

// Value implements the driver.Valuer interface
func (c RecipeContent) Value() (driver.Value, error) {
	c.Normalize()
	return json.Marshal(c)
}

// Scan implements the sql.Scanner interface
func (c *RecipeContent) Scan(value interface{}) error {
	if value == nil {
		*c = RecipeContent{}
		c.Normalize()
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for RecipeContent: %T", value)
	}

	if err := json.Unmarshal(bytes, c); err != nil {
		return err
	}
	c.Normalize()
	return nil
}

type Recipe struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Title          string          `gorm:"size:255;not null" json:"title"`
	Query          string          `gorm:"size:1000;not null" json:"query"`
	Content        RecipeContent   `gorm:"type:jsonb;not null;default:'{}'" json:"content"`
	IsVisible      bool            `gorm:"not null;default:true" json:"is_visible"`
	Model          string          `gorm:"size:64" json:"model,omitempty"`
	SourceRecipeID *uuid.UUID      `gorm:"type:uuid" json:"source_recipe_id,omitempty"`
	Embedding      pgvector.Vector `gorm:"type:vector(3)" json:"-"`
}

// RecipeRating holds at most one up/down vote per (recipe, user) pair.
// Value is always +1 or -1, enforced by the check constraint.
type RecipeRating struct {
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Value     int       `gorm:"not null;check:value IN (-1, 1)" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SavedRecipe is a join record; its existence means the user saved the recipe.
type SavedRecipe struct {
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
