package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/psmolich79/healthy-meal/internal/models"
)

const (
	// maxGenerationsPerHour caps AI generations per user in a sliding
	// one-hour window, measured by counting prior usage records.
	maxGenerationsPerHour = 10
	// maxQueryLength caps the user query embedded in the prompt.
	maxQueryLength = 1000
)

// GenerationService runs the recipe generation flow: rate limit check, LLM
// call, cost accounting and persistence.
type GenerationService struct {
	db           *gorm.DB
	llm          LLMClient
	profile      IProfileService
	defaultModel string
}

var _ IGenerationService = (*GenerationService)(nil)

func NewGenerationService(db *gorm.DB, llm LLMClient, profile IProfileService, defaultModel string) *GenerationService {
	return &GenerationService{
		db:           db,
		llm:          llm,
		profile:      profile,
		defaultModel: defaultModel,
	}
}

// Generate produces a new AI-authored recipe for the user's query.
func (s *GenerationService) Generate(ctx context.Context, userID uuid.UUID, query, model string) (*models.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query must not be empty", ErrValidation)
	}
	if len(query) > maxQueryLength {
		return nil, fmt.Errorf("%w: query exceeds %d characters", ErrValidation, maxQueryLength)
	}

	return s.generate(ctx, userID, query, model, nil)
}

// Regenerate produces a new recipe from an existing recipe's original query
// and the user's current preferences. The original recipe is untouched; the
// new row carries a back-reference to it.
func (s *GenerationService) Regenerate(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	var original models.Recipe
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&original).Error; err != nil {
		return nil, ErrNotFound
	}

	return s.generate(ctx, userID, original.Query, original.Model, &original.ID)
}

func (s *GenerationService) generate(ctx context.Context, userID uuid.UUID, query, model string, sourceID *uuid.UUID) (*models.Recipe, error) {
	count, err := s.countUsageSince(ctx, userID, time.Now().Add(-time.Hour))
	if err != nil {
		return nil, err
	}
	if count >= maxGenerationsPerHour {
		return nil, ErrRateLimitExceeded
	}

	profile, err := s.profile.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	generated, usage, err := s.llm.GenerateRecipe(ctx, query, profile.Preferences, model)
	if err != nil {
		return nil, err
	}

	content := models.RecipeContent{
		Ingredients:  generated.Ingredients,
		ShoppingList: generated.ShoppingList,
		Instructions: generated.Instructions,
	}
	content.Normalize()

	recipe := models.Recipe{
		ID:             uuid.New(),
		UserID:         userID,
		Title:          generated.Title,
		Query:          query,
		Content:        content,
		IsVisible:      true,
		Model:          s.resolvedModel(model),
		SourceRecipeID: sourceID,
		Embedding:      GenerateEmbedding(generated.Title + " " + query),
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}

	// Usage logging is best-effort: a generated recipe may exist without a
	// usage record if this insert fails.
	record := models.AIUsageRecord{
		ID:           uuid.New(),
		UserID:       userID,
		Model:        recipe.Model,
		InputTokens:  usage.InputTokens,
		OutputTokens: usage.OutputTokens,
		Cost:         CalculateCost(recipe.Model, usage.InputTokens, usage.OutputTokens),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		log.Printf("[GenerationService] Failed to log AI usage for user %s: %v", userID, err)
	}

	return &recipe, nil
}

// countUsageSince counts AI usage records for the user created at or after
// the given instant. Two concurrent requests can both pass the check, so the
// limit is approximate.
func (s *GenerationService) countUsageSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.AIUsageRecord{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (s *GenerationService) resolvedModel(model string) string {
	if model != "" {
		return model
	}
	return s.defaultModel
}
