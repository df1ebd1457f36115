package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/psmolich79/healthy-meal/internal/models"
	"github.com/psmolich79/healthy-meal/internal/types"
)

// LLMClient is the chat-completion dependency of the generation flow.
// Implemented by LLMService; tests substitute a canned client.
type LLMClient interface {
	GenerateRecipe(ctx context.Context, query string, preferences []string, model string) (*GeneratedRecipe, *TokenUsage, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IProfileService defines the interface for profile operations
type IProfileService interface {
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, preferences []string) (*models.Profile, error)
	ScheduleDeletion(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	SetPictureURL(ctx context.Context, userID uuid.UUID, url string) (*models.Profile, error)
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	ListRecipes(ctx context.Context, userID uuid.UUID, params ListRecipesParams) ([]models.Recipe, *Pagination, error)
	GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeDetail, error)
	UpdateVisibility(ctx context.Context, userID, recipeID uuid.UUID, visible bool) (*models.Recipe, error)
	SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error
	RateRecipe(ctx context.Context, userID, recipeID uuid.UUID, value int) (*RatingResult, error)
	DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) error
}

// IGenerationService defines the interface for the AI generation flow
type IGenerationService interface {
	Generate(ctx context.Context, userID uuid.UUID, query, model string) (*models.Recipe, error)
	Regenerate(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error)
}

// IUsageService defines the interface for usage analytics
type IUsageService interface {
	GetUsage(ctx context.Context, userID uuid.UUID, period, startDate, endDate string) (*UsageSummary, error)
}
