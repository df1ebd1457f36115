package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/psmolich79/healthy-meal/internal/models"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Rating values as stored; the API layer maps "up"/"down" onto them.
const (
	RatingUp   = 1
	RatingDown = -1
)

// ListRecipesParams are the list query options after boundary validation.
type ListRecipesParams struct {
	Page        int
	Limit       int
	VisibleOnly bool
	Sort        string
	Search      string
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	Total       int64 `json:"total"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// RecipeDetail is a recipe together with the caller's rating and saved flag.
type RecipeDetail struct {
	models.Recipe
	UserRating *string `json:"user_rating"`
	IsSaved    bool    `json:"is_saved"`
}

// RatingResult reports the stored rating and whether the caller may
// regenerate the recipe. Only a down rating unlocks regeneration.
type RatingResult struct {
	Rating        string `json:"rating"`
	CanRegenerate bool   `json:"can_regenerate"`
}

// sortColumns whitelists the sortable fields for recipe listing.
var sortColumns = map[string]string{
	"created_at":  "created_at ASC",
	"-created_at": "created_at DESC",
	"title":       "title ASC",
	"-title":      "title DESC",
}

// RecipeService handles recipe reads, visibility, saving and rating.
type RecipeService struct {
	db *gorm.DB
}

var _ IRecipeService = (*RecipeService)(nil)

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// ListRecipes returns one page of the caller's recipes.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, params ListRecipesParams) ([]models.Recipe, *Pagination, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = defaultPageSize
	}
	if params.Limit > maxPageSize {
		params.Limit = maxPageSize
	}

	query := s.db.WithContext(ctx).Model(&models.Recipe{}).Where("user_id = ?", userID)
	if params.VisibleOnly {
		query = query.Where("is_visible = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, err
	}

	if search := strings.TrimSpace(params.Search); search != "" {
		vec := GenerateEmbedding(search)
		query = query.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{vec}},
		})
	} else {
		order, ok := sortColumns[params.Sort]
		if !ok {
			order = sortColumns["-created_at"]
		}
		query = query.Order(order)
	}

	var recipes []models.Recipe
	offset := (params.Page - 1) * params.Limit
	if err := query.Limit(params.Limit).Offset(offset).Find(&recipes).Error; err != nil {
		return nil, nil, err
	}

	totalPages := int(math.Ceil(float64(total) / float64(params.Limit)))
	pagination := &Pagination{
		Page:        params.Page,
		Limit:       params.Limit,
		Total:       total,
		TotalPages:  totalPages,
		HasNext:     params.Page < totalPages,
		HasPrevious: params.Page > 1,
	}

	return recipes, pagination, nil
}

// GetRecipe returns the recipe with the caller's rating and saved status.
// The two lookups are independent reads and run concurrently.
func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeDetail, error) {
	recipe, err := s.ownedRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	type ratingResult struct {
		value *int
		err   error
	}
	type savedResult struct {
		saved bool
		err   error
	}

	ratingCh := make(chan ratingResult, 1)
	savedCh := make(chan savedResult, 1)

	go func() {
		var rating models.RecipeRating
		err := s.db.WithContext(ctx).
			Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			First(&rating).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ratingCh <- ratingResult{}
			return
		}
		if err != nil {
			ratingCh <- ratingResult{err: err}
			return
		}
		ratingCh <- ratingResult{value: &rating.Value}
	}()

	go func() {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.SavedRecipe{}).
			Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Count(&count).Error
		savedCh <- savedResult{saved: count > 0, err: err}
	}()

	rating := <-ratingCh
	saved := <-savedCh
	if rating.err != nil {
		return nil, rating.err
	}
	if saved.err != nil {
		return nil, saved.err
	}

	detail := &RecipeDetail{
		Recipe:  *recipe,
		IsSaved: saved.saved,
	}
	if rating.value != nil {
		label := ratingLabel(*rating.value)
		detail.UserRating = &label
	}

	return detail, nil
}

// UpdateVisibility sets the is_visible flag on a recipe owned by the caller.
func (s *RecipeService) UpdateVisibility(ctx context.Context, userID, recipeID uuid.UUID, visible bool) (*models.Recipe, error) {
	recipe, err := s.ownedRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	recipe.IsVisible = visible
	if err := s.db.WithContext(ctx).Model(recipe).Update("is_visible", visible).Error; err != nil {
		return nil, err
	}

	return recipe, nil
}

// SaveRecipe marks a recipe as saved. Saving twice is a no-op.
func (s *RecipeService) SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, userID, recipeID); err != nil {
		return err
	}

	saved := models.SavedRecipe{RecipeID: recipeID, UserID: userID}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&saved).Error
}

// UnsaveRecipe removes the saved marker. Unsaving a non-saved recipe is a
// no-op.
func (s *RecipeService) UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, userID, recipeID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.SavedRecipe{}).Error
}

// RateRecipe upserts the single rating row for (recipe, user). Uniqueness
// relies on the composite primary key, not application-level locking.
func (s *RecipeService) RateRecipe(ctx context.Context, userID, recipeID uuid.UUID, value int) (*RatingResult, error) {
	if value != RatingUp && value != RatingDown {
		return nil, fmt.Errorf("%w: rating must be up or down", ErrValidation)
	}

	if _, err := s.ownedRecipe(ctx, userID, recipeID); err != nil {
		return nil, err
	}

	rating := models.RecipeRating{
		RecipeID: recipeID,
		UserID:   userID,
		Value:    value,
	}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&rating).Error; err != nil {
		return nil, err
	}

	return &RatingResult{
		Rating:        ratingLabel(value),
		CanRegenerate: value == RatingDown,
	}, nil
}

// DeleteRating removes the caller's rating. Deleting a missing rating is a
// no-op.
func (s *RecipeService) DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) error {
	if _, err := s.ownedRecipe(ctx, userID, recipeID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		Delete(&models.RecipeRating{}).Error
}

// ownedRecipe loads a recipe and enforces ownership. A recipe belonging to
// another user is reported as not found, never as forbidden.
func (s *RecipeService) ownedRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", recipeID, userID).
		First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func ratingLabel(value int) string {
	if value == RatingDown {
		return "down"
	}
	return "up"
}
