package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/psmolich79/healthy-meal/internal/api"
	"github.com/psmolich79/healthy-meal/internal/models"
	"github.com/psmolich79/healthy-meal/internal/router"
	"github.com/psmolich79/healthy-meal/internal/service"
	"github.com/psmolich79/healthy-meal/internal/types"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// stubAuthService accepts the token "good-token" and rejects everything else.
type stubAuthService struct {
	registerErr error
	loginErr    error
}

func (s *stubAuthService) Register(ctx context.Context, email, password string) (string, error) {
	if s.registerErr != nil {
		return "", s.registerErr
	}
	return "good-token", nil
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return "good-token", nil
}

func (s *stubAuthService) ValidateToken(token string) (*types.TokenClaims, error) {
	if token != "good-token" {
		return nil, service.ErrInvalidCredentials
	}
	return &types.TokenClaims{UserID: testUserID}, nil
}

type stubProfileService struct {
	profile *models.Profile
	err     error
}

func (s *stubProfileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.profile, s.err
}

func (s *stubProfileService) UpdatePreferences(ctx context.Context, userID uuid.UUID, preferences []string) (*models.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.profile.Preferences = preferences
	return s.profile, nil
}

func (s *stubProfileService) ScheduleDeletion(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.profile.Status = models.ProfileStatusPendingDeletion
	return s.profile, nil
}

func (s *stubProfileService) SetPictureURL(ctx context.Context, userID uuid.UUID, url string) (*models.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.profile.PictureURL = url
	return s.profile, nil
}

type stubRecipeService struct {
	recipe *models.Recipe
	detail *service.RecipeDetail
	rating *service.RatingResult
	err    error
}

func (s *stubRecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, params service.ListRecipesParams) ([]models.Recipe, *service.Pagination, error) {
	if s.err != nil {
		return nil, nil, s.err
	}
	return []models.Recipe{*s.recipe}, &service.Pagination{Page: 1, Limit: 20, Total: 1, TotalPages: 1}, nil
}

func (s *stubRecipeService) GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*service.RecipeDetail, error) {
	return s.detail, s.err
}

func (s *stubRecipeService) UpdateVisibility(ctx context.Context, userID, recipeID uuid.UUID, visible bool) (*models.Recipe, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.recipe.IsVisible = visible
	return s.recipe, nil
}

func (s *stubRecipeService) SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.err
}

func (s *stubRecipeService) UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.err
}

func (s *stubRecipeService) RateRecipe(ctx context.Context, userID, recipeID uuid.UUID, value int) (*service.RatingResult, error) {
	return s.rating, s.err
}

func (s *stubRecipeService) DeleteRating(ctx context.Context, userID, recipeID uuid.UUID) error {
	return s.err
}

type stubGenerationService struct {
	recipe *models.Recipe
	err    error
}

func (s *stubGenerationService) Generate(ctx context.Context, userID uuid.UUID, query, model string) (*models.Recipe, error) {
	return s.recipe, s.err
}

func (s *stubGenerationService) Regenerate(ctx context.Context, userID, recipeID uuid.UUID) (*models.Recipe, error) {
	return s.recipe, s.err
}

type stubUsageService struct {
	summary *service.UsageSummary
	err     error
}

func (s *stubUsageService) GetUsage(ctx context.Context, userID uuid.UUID, period, startDate, endDate string) (*service.UsageSummary, error) {
	return s.summary, s.err
}

type fixtures struct {
	auth       *stubAuthService
	profile    *stubProfileService
	recipe     *stubRecipeService
	generation *stubGenerationService
	usage      *stubUsageService
}

func newFixtures() *fixtures {
	recipe := &models.Recipe{
		ID:        uuid.New(),
		UserID:    testUserID,
		Title:     "Test Recipe",
		Query:     "test query",
		IsVisible: true,
	}
	return &fixtures{
		auth:       &stubAuthService{},
		profile:    &stubProfileService{profile: &models.Profile{UserID: testUserID, Preferences: []string{}, Status: models.ProfileStatusActive}},
		recipe:     &stubRecipeService{recipe: recipe, detail: &service.RecipeDetail{Recipe: *recipe}, rating: &service.RatingResult{Rating: "up"}},
		generation: &stubGenerationService{recipe: recipe},
		usage:      &stubUsageService{summary: &service.UsageSummary{Period: "month", ModelsUsed: map[string]service.ModelUsage{}, DailyBreakdown: []service.DailyUsage{}}},
	}
}

func newTestRouter(f *fixtures) *gin.Engine {
	handlers := router.Handlers{
		Auth:    api.NewAuthHandler(f.auth),
		Profile: api.NewProfileHandler(f.profile, nil),
		Recipe:  api.NewRecipeHandler(f.recipe, f.generation),
		Usage:   api.NewUsageHandler(f.usage),
	}
	return router.SetupRouter(handlers, f.auth, nil)
}

func doRequest(t *testing.T, engine *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer good-token")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
