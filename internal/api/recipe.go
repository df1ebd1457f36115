package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/psmolich79/healthy-meal/internal/service"
	"github.com/psmolich79/healthy-meal/internal/types"
)

type RecipeHandler struct {
	recipeService     service.IRecipeService
	generationService service.IGenerationService
}

func NewRecipeHandler(recipeService service.IRecipeService, generationService service.IGenerationService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:     recipeService,
		generationService: generationService,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("/generate", h.GenerateRecipe)
		recipes.POST("/:id/regenerate", h.RegenerateRecipe)
		recipes.PUT("/:id/visibility", h.UpdateVisibility)
		recipes.POST("/:id/save", h.SaveRecipe)
		recipes.DELETE("/:id/save", h.UnsaveRecipe)
		recipes.POST("/:id/rating", h.RateRecipe)
		recipes.PUT("/:id/rating", h.RateRecipe)
		recipes.DELETE("/:id/rating", h.DeleteRating)
	}
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := service.ListRecipesParams{
		Sort:   c.Query("sort"),
		Search: c.Query("q"),
	}
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "0")); err == nil {
		params.Limit = limit
	}
	if c.Query("visible_only") == "true" {
		params.VisibleOnly = true
	}

	recipes, pagination, err := h.recipeService.ListRecipes(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes":    recipes,
		"pagination": pagination,
	})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	detail, err := h.recipeService.GetRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	recipe, err := h.generationService.Generate(c.Request.Context(), userID, req.Query, req.Model)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) RegenerateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	recipe, err := h.generationService.Regenerate(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateVisibility(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req types.UpdateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	recipe, err := h.recipeService.UpdateVisibility(c.Request.Context(), userID, recipeID, *req.IsVisible)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.SaveRecipe(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": true})
}

func (h *RecipeHandler) UnsaveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.UnsaveRecipe(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"saved": false})
}

func (h *RecipeHandler) RateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	var req types.RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": err.Error()})
		return
	}

	value := service.RatingUp
	if req.Rating == "down" {
		value = service.RatingDown
	}

	result, err := h.recipeService.RateRecipe(c.Request.Context(), userID, recipeID, value)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *RecipeHandler) DeleteRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRating(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": nil})
}

// pathID parses the :id path parameter as a UUID.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "details": "invalid recipe id"})
		return uuid.Nil, false
	}
	return id, true
}
