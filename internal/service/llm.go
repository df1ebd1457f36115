package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

const (
	// generationTemperature keeps outputs varied without drifting off the
	// requested JSON shape.
	generationTemperature = 0.7
	// generationMaxTokens bounds the completion size per request.
	generationMaxTokens = 2000
	// llmRequestTimeout bounds a single chat-completion call.
	llmRequestTimeout = 60 * time.Second
)

// GeneratedRecipe is the structure of a recipe as returned by the LLM.
type GeneratedRecipe struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	ShoppingList []string `json:"shopping_list"`
	Instructions []string `json:"instructions"`
}

// TokenUsage reports the token counts of one chat-completion call.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// LLMService handles interactions with the chat-completion API.
type LLMService struct {
	client       openai.Client
	defaultModel string
}

var _ LLMClient = (*LLMService)(nil)

// NewLLMService creates a new LLMService instance. baseURL allows pointing at
// an OpenAI-compatible proxy; defaultModel is used when a request names none.
func NewLLMService(apiKey, baseURL, defaultModel string) *LLMService {
	httpClient := &http.Client{
		Timeout: llmRequestTimeout,
	}

	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
		option.WithHTTPClient(httpClient),
	)

	return &LLMService{
		client:       client,
		defaultModel: defaultModel,
	}
}

// GenerateRecipe builds a prompt from the query and preference tags, calls the
// chat-completion API once and parses the JSON body of the reply. A parse
// failure is a generation failure; there is no retry.
func (s *LLMService) GenerateRecipe(ctx context.Context, query string, preferences []string, model string) (*GeneratedRecipe, *TokenUsage, error) {
	if model == "" {
		model = s.defaultModel
	}

	messages := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(recipeSystemPrompt),
		openai.UserMessage(buildRecipePrompt(query, preferences)),
	}

	req := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(model),
		Messages:    messages,
		Temperature: openai.Float(generationTemperature),
		MaxTokens:   openai.Int(generationMaxTokens),
	}

	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		return nil, nil, fmt.Errorf("%w: no choices in response", ErrGenerationFailed)
	}

	usage := &TokenUsage{
		InputTokens:  int(resp.Usage.PromptTokens),
		OutputTokens: int(resp.Usage.CompletionTokens),
	}

	recipe, err := parseRecipeResponse(resp.Choices[0].Message.Content)
	if err != nil {
		log.Printf("[LLMService] Failed to parse recipe response: %v", err)
		return nil, usage, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return recipe, usage, nil
}

const recipeSystemPrompt = `You are a professional chef and nutritionist. Respond only with JSON in this exact structure:
{
    "title": "Recipe title",
    "ingredients": ["2 chicken breasts", "1 tbsp olive oil"],
    "shopping_list": ["chicken breast", "olive oil"],
    "instructions": ["Step 1: ...", "Step 2: ..."]
}

All four fields must be present. The three lists may be empty but never null.
Write the recipe in the same language as the user's request.`

// buildRecipePrompt embeds the user query and their dietary preference tags.
func buildRecipePrompt(query string, preferences []string) string {
	prompt := "Generate a recipe for: " + query
	if len(preferences) > 0 {
		prompt += ". The recipe must be suitable for these dietary preferences: " + strings.Join(preferences, ", ")
	}
	return prompt
}

// parseRecipeResponse strips an optional markdown code fence from the raw
// model output and decodes the JSON recipe.
func parseRecipeResponse(content string) (*GeneratedRecipe, error) {
	cleaned := stripCodeFence(content)
	if cleaned == "" {
		return nil, errors.New("empty response")
	}

	var recipe GeneratedRecipe
	if err := json.Unmarshal([]byte(cleaned), &recipe); err != nil {
		return nil, fmt.Errorf("failed to decode recipe JSON: %w", err)
	}

	if recipe.Title == "" {
		return nil, errors.New("recipe has no title")
	}

	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	if recipe.ShoppingList == nil {
		recipe.ShoppingList = []string{}
	}
	if recipe.Instructions == nil {
		recipe.Instructions = []string{}
	}

	return &recipe, nil
}

// stripCodeFence removes a wrapping ```json ... ``` or ``` ... ``` block,
// which some models emit despite instructions.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
