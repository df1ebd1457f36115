package types

// SignUpRequest is the body for POST /auth/signup.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// SignInRequest is the body for POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// GenerateRecipeRequest is the body for POST /recipes/generate.
type GenerateRecipeRequest struct {
	Query string `json:"query" binding:"required,max=1000"`
	Model string `json:"model"`
}

// UpdateVisibilityRequest is the body for PUT /recipes/:id/visibility.
type UpdateVisibilityRequest struct {
	IsVisible *bool `json:"is_visible" binding:"required"`
}

// RatingRequest is the body for POST|PUT /recipes/:id/rating.
type RatingRequest struct {
	Rating string `json:"rating" binding:"required,oneof=up down"`
}

// UpdateProfileRequest is the body for PUT /profiles/me.
type UpdateProfileRequest struct {
	Preferences []string `json:"preferences" binding:"required"`
}
