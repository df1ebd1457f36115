package service

import "errors"

// Service errors, mapped to HTTP statuses at the API boundary.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
	ErrNotFound           = errors.New("resource not found")
	ErrValidation         = errors.New("validation failed")
	ErrRateLimitExceeded  = errors.New("generation rate limit exceeded")
	ErrGenerationFailed   = errors.New("recipe generation failed")
)
