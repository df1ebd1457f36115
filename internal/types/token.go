package types

import "github.com/google/uuid"

// TokenClaims holds the claims carried by an access token after verification.
type TokenClaims struct {
	UserID uuid.UUID `json:"user_id"`
}
