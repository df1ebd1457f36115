package models

import (
	"time"

	"github.com/google/uuid"
)

// AIUsageRecord is an append-only log of one LLM call. Cost is derived from
// the model price table at insert time; nil means the model was not priced.
type AIUsageRecord struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;index:idx_ai_usage_user_created" json:"user_id"`
	Model        string    `gorm:"size:64;not null" json:"model"`
	InputTokens  int       `gorm:"not null" json:"input_tokens"`
	OutputTokens int       `gorm:"not null" json:"output_tokens"`
	Cost         *float64  `gorm:"type:numeric(12,6)" json:"cost"`
	CreatedAt    time.Time `gorm:"index:idx_ai_usage_user_created" json:"created_at"`
}
