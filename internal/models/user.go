package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Profile statuses. A profile scheduled for deletion keeps its row until an
// operator purges it; the API treats it like an active profile otherwise.
const (
	ProfileStatusActive          = "active"
	ProfileStatusPendingDeletion = "pending_deletion"
)

// MaxPreferences caps the number of dietary preference tags per profile.
const MaxPreferences = 20

type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// Profile stores a user's dietary preference tags. One row per user, created
// lazily on first access.
type Profile struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Preferences pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"preferences"`
	Status      string         `gorm:"size:32;not null;default:'active'" json:"status"`
	PictureURL  string         `gorm:"size:255" json:"picture_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
