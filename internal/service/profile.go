package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/psmolich79/healthy-meal/internal/models"
)

// ProfileService handles user profile operations
type ProfileService struct {
	db *gorm.DB
}

var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetOrCreate returns the user's profile, creating an empty active one on
// first access.
func (s *ProfileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = models.Profile{
		ID:          uuid.New(),
		UserID:      userID,
		Preferences: []string{},
		Status:      models.ProfileStatusActive,
	}
	if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdatePreferences overwrites the stored preference set wholesale. The cap
// and uniqueness are checked before any write.
func (s *ProfileService) UpdatePreferences(ctx context.Context, userID uuid.UUID, preferences []string) (*models.Profile, error) {
	cleaned, err := validatePreferences(preferences)
	if err != nil {
		return nil, err
	}

	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Preferences = cleaned
	if err := s.db.WithContext(ctx).Model(profile).Update("preferences", profile.Preferences).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// ScheduleDeletion marks the profile for deletion. The row and the user's
// data remain until purged out of band.
func (s *ProfileService) ScheduleDeletion(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.Status = models.ProfileStatusPendingDeletion
	if err := s.db.WithContext(ctx).Model(profile).Update("status", profile.Status).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

// SetPictureURL stores the public URL of an uploaded profile picture.
func (s *ProfileService) SetPictureURL(ctx context.Context, userID uuid.UUID, url string) (*models.Profile, error) {
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile.PictureURL = url
	if err := s.db.WithContext(ctx).Model(profile).Update("picture_url", url).Error; err != nil {
		return nil, err
	}

	return profile, nil
}

func validatePreferences(preferences []string) ([]string, error) {
	cleaned := make([]string, 0, len(preferences))
	seen := make(map[string]bool, len(preferences))
	for _, p := range preferences {
		tag := strings.TrimSpace(p)
		if tag == "" {
			return nil, fmt.Errorf("%w: preference tags must not be empty", ErrValidation)
		}
		if seen[tag] {
			return nil, fmt.Errorf("%w: duplicate preference tag %q", ErrValidation, tag)
		}
		seen[tag] = true
		cleaned = append(cleaned, tag)
	}

	if len(cleaned) > models.MaxPreferences {
		return nil, fmt.Errorf("%w: at most %d preference tags allowed", ErrValidation, models.MaxPreferences)
	}

	return cleaned, nil
}
