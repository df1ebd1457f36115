package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psmolich79/healthy-meal/internal/models"
)

func TestProfileService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	db := openTestDB(t)
	svc := NewProfileService(db)
	ctx := context.Background()

	t.Run("lazily creates an empty active profile", func(t *testing.T) {
		userID := createTestUser(t, db)

		profile, err := svc.GetOrCreate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, profile.UserID)
		assert.Equal(t, models.ProfileStatusActive, profile.Status)
		assert.Empty(t, profile.Preferences)

		// Second call returns the same row.
		again, err := svc.GetOrCreate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, profile.ID, again.ID)
	})

	t.Run("updates preferences wholesale", func(t *testing.T) {
		userID := createTestUser(t, db)

		profile, err := svc.UpdatePreferences(ctx, userID, []string{"vegan", "nut-free"})
		require.NoError(t, err)
		assert.Equal(t, []string{"vegan", "nut-free"}, []string(profile.Preferences))

		profile, err = svc.UpdatePreferences(ctx, userID, []string{"keto"})
		require.NoError(t, err)
		assert.Equal(t, []string{"keto"}, []string(profile.Preferences))
	})

	t.Run("invalid preferences leave the profile untouched", func(t *testing.T) {
		userID := createTestUser(t, db)

		_, err := svc.UpdatePreferences(ctx, userID, []string{"vegan"})
		require.NoError(t, err)

		_, err = svc.UpdatePreferences(ctx, userID, []string{"vegan", "vegan"})
		assert.True(t, errors.Is(err, ErrValidation))

		profile, err := svc.GetOrCreate(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, []string{"vegan"}, []string(profile.Preferences))
	})

	t.Run("schedule deletion keeps the row", func(t *testing.T) {
		userID := createTestUser(t, db)

		profile, err := svc.ScheduleDeletion(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, models.ProfileStatusPendingDeletion, profile.Status)

		var count int64
		require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("stores picture URL", func(t *testing.T) {
		userID := createTestUser(t, db)

		profile, err := svc.SetPictureURL(ctx, userID, "https://example.com/p.png")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/p.png", profile.PictureURL)
	})
}
