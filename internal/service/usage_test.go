package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/psmolich79/healthy-meal/internal/models"
)

func insertUsage(t *testing.T, db *gorm.DB, userID uuid.UUID, model string, in, out int, cost *float64, at time.Time) {
	t.Helper()
	record := models.AIUsageRecord{
		ID:           uuid.New(),
		UserID:       userID,
		Model:        model,
		InputTokens:  in,
		OutputTokens: out,
		Cost:         cost,
		CreatedAt:    at,
	}
	require.NoError(t, db.Create(&record).Error)
}

func TestUsageService(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	db := openTestDB(t)
	svc := NewUsageService(db)
	ctx := context.Background()

	t.Run("aggregates totals, models and days", func(t *testing.T) {
		userID := createTestUser(t, db)
		now := time.Now()
		cost1 := 0.01
		cost2 := 0.02

		insertUsage(t, db, userID, "gpt-4o", 100, 200, &cost1, now.Add(-2*time.Hour))
		insertUsage(t, db, userID, "gpt-4o", 50, 100, &cost2, now.Add(-26*time.Hour))
		insertUsage(t, db, userID, "gpt-4o-mini", 10, 20, nil, now.Add(-1*time.Hour))

		summary, err := svc.GetUsage(ctx, userID, "week", "", "")
		require.NoError(t, err)
		assert.Equal(t, 3, summary.TotalGenerations)
		assert.Equal(t, 160, summary.TotalInputTokens)
		assert.Equal(t, 320, summary.TotalOutputTokens)
		assert.InDelta(t, 0.03, summary.TotalCost, 1e-9)

		require.Contains(t, summary.ModelsUsed, "gpt-4o")
		assert.Equal(t, 2, summary.ModelsUsed["gpt-4o"].Generations)
		assert.InDelta(t, 0.03, summary.ModelsUsed["gpt-4o"].Cost, 1e-9)

		require.Contains(t, summary.ModelsUsed, "gpt-4o-mini")
		assert.Zero(t, summary.ModelsUsed["gpt-4o-mini"].Cost)

		// Daily buckets ascend.
		require.NotEmpty(t, summary.DailyBreakdown)
		for i := 1; i < len(summary.DailyBreakdown); i++ {
			assert.Less(t, summary.DailyBreakdown[i-1].Date, summary.DailyBreakdown[i].Date)
		}
	})

	t.Run("only counts the requesting user", func(t *testing.T) {
		userID := createTestUser(t, db)
		other := createTestUser(t, db)
		now := time.Now()

		insertUsage(t, db, other, "gpt-4o", 999, 999, nil, now.Add(-time.Hour))

		summary, err := svc.GetUsage(ctx, userID, "week", "", "")
		require.NoError(t, err)
		assert.Zero(t, summary.TotalGenerations)
	})

	t.Run("empty range returns zeroes not an error", func(t *testing.T) {
		userID := createTestUser(t, db)

		summary, err := svc.GetUsage(ctx, userID, "custom", "2020-01-01", "2020-01-31")
		require.NoError(t, err)
		assert.Zero(t, summary.TotalGenerations)
		assert.Zero(t, summary.TotalCost)
		assert.Empty(t, summary.DailyBreakdown)
		assert.Empty(t, summary.ModelsUsed)
	})

	t.Run("custom range excludes outside records", func(t *testing.T) {
		userID := createTestUser(t, db)

		insertUsage(t, db, userID, "gpt-4o", 1, 1, nil, time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
		insertUsage(t, db, userID, "gpt-4o", 1, 1, nil, time.Date(2025, 3, 20, 12, 0, 0, 0, time.UTC))

		summary, err := svc.GetUsage(ctx, userID, "custom", "2025-03-01", "2025-03-15")
		require.NoError(t, err)
		assert.Equal(t, 1, summary.TotalGenerations)
	})
}
