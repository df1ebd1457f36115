package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/psmolich79/healthy-meal/internal/models"
)

const dateLayout = "2006-01-02"

// ModelUsage aggregates usage rows for one model.
type ModelUsage struct {
	Generations  int     `json:"generations"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`
}

// DailyUsage aggregates usage rows for one calendar day.
type DailyUsage struct {
	Date        string  `json:"date"`
	Generations int     `json:"generations"`
	Cost        float64 `json:"cost"`
}

// UsageSummary is the full analytics DTO for a date range.
type UsageSummary struct {
	Period           string                `json:"period"`
	StartDate        string                `json:"start_date"`
	EndDate          string                `json:"end_date"`
	TotalGenerations int                   `json:"total_generations"`
	TotalInputTokens int                   `json:"total_input_tokens"`
	TotalOutputTokens int                  `json:"total_output_tokens"`
	TotalCost        float64               `json:"total_cost"`
	ModelsUsed       map[string]ModelUsage `json:"models_used"`
	DailyBreakdown   []DailyUsage          `json:"daily_breakdown"`
}

// UsageService aggregates the append-only AI usage log.
type UsageService struct {
	db *gorm.DB
}

var _ IUsageService = (*UsageService)(nil)

func NewUsageService(db *gorm.DB) *UsageService {
	return &UsageService{db: db}
}

// GetUsage scans the user's usage rows in the resolved date range and builds
// grand totals, per-model totals and ascending per-day buckets.
func (s *UsageService) GetUsage(ctx context.Context, userID uuid.UUID, period, startDate, endDate string) (*UsageSummary, error) {
	start, end, err := resolvePeriod(period, startDate, endDate, time.Now())
	if err != nil {
		return nil, err
	}

	var records []models.AIUsageRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, start, end).
		Find(&records).Error; err != nil {
		return nil, err
	}

	summary := &UsageSummary{
		Period:         period,
		StartDate:      start.Format(dateLayout),
		EndDate:        end.Format(dateLayout),
		ModelsUsed:     map[string]ModelUsage{},
		DailyBreakdown: []DailyUsage{},
	}

	daily := map[string]DailyUsage{}
	for _, r := range records {
		cost := 0.0
		if r.Cost != nil {
			cost = *r.Cost
		}

		summary.TotalGenerations++
		summary.TotalInputTokens += r.InputTokens
		summary.TotalOutputTokens += r.OutputTokens
		summary.TotalCost += cost

		m := summary.ModelsUsed[r.Model]
		m.Generations++
		m.InputTokens += r.InputTokens
		m.OutputTokens += r.OutputTokens
		m.Cost += cost
		summary.ModelsUsed[r.Model] = m

		day := r.CreatedAt.Format(dateLayout)
		d := daily[day]
		d.Date = day
		d.Generations++
		d.Cost += cost
		daily[day] = d
	}

	for _, d := range daily {
		summary.DailyBreakdown = append(summary.DailyBreakdown, d)
	}
	sort.Slice(summary.DailyBreakdown, func(i, j int) bool {
		return summary.DailyBreakdown[i].Date < summary.DailyBreakdown[j].Date
	})

	return summary, nil
}

// resolvePeriod turns a period name into concrete bounds. Fixed periods
// subtract a duration from now; "custom" requires both dates with
// start < end.
func resolvePeriod(period, startDate, endDate string, now time.Time) (time.Time, time.Time, error) {
	switch period {
	case "day":
		return now.Add(-24 * time.Hour), now, nil
	case "week":
		return now.Add(-7 * 24 * time.Hour), now, nil
	case "month":
		return now.Add(-30 * 24 * time.Hour), now, nil
	case "year":
		return now.Add(-365 * 24 * time.Hour), now, nil
	case "custom":
		if startDate == "" || endDate == "" {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: custom period requires start_date and end_date", ErrValidation)
		}
		start, err := time.Parse(dateLayout, startDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid start_date", ErrValidation)
		}
		end, err := time.Parse(dateLayout, endDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid end_date", ErrValidation)
		}
		if !start.Before(end) {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: start_date must be before end_date", ErrValidation)
		}
		// Include the whole end day.
		return start, end.Add(24*time.Hour - time.Nanosecond), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown period %q", ErrValidation, period)
	}
}
