package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpace/internal/core/domain"
)

func TestAllocateFullWeek(t *testing.T) {
	// 70-day flight, $7,000 budget -> $100/day -> $700 per full week
	campaign := domain.Campaign{
		ID: "c1", Name: "Flight", Budget: 7000,
		StartDate: day(2025, 1, 6), EndDate: day(2025, 3, 16),
	}
	bucket := domain.WeekBucket{WeekStart: day(2025, 2, 3), WeekEnd: day(2025, 2, 9)}

	rows := AllocateBudgets([]domain.Campaign{campaign}, []domain.WeekBucket{bucket})
	require.Len(t, rows, 1)
	assert.Equal(t, 700.0, rows[0].WeeklyBudget)
	assert.Equal(t, campaign.Budget/float64(campaign.TotalDays())*7, rows[0].WeeklyBudget)
}

func TestAllocatePartialOverlap(t *testing.T) {
	// campaign starts Saturday: only 2 of 7 bucket days overlap
	campaign := domain.Campaign{
		ID: "c1", Budget: 7000,
		StartDate: day(2025, 1, 11), EndDate: day(2025, 3, 21), // 70 days
	}
	bucket := domain.WeekBucket{WeekStart: day(2025, 1, 6), WeekEnd: day(2025, 1, 12)}

	rows := AllocateBudgets([]domain.Campaign{campaign}, []domain.WeekBucket{bucket})
	require.Len(t, rows, 1)
	assert.Equal(t, 200.0, rows[0].WeeklyBudget) // $100/day x 2 days
}

func TestAllocateSkipsInactiveAndInvalid(t *testing.T) {
	bucket := domain.WeekBucket{WeekStart: day(2025, 2, 3), WeekEnd: day(2025, 2, 9)}
	campaigns := []domain.Campaign{
		{ID: "ended", Budget: 1000, StartDate: day(2024, 1, 1), EndDate: day(2024, 2, 1)},
		{ID: "zero-budget", Budget: 0, StartDate: day(2025, 1, 1), EndDate: day(2025, 3, 1)},
		{ID: "inverted", Budget: 1000, StartDate: day(2025, 2, 10), EndDate: day(2025, 2, 1)},
		{ID: "ok", Budget: 1000, StartDate: day(2025, 1, 1), EndDate: day(2025, 3, 1)},
	}

	rows := AllocateBudgets(campaigns, []domain.WeekBucket{bucket})
	require.Len(t, rows, 1)
	assert.Equal(t, "ok", rows[0].CampaignID)
}

func TestAllocateSameRuleForPastAndFuture(t *testing.T) {
	campaign := domain.Campaign{
		ID: "c1", Budget: 7000,
		StartDate: day(2025, 1, 6), EndDate: day(2025, 3, 16),
	}
	today := day(2025, 2, 12)
	past := PastWeeks(today, 2)
	future := FutureWeeks(today, 2)

	rows := AllocateBudgets([]domain.Campaign{campaign}, append(past, future...))
	require.Len(t, rows, 4)
	for _, row := range rows {
		assert.Equal(t, 700.0, row.WeeklyBudget)
	}
}
