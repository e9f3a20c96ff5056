package pipeline

import (
	"math"
	"time"

	"adpace/internal/core/domain"
)

// ForecastSpend projects per-campaign weekly spend for the future week
// buckets, capped by the allocated budget. The projection uses the
// campaign's realized daily rate over the trailing weeksPast×7-day window
// ending yesterday; a campaign with no historical basis falls back to the
// budget plan itself. Every produced row satisfies
// forecast_spend ≤ weekly allocated budget.
func ForecastSpend(
	records []domain.LineItemRecord,
	campaigns []domain.Campaign,
	allocations []domain.BudgetAllocationRow,
	weeksPast, weeksFuture int,
	today time.Time,
) []domain.ForecastRow {
	today = dateOnly(today)
	pastCutoff := today.AddDate(0, 0, -7*weeksPast)
	futureBuckets := FutureWeeks(today, weeksFuture)

	// spend per campaign in [pastCutoff, today)
	spent := make(map[string]float64)
	for _, r := range records {
		if r.Date.Before(pastCutoff) || !r.Date.Before(today) {
			continue
		}
		spent[r.CampaignID] += r.Spend
	}

	type allocKey struct {
		campaignID string
		weekStart  time.Time
	}
	allocated := make(map[allocKey]float64, len(allocations))
	for _, a := range allocations {
		allocated[allocKey{a.CampaignID, a.WeekStart}] = a.WeeklyBudget
	}

	rows := make([]domain.ForecastRow, 0, len(campaigns)*len(futureBuckets))
	for _, c := range campaigns {
		if c.StartDate.IsZero() || c.EndDate.IsZero() {
			continue
		}

		var projectedWeekly *float64
		effectiveStart := maxDate(dateOnly(c.StartDate), pastCutoff)
		daysElapsed := daysBetween(effectiveStart, today)
		if total, ok := spent[c.ID]; ok && daysElapsed > 0 && total > 0 {
			weekly := total / float64(daysElapsed) * 7
			projectedWeekly = &weekly
		}

		for _, bucket := range futureBuckets {
			if !c.ActiveDuring(bucket.WeekStart, bucket.WeekEnd) {
				continue
			}
			budget, ok := allocated[allocKey{c.ID, bucket.WeekStart}]
			if !ok {
				continue
			}
			forecast := budget
			if projectedWeekly != nil {
				forecast = math.Min(*projectedWeekly, budget)
			}
			rows = append(rows, domain.ForecastRow{
				WeekStart:     bucket.WeekStart,
				WeekEnd:       bucket.WeekEnd,
				CampaignID:    c.ID,
				CampaignName:  c.Name,
				ForecastSpend: round2(forecast),
			})
		}
	}
	return rows
}
