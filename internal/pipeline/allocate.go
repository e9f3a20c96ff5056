package pipeline

import (
	"time"

	"adpace/internal/core/domain"
)

// AllocateBudgets prorates each campaign's total budget across the week
// buckets its flight overlaps. The weekly amount is the campaign's daily
// budget rate times the number of overlap days, so a campaign active for
// only part of a week receives a proportional share. Campaigns without a
// positive budget or a positive flight length are skipped. The rule is the
// same for past and future buckets: allocation depends only on the flight
// window and budget, never on actual spend.
func AllocateBudgets(campaigns []domain.Campaign, buckets []domain.WeekBucket) []domain.BudgetAllocationRow {
	rows := make([]domain.BudgetAllocationRow, 0, len(campaigns)*len(buckets))
	for _, bucket := range buckets {
		for _, c := range campaigns {
			if c.Budget <= 0 {
				continue
			}
			totalDays := c.TotalDays()
			if totalDays <= 0 {
				continue
			}
			if !c.ActiveDuring(bucket.WeekStart, bucket.WeekEnd) {
				continue
			}

			overlapStart := maxDate(dateOnly(c.StartDate), bucket.WeekStart)
			overlapEnd := minDate(dateOnly(c.EndDate), bucket.WeekEnd)
			overlapDays := daysBetween(overlapStart, overlapEnd) + 1

			dailyRate := c.Budget / float64(totalDays)
			rows = append(rows, domain.BudgetAllocationRow{
				WeekStart:    bucket.WeekStart,
				WeekEnd:      bucket.WeekEnd,
				CampaignID:   c.ID,
				CampaignName: c.Name,
				WeeklyBudget: round2(dailyRate * float64(overlapDays)),
			})
		}
	}
	return rows
}

func minDate(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
