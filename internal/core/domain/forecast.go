package domain

import "time"

// WeekBucket is one ISO Monday–Sunday week. Buckets produced together are
// contiguous and non-overlapping.
type WeekBucket struct {
	WeekStart time.Time `json:"week_start"`
	WeekEnd   time.Time `json:"week_end"`
}

// Contains reports whether the date falls inside the bucket.
func (w WeekBucket) Contains(d time.Time) bool {
	return !d.Before(w.WeekStart) && !d.After(w.WeekEnd)
}

// BudgetAllocationRow prorates one campaign's budget onto one week bucket
// it overlaps. WeeklyBudget = budget/flight days × overlap days.
type BudgetAllocationRow struct {
	WeekStart    time.Time `json:"week_start"`
	WeekEnd      time.Time `json:"week_end"`
	CampaignID   string    `json:"campaign_id"`
	CampaignName string    `json:"campaign_name"`
	WeeklyBudget float64   `json:"weekly_budget"`
}

// ForecastRow projects one campaign's spend for one future week bucket.
// ForecastSpend never exceeds the matching allocation's WeeklyBudget.
type ForecastRow struct {
	WeekStart     time.Time `json:"week_start"`
	WeekEnd       time.Time `json:"week_end"`
	CampaignID    string    `json:"campaign_id"`
	CampaignName  string    `json:"campaign_name"`
	ForecastSpend float64   `json:"forecast_spend"`
}

// WeeklyOutlookRow is one week of the combined 12-week outlook at portfolio
// grain. PastSpend is nil for future weeks; ForecastSpend is nil for past
// weeks.
type WeeklyOutlookRow struct {
	WeekStart       time.Time `json:"week_start_date"`
	WeekEnd         time.Time `json:"week_end_date"`
	PastSpend       *float64  `json:"past_spend"`
	BudgetAllocated float64   `json:"budget_allocated"`
	ForecastSpend   *float64  `json:"forecast_spend"`
}
