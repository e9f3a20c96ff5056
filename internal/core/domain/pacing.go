package domain

import "time"

// PaceStatus classifies cumulative spend against the linear trajectory
// implied by the budget and date window.
type PaceStatus string

const (
	PaceOnPace PaceStatus = "ON_PACE"
	PaceAhead  PaceStatus = "AHEAD"
	PaceBehind PaceStatus = "BEHIND"
)

// PacingResult is the outcome of one pacing computation over a date window.
// DaysPassed is fractional when the last data date is the current local day
// (a partial day); all monetary fields are decimal currency units. The
// result is computed fresh on every invocation and never persisted.
type PacingResult struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Budget      float64   `json:"budget"`

	TotalSpend          float64    `json:"total_spend"`
	ExpectedSpend       float64    `json:"expected_spend"`
	Variance            float64    `json:"variance"`
	VariancePct         float64    `json:"variance_pct"`
	Status              PaceStatus `json:"status"`
	ProjectedFinalSpend float64    `json:"projected_final_spend"`

	TotalDays         int     `json:"total_days"`
	DaysPassed        float64 `json:"days_passed"`
	DaysRemaining     float64 `json:"days_remaining"`
	ExpectedDailyRate float64 `json:"expected_daily_rate"`
	ActualDailyRate   float64 `json:"actual_daily_rate"`
	RequiredDailyRate float64 `json:"required_daily_rate"`

	LastDataDate       time.Time `json:"last_data_date"`
	IsPartialDay       bool      `json:"is_partial_day"`
	PartialDayFraction float64   `json:"partial_day_fraction"`
	Timezone           string    `json:"timezone"`
}
