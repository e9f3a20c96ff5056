package pipeline

import (
	"fmt"
	"math"
	"time"

	"adpace/internal/core/domain"
	"adpace/internal/core/port"
)

// ComputePacing compares cumulative spend in [windowStart, windowEnd]
// against the linear trajectory implied by the budget. "Today" is resolved
// in the given timezone from the injected clock instant; when the most
// recent data day is today, the elapsed fraction of the local day counts as
// a partial day. A window with no data returns the inputs echoed back plus
// port.ErrNoDataInRange so callers can render a degraded report.
func ComputePacing(portfolioDaily []domain.PortfolioDailyRow, windowStart, windowEnd time.Time, budget float64, tz string, now time.Time) (domain.PacingResult, error) {
	loc := ResolveLocation(tz)
	localNow := now.In(loc)
	today := dateOnly(localNow)

	windowStart = dateOnly(windowStart)
	windowEnd = dateOnly(windowEnd)

	result := domain.PacingResult{
		WindowStart: windowStart,
		WindowEnd:   windowEnd,
		Budget:      budget,
		Timezone:    loc.String(),
	}

	var (
		totalSpend   float64
		lastDataDate time.Time
		haveData     bool
	)
	for _, row := range portfolioDaily {
		if row.Date.Before(windowStart) || row.Date.After(windowEnd) {
			continue
		}
		totalSpend += row.Spend
		if !haveData || row.Date.After(lastDataDate) {
			lastDataDate = row.Date
		}
		haveData = true
	}
	if !haveData {
		return result, fmt.Errorf("pacing window %s to %s: %w",
			windowStart.Format("2006-01-02"), windowEnd.Format("2006-01-02"), port.ErrNoDataInRange)
	}

	totalDays := daysBetween(windowStart, windowEnd) + 1
	result.TotalDays = totalDays
	result.TotalSpend = round2(totalSpend)
	result.LastDataDate = lastDataDate

	var daysPassed float64
	if lastDataDate.Equal(today) {
		midnight := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, loc)
		fraction := localNow.Sub(midnight).Hours() / 24
		fraction = math.Min(math.Max(fraction, 0), 1)
		result.IsPartialDay = true
		result.PartialDayFraction = fraction
		daysPassed = float64(daysBetween(windowStart, lastDataDate)) + fraction
	} else {
		daysPassed = float64(daysBetween(windowStart, lastDataDate)) + 1
	}
	result.DaysPassed = daysPassed

	expectedDailyRate := budget / float64(totalDays)
	expectedSpend := expectedDailyRate * daysPassed
	result.ExpectedDailyRate = round2(expectedDailyRate)
	result.ExpectedSpend = round2(expectedSpend)

	actualDailyRate := 0.0
	if daysPassed > 0 {
		actualDailyRate = totalSpend / daysPassed
	}
	result.ActualDailyRate = round2(actualDailyRate)
	result.ProjectedFinalSpend = round2(actualDailyRate * float64(totalDays))

	variance := totalSpend - expectedSpend
	result.Variance = round2(variance)
	if expectedSpend != 0 {
		result.VariancePct = round2(variance / expectedSpend * 100)
	}

	switch {
	case math.Abs(result.VariancePct) < 5:
		result.Status = domain.PaceOnPace
	case result.VariancePct > 0:
		result.Status = domain.PaceAhead
	default:
		result.Status = domain.PaceBehind
	}

	daysRemaining := math.Max(0, float64(totalDays)-daysPassed)
	result.DaysRemaining = daysRemaining
	if daysRemaining > 0 {
		result.RequiredDailyRate = round2((budget - totalSpend) / daysRemaining)
	}

	return result, nil
}
