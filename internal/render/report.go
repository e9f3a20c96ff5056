package render

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"adpace/internal/core/domain"
)

// dailyStatusBand is the per-day variance threshold as a fraction of the
// daily budget target. Intentionally tighter than the 5% band used for the
// headline pacing status.
const dailyStatusBand = 0.02

const recentDays = 7

// ReportText renders the multi-section pacing report for human consumption.
// The daily slice should be the portfolio_daily view; only rows inside the
// result's window contribute to the recent-spend section.
func ReportText(campaignName string, result domain.PacingResult, daily []domain.PortfolioDailyRow) string {
	var b strings.Builder
	b.WriteString("SPEND PACING REPORT\n")
	b.WriteString("===================\n\n")

	b.WriteString("Campaign Period\n")
	fmt.Fprintf(&b, "  Campaign:  %s\n", campaignName)
	fmt.Fprintf(&b, "  Window:    %s to %s (%d days)\n",
		FormatDate(result.WindowStart), FormatDate(result.WindowEnd), result.TotalDays)
	fmt.Fprintf(&b, "  Timezone:  %s\n\n", result.Timezone)

	b.WriteString("Spend Summary\n")
	fmt.Fprintf(&b, "  Budget:           %s\n", FormatMoney(result.Budget))
	fmt.Fprintf(&b, "  Total spend:      %s\n", FormatMoney(result.TotalSpend))
	fmt.Fprintf(&b, "  Expected spend:   %s\n", FormatMoney(result.ExpectedSpend))
	fmt.Fprintf(&b, "  Projected final:  %s\n\n", FormatMoney(result.ProjectedFinalSpend))

	b.WriteString("Timeline\n")
	fmt.Fprintf(&b, "  Days passed:     %.2f of %d\n", result.DaysPassed, result.TotalDays)
	fmt.Fprintf(&b, "  Days remaining:  %.2f\n", result.DaysRemaining)
	fmt.Fprintf(&b, "  Last data date:  %s\n", FormatDate(result.LastDataDate))
	if result.IsPartialDay {
		fmt.Fprintf(&b, "  Partial day:     %.0f%% of today elapsed\n", result.PartialDayFraction*100)
	}
	b.WriteString("\n")

	b.WriteString("Pacing Metrics\n")
	fmt.Fprintf(&b, "  Expected daily rate:  %s\n", FormatMoney(result.ExpectedDailyRate))
	fmt.Fprintf(&b, "  Actual daily rate:    %s\n", FormatMoney(result.ActualDailyRate))
	fmt.Fprintf(&b, "  Required daily rate:  %s\n", FormatMoney(result.RequiredDailyRate))
	fmt.Fprintf(&b, "  Variance:             %s (%s)\n\n", FormatMoney(result.Variance), FormatPct(result.VariancePct))

	fmt.Fprintf(&b, "Status: %s\n", statusLabel(result.Status))
	b.WriteString("  " + statusNarrative(result) + "\n\n")

	b.WriteString("Recent Daily Spend\n")
	recent := recentRows(daily, result.WindowStart, result.WindowEnd)
	if len(recent) == 0 {
		b.WriteString("  (no rows)\n")
	}
	for _, row := range recent {
		fmt.Fprintf(&b, "  %s  %s\n", FormatDate(row.Date), FormatMoney(row.Spend))
	}
	return b.String()
}

// DegradedReportText is the fallback body when the pacing window held no
// data. It replaces the full report rather than failing the pipeline.
func DegradedReportText(campaignName string, from, to time.Time) string {
	var b strings.Builder
	b.WriteString("SPEND PACING REPORT\n")
	b.WriteString("===================\n\n")
	fmt.Fprintf(&b, "Campaign: %s\n", campaignName)
	fmt.Fprintf(&b, "No spend data found between %s and %s.\n", FormatDate(from), FormatDate(to))
	b.WriteString("Check that delivery records have been ingested for this window.\n")
	return b.String()
}

// PacingDailyTable renders the per-day pacing CSV: each data day in the
// window compared against the flat daily budget target, with a status at
// the 2%-of-target band.
func PacingDailyTable(daily []domain.PortfolioDailyRow, windowStart, windowEnd time.Time, budget float64) Table {
	t := Table{
		Name:    "pacing_daily",
		Columns: []string{"Date", "Spend", "Impressions", "Budget Target", "Daily Variance", "Status"},
	}

	totalDays := int(windowEnd.Sub(windowStart).Hours()/24) + 1
	if totalDays <= 0 {
		return t
	}
	dailyTarget := budget / float64(totalDays)

	rows := make([]domain.PortfolioDailyRow, 0, len(daily))
	for _, row := range daily {
		if row.Date.Before(windowStart) || row.Date.After(windowEnd) {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	for _, row := range rows {
		variance := row.Spend - dailyTarget
		t.Rows = append(t.Rows, []string{
			FormatDate(row.Date),
			money(row.Spend),
			count(row.Impressions),
			money(dailyTarget),
			money(variance),
			dailyStatus(variance, dailyTarget),
		})
	}
	return t
}

func dailyStatus(variance, target float64) string {
	if math.Abs(variance) <= dailyStatusBand*math.Abs(target) {
		return "On Pace"
	}
	if variance > 0 {
		return "Ahead"
	}
	return "Behind"
}

func statusLabel(s domain.PaceStatus) string {
	switch s {
	case domain.PaceOnPace:
		return "ON PACE"
	case domain.PaceAhead:
		return "AHEAD"
	case domain.PaceBehind:
		return "BEHIND"
	default:
		return string(s)
	}
}

func statusNarrative(r domain.PacingResult) string {
	switch r.Status {
	case domain.PaceOnPace:
		return "Spend is within 5% of the expected trajectory."
	case domain.PaceAhead:
		return fmt.Sprintf("Spend is running %s ahead of plan; at the current rate the campaign finishes at %s.",
			FormatPct(r.VariancePct), FormatMoney(r.ProjectedFinalSpend))
	case domain.PaceBehind:
		return fmt.Sprintf("Spend is running %s behind plan; %s per day is required to spend the full budget.",
			FormatPct(r.VariancePct), FormatMoney(r.RequiredDailyRate))
	default:
		return ""
	}
}

func recentRows(daily []domain.PortfolioDailyRow, windowStart, windowEnd time.Time) []domain.PortfolioDailyRow {
	rows := make([]domain.PortfolioDailyRow, 0, len(daily))
	for _, row := range daily {
		if row.Date.Before(windowStart) || row.Date.After(windowEnd) {
			continue
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	if len(rows) > recentDays {
		rows = rows[:recentDays]
	}
	return rows
}
