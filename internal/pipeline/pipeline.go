// Package pipeline holds the pure computation core: record normalization,
// rollup aggregation, pacing, week bucketing, budget allocation and spend
// forecasting. Everything here is a deterministic transformation over
// in-memory data; I/O, logging and clocks live in the adapters.
package pipeline

import (
	"math"
	"time"
)

// round2 rounds to two decimal places (currency).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round4 rounds to four decimal places (fractions of budget).
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// dateOnly truncates a timestamp to its calendar day in UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysBetween is the whole number of days from a to b (b − a).
func daysBetween(a, b time.Time) int {
	return int(dateOnly(b).Sub(dateOnly(a)).Hours() / 24)
}
