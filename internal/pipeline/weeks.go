package pipeline

import (
	"time"

	"adpace/internal/core/domain"
)

// WeekStart returns the Monday of the ISO week containing the given day.
func WeekStart(day time.Time) time.Time {
	day = dateOnly(day)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 .. Sunday=6
	return day.AddDate(0, 0, -offset)
}

// PastWeeks returns the n Monday–Sunday weeks strictly before the week
// containing today, oldest first.
func PastWeeks(today time.Time, n int) []domain.WeekBucket {
	currentMonday := WeekStart(today)
	buckets := make([]domain.WeekBucket, 0, n)
	for i := n; i >= 1; i-- {
		start := currentMonday.AddDate(0, 0, -7*i)
		buckets = append(buckets, domain.WeekBucket{
			WeekStart: start,
			WeekEnd:   start.AddDate(0, 0, 6),
		})
	}
	return buckets
}

// FutureWeeks returns the n Monday–Sunday weeks strictly after the week
// containing today, soonest first.
func FutureWeeks(today time.Time, n int) []domain.WeekBucket {
	currentMonday := WeekStart(today)
	buckets := make([]domain.WeekBucket, 0, n)
	for i := 1; i <= n; i++ {
		start := currentMonday.AddDate(0, 0, 7*i)
		buckets = append(buckets, domain.WeekBucket{
			WeekStart: start,
			WeekEnd:   start.AddDate(0, 0, 6),
		})
	}
	return buckets
}
