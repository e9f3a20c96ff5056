// Package observability holds the process-wide Prometheus metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// ReportsGenerated counts report requests by kind (rollup, pacing,
	// pacing_csv, outlook) and outcome (ok, degraded, error).
	ReportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "adpace_reports_generated_total",
			Help: "Total number of reports generated",
		},
		[]string{"kind", "outcome"},
	)

	// RollupRefreshDuration measures full rollup recomputation duration.
	RollupRefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "adpace_rollup_refresh_duration_seconds",
			Help:    "Rollup recomputation and persistence duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// RollupLastRefresh tracks the unix timestamp of the last successful
	// rollup refresh.
	RollupLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "adpace_rollup_last_refresh_timestamp",
			Help: "Unix timestamp of the last successful rollup refresh",
		},
	)
)
