package port

import (
	"context"
	"time"

	"adpace/internal/core/domain"
)

// ReportUseCase defines the reporting operations exposed by the pacing
// engine. This interface is the primary port into the application domain;
// the HTTP adapter, the CLI commands and the scheduler all speak through it.
type ReportUseCase interface {
	// Rollups normalizes the full record set and computes the six derived
	// views. Empty upstream data yields empty views, not an error.
	Rollups(ctx context.Context) (domain.Rollups, error)

	// RefreshRollups recomputes the six views and persists them through the
	// rollup repository. Used by the scheduler and the serve startup path.
	RefreshRollups(ctx context.Context) error

	// Pacing computes budget pacing for a campaign over a date window using
	// the timezone-local current day. When the window contains no data the
	// returned report carries ErrNoDataInRange and a degraded text body.
	Pacing(ctx context.Context, req PacingReq) (*PacingReport, error)

	// PacingCSV renders the per-day pacing CSV (Date, Spend, Impressions,
	// Budget Target, Daily Variance, Status) for the same window.
	PacingCSV(ctx context.Context, req PacingReq) (string, error)

	// Outlook assembles the combined past/future week table: actual spend
	// for past weeks, allocated budget for every week, forecast spend for
	// future weeks.
	Outlook(ctx context.Context) ([]domain.WeeklyOutlookRow, error)
}

// PacingReq identifies the campaign and window to pace. From/To default to
// the campaign's own flight dates when nil. Timezone accepts an IANA name
// or a common abbreviation; unknown values fall back to UTC.
type PacingReq struct {
	CampaignID string
	From       *time.Time
	To         *time.Time
	Timezone   string
}

// PacingReport pairs the computed result with its rendered multi-section
// text. Err is non-nil when the window held no data; Text then contains a
// fallback message suitable for direct display.
type PacingReport struct {
	Result domain.PacingResult
	Text   string
	Err    error
}
