package port

import (
	"context"
	"errors"

	"adpace/internal/core/domain"
)

// ErrNoDataInRange indicates a pacing window with no portfolio rows. It is
// recoverable: callers render a degraded report instead of failing the run.
var ErrNoDataInRange = errors.New("no data in range")

// ErrCampaignNotFound indicates an unknown campaign identifier.
var ErrCampaignNotFound = errors.New("campaign not found")

// RecordRepository is the outbound port for raw line-item delivery data.
// Implementations return rows as-is; coercion and validation belong to the
// normalizer, so a connector never has to reject malformed upstream data.
type RecordRepository interface {
	// ListRecords returns every stored raw record.
	ListRecords(ctx context.Context) ([]domain.RawRecord, error)
	// UpsertRecords stores normalized records keyed on (date, line item).
	UpsertRecords(ctx context.Context, records []domain.LineItemRecord) error
}

// CampaignRepository is the outbound port for the campaign catalog.
type CampaignRepository interface {
	ListCampaigns(ctx context.Context) ([]domain.Campaign, error)
	// GetCampaign returns ErrCampaignNotFound for unknown ids.
	GetCampaign(ctx context.Context, id string) (*domain.Campaign, error)
}

// RollupRepository persists recomputed rollup views. Saves replace the
// previous contents of each view atomically so readers never observe a
// partially refreshed view.
type RollupRepository interface {
	SaveRollups(ctx context.Context, rollups domain.Rollups) error
}
