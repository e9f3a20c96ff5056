package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"adpace/internal/core/domain"
)

// RecordRepository implements port.RecordRepository using pgxpool. Rows are
// returned untyped; coercion belongs to the normalizer so that malformed
// upstream imports never make the connector fail.
type RecordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository returns a new repository instance.
func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

// ListRecords returns every stored raw delivery record.
func (r *RecordRepository) ListRecords(ctx context.Context) ([]domain.RawRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT date, campaign_id, campaign_name, line_item_id, line_item_name, spend, impressions
        FROM line_item_daily
        ORDER BY date, line_item_id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.RawRecord, error) {
		var (
			date                     time.Time
			campaignID, campaignName string
			lineItemID, lineItemName string
			spend                    float64
			impressions              int64
		)
		if err := row.Scan(&date, &campaignID, &campaignName, &lineItemID, &lineItemName, &spend, &impressions); err != nil {
			return nil, err
		}
		return domain.RawRecord{
			"date":           date,
			"campaign_id":    campaignID,
			"campaign_name":  campaignName,
			"line_item_id":   lineItemID,
			"line_item_name": lineItemName,
			"spend":          spend,
			"impressions":    impressions,
		}, nil
	})
}

// UpsertRecords stores normalized records, replacing any existing row for
// the same (date, line item) pair.
func (r *RecordRepository) UpsertRecords(ctx context.Context, records []domain.LineItemRecord) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	for _, rec := range records {
		_, err = tx.Exec(ctx, `
            INSERT INTO line_item_daily
                (date, campaign_id, campaign_name, line_item_id, line_item_name, spend, impressions)
            VALUES ($1,$2,$3,$4,$5,$6,$7)
            ON CONFLICT (date, line_item_id) DO UPDATE SET
                campaign_id = EXCLUDED.campaign_id,
                campaign_name = EXCLUDED.campaign_name,
                line_item_name = EXCLUDED.line_item_name,
                spend = EXCLUDED.spend,
                impressions = EXCLUDED.impressions`,
			rec.Date, rec.CampaignID, rec.CampaignName, rec.LineItemID, rec.LineItemName, rec.Spend, rec.Impressions)
		if err != nil {
			return err
		}
	}
	return nil
}
