package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"adpace/internal/core/domain"
)

// RollupRepository persists recomputed rollup views as jsonb documents, one
// per view. Each refresh replaces all six views inside a single
// transaction, so readers never observe a half-updated set.
type RollupRepository struct {
	pool *pgxpool.Pool
}

// NewRollupRepository returns a new repository instance.
func NewRollupRepository(pool *pgxpool.Pool) *RollupRepository {
	return &RollupRepository{pool: pool}
}

// SaveRollups stores all six views, overwriting the previous refresh.
func (r *RollupRepository) SaveRollups(ctx context.Context, rollups domain.Rollups) error {
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

	refreshedAt := time.Now().UTC()
	for _, name := range domain.ViewNames {
		var data []byte
		data, err = json.Marshal(rollups.View(name))
		if err != nil {
			return err
		}
		_, err = tx.Exec(ctx, `
            INSERT INTO rollups (view_name, data, refreshed_at)
            VALUES ($1, $2, $3)
            ON CONFLICT (view_name) DO UPDATE SET
                data = EXCLUDED.data,
                refreshed_at = EXCLUDED.refreshed_at`,
			name, data, refreshedAt)
		if err != nil {
			return err
		}
	}
	return nil
}
