package db

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Seed inserts demo campaigns and roughly 90 days of per-line-item delivery
// data, so rollup, pacing and outlook reports have something to chew on.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().UTC().Truncate(24 * time.Hour)

	for i := 1; i <= 5; i++ {
		campaignID := fmt.Sprintf("cmp-%03d", i)
		name := fmt.Sprintf("Acme Media - Q3 Push %d", i)
		start := today.AddDate(0, 0, -60)
		end := today.AddDate(0, 0, 30)
		budget := float64(50000 + r.Intn(5)*25000)
		_, err := db.Exec(ctx, `INSERT INTO campaigns
    (id, name, budget, start_date, end_date, status, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,now(),now()) ON CONFLICT DO NOTHING`,
			campaignID, name, budget, start, end, "active")
		if err != nil {
			return err
		}

		// three line items per campaign, each with a stable spend level
		// plus daily noise
		for j := 1; j <= 3; j++ {
			lineItemID := uuid.NewString()
			lineItemName := fmt.Sprintf("Acme Media - Q3 Push %d - Line %d", i, j)
			baseSpend := 100 + float64(r.Intn(400))
			for day := 0; day < 90; day++ {
				date := start.AddDate(0, 0, day)
				if date.After(today) {
					break
				}
				spend := baseSpend * (0.7 + r.Float64()*0.6)
				impressions := int64(spend * float64(800+r.Intn(400)))
				_, err = db.Exec(ctx, `INSERT INTO line_item_daily
    (date, campaign_id, campaign_name, line_item_id, line_item_name, spend, impressions)
VALUES ($1,$2,$3,$4,$5,$6,$7) ON CONFLICT DO NOTHING`,
					date, campaignID, name, lineItemID, lineItemName, spend, impressions)
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
