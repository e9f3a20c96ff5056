package domain

import "time"

// RawRecord is one untyped row of line-item spend data as delivered by an
// upstream connector (database export, spreadsheet, API dump). Keys are
// column names; values may be strings, numbers or nil. The normalizer is
// responsible for coercing these into LineItemRecord values.
type RawRecord map[string]any

// LineItemRecord is one normalized day of delivery for a single line item.
// Spend is in decimal currency units rounded to two places; impressions is a
// non-negative count. Records are unique per (Date, LineItemID) and are
// treated as immutable once normalized.
type LineItemRecord struct {
	Date         time.Time `json:"date"`
	CampaignID   string    `json:"campaign_id"`
	CampaignName string    `json:"campaign_name"`
	LineItemID   string    `json:"line_item_id"`
	LineItemName string    `json:"line_item_name"`
	Spend        float64   `json:"spend"`
	Impressions  int64     `json:"impressions"`
}
