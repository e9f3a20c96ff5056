package domain

import "time"

// Rollup view names. Every run recomputes all six views wholesale from the
// normalized record set; views are never incrementally mutated.
const (
	ViewLineItemsDaily = "line_items_daily"
	ViewLineItemsTotal = "line_items_total"
	ViewCampaignsDaily = "campaigns_daily"
	ViewCampaignsTotal = "campaigns_total"
	ViewPortfolioDaily = "portfolio_daily"
	ViewPortfolioTotal = "portfolio_total"
)

// ViewNames lists the six rollup views in their canonical order.
var ViewNames = []string{
	ViewLineItemsDaily,
	ViewLineItemsTotal,
	ViewCampaignsDaily,
	ViewCampaignsTotal,
	ViewPortfolioDaily,
	ViewPortfolioTotal,
}

// LineItemDailyRow is one (line item, date) row of the line_items_daily view.
// PrevDaySpendRatio is spend(t)/spend(t-1) against the previous date present
// for the same line item; nil when there is no prior date or the prior spend
// was exactly zero.
type LineItemDailyRow struct {
	Date              time.Time `json:"date"`
	CampaignID        string    `json:"campaign_id"`
	CampaignName      string    `json:"campaign_name"`
	LineItemID        string    `json:"line_item_id"`
	LineItemName      string    `json:"line_item_name"`
	Spend             float64   `json:"spend"`
	Impressions       int64     `json:"impressions"`
	PrevDaySpendRatio *float64  `json:"prev_day_spend_ratio"`
}

// CampaignDailyRow is one (campaign, date) row of campaigns_daily, with
// spend and impressions summed across the campaign's line items first.
type CampaignDailyRow struct {
	Date              time.Time `json:"date"`
	CampaignID        string    `json:"campaign_id"`
	CampaignName      string    `json:"campaign_name"`
	Spend             float64   `json:"spend"`
	Impressions       int64     `json:"impressions"`
	PrevDaySpendRatio *float64  `json:"prev_day_spend_ratio"`
}

// PortfolioDailyRow is one date of portfolio_daily across all campaigns.
// TotalCampaigns is the distinct campaign count delivering that day.
type PortfolioDailyRow struct {
	Date              time.Time `json:"date"`
	Spend             float64   `json:"spend"`
	Impressions       int64     `json:"impressions"`
	TotalCampaigns    int       `json:"total_campaigns"`
	PrevDaySpendRatio *float64  `json:"prev_day_spend_ratio"`
}

// LineItemTotalRow is one line item's lifetime totals. SpendPercentage is
// total spend over the owning campaign's budget, rounded to four places,
// 0.0 when the budget is not positive.
type LineItemTotalRow struct {
	LineItemID       string  `json:"line_item_id"`
	LineItemName     string  `json:"line_item_name"`
	CampaignID       string  `json:"campaign_id"`
	CampaignName     string  `json:"campaign_name"`
	TotalSpend       float64 `json:"total_spend"`
	TotalImpressions int64   `json:"total_impressions"`
	Budget           float64 `json:"budget"`
	SpendPercentage  float64 `json:"spend_percentage"`
}

// CampaignTotalRow is one campaign's lifetime totals.
type CampaignTotalRow struct {
	CampaignID       string  `json:"campaign_id"`
	CampaignName     string  `json:"campaign_name"`
	TotalSpend       float64 `json:"total_spend"`
	TotalImpressions int64   `json:"total_impressions"`
	Budget           float64 `json:"budget"`
	SpendPercentage  float64 `json:"spend_percentage"`
}

// PortfolioTotalRow is the single row of portfolio_total. DateRange is a
// human-readable "<min> to <max>" span; averages divide by the inclusive
// day span between the first and last record dates.
type PortfolioTotalRow struct {
	TotalSpend          float64 `json:"total_spend"`
	TotalBudget         float64 `json:"total_budget"`
	SpendPercentage     float64 `json:"spend_percentage"`
	AvgDailySpend       float64 `json:"avg_daily_spend"`
	AvgDailyImpressions int64   `json:"avg_daily_impressions"`
	DateRange           string  `json:"date_range"`
}

// Rollups bundles the six derived views produced by one aggregation pass.
type Rollups struct {
	LineItemsDaily []LineItemDailyRow  `json:"line_items_daily"`
	LineItemsTotal []LineItemTotalRow  `json:"line_items_total"`
	CampaignsDaily []CampaignDailyRow  `json:"campaigns_daily"`
	CampaignsTotal []CampaignTotalRow  `json:"campaigns_total"`
	PortfolioDaily []PortfolioDailyRow `json:"portfolio_daily"`
	PortfolioTotal []PortfolioTotalRow `json:"portfolio_total"`
}

// View returns the named view's rows as an opaque slice, or nil when the
// name is not one of the six views.
func (r Rollups) View(name string) any {
	switch name {
	case ViewLineItemsDaily:
		return r.LineItemsDaily
	case ViewLineItemsTotal:
		return r.LineItemsTotal
	case ViewCampaignsDaily:
		return r.CampaignsDaily
	case ViewCampaignsTotal:
		return r.CampaignsTotal
	case ViewPortfolioDaily:
		return r.PortfolioDaily
	case ViewPortfolioTotal:
		return r.PortfolioTotal
	default:
		return nil
	}
}
