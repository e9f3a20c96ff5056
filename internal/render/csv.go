package render

import (
	"encoding/csv"
	"strconv"
	"strings"

	"adpace/internal/core/domain"
)

// Table is a named tabular view ready for CSV or display rendering. Cells
// are pre-formatted strings; null values are empty cells.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// CSV renders the table as RFC 4180 CSV with a header row.
func (t Table) CSV() string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(t.Columns)
	for _, row := range t.Rows {
		_ = w.Write(row)
	}
	w.Flush()
	return b.String()
}

// RollupTable renders the named view of a rollup set, or false when the
// name is not one of the six views.
func RollupTable(name string, r domain.Rollups) (Table, bool) {
	switch name {
	case domain.ViewLineItemsDaily:
		return lineItemsDailyTable(r.LineItemsDaily), true
	case domain.ViewLineItemsTotal:
		return lineItemsTotalTable(r.LineItemsTotal), true
	case domain.ViewCampaignsDaily:
		return campaignsDailyTable(r.CampaignsDaily), true
	case domain.ViewCampaignsTotal:
		return campaignsTotalTable(r.CampaignsTotal), true
	case domain.ViewPortfolioDaily:
		return portfolioDailyTable(r.PortfolioDaily), true
	case domain.ViewPortfolioTotal:
		return portfolioTotalTable(r.PortfolioTotal), true
	default:
		return Table{}, false
	}
}

// RollupTables renders all six views in canonical order.
func RollupTables(r domain.Rollups) []Table {
	tables := make([]Table, 0, len(domain.ViewNames))
	for _, name := range domain.ViewNames {
		t, _ := RollupTable(name, r)
		tables = append(tables, t)
	}
	return tables
}

func lineItemsDailyTable(rows []domain.LineItemDailyRow) Table {
	t := Table{
		Name:    domain.ViewLineItemsDaily,
		Columns: []string{"date", "campaign_id", "campaign_name", "line_item_id", "line_item_name", "spend", "impressions", "prev_day_spend_ratio"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			FormatDate(r.Date), r.CampaignID, r.CampaignName, r.LineItemID, r.LineItemName,
			money(r.Spend), count(r.Impressions), ratio(r.PrevDaySpendRatio),
		})
	}
	return t
}

func campaignsDailyTable(rows []domain.CampaignDailyRow) Table {
	t := Table{
		Name:    domain.ViewCampaignsDaily,
		Columns: []string{"date", "campaign_id", "campaign_name", "spend", "impressions", "prev_day_spend_ratio"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			FormatDate(r.Date), r.CampaignID, r.CampaignName,
			money(r.Spend), count(r.Impressions), ratio(r.PrevDaySpendRatio),
		})
	}
	return t
}

func portfolioDailyTable(rows []domain.PortfolioDailyRow) Table {
	t := Table{
		Name:    domain.ViewPortfolioDaily,
		Columns: []string{"date", "spend", "impressions", "total_campaigns", "prev_day_spend_ratio"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			FormatDate(r.Date), money(r.Spend), count(r.Impressions),
			strconv.Itoa(r.TotalCampaigns), ratio(r.PrevDaySpendRatio),
		})
	}
	return t
}

func lineItemsTotalTable(rows []domain.LineItemTotalRow) Table {
	t := Table{
		Name:    domain.ViewLineItemsTotal,
		Columns: []string{"line_item_id", "line_item_name", "campaign_id", "campaign_name", "total_spend", "total_impressions", "budget", "spend_percentage"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.LineItemID, r.LineItemName, r.CampaignID, r.CampaignName,
			money(r.TotalSpend), count(r.TotalImpressions), money(r.Budget), percentage(r.SpendPercentage),
		})
	}
	return t
}

func campaignsTotalTable(rows []domain.CampaignTotalRow) Table {
	t := Table{
		Name:    domain.ViewCampaignsTotal,
		Columns: []string{"campaign_id", "campaign_name", "total_spend", "total_impressions", "budget", "spend_percentage"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			r.CampaignID, r.CampaignName,
			money(r.TotalSpend), count(r.TotalImpressions), money(r.Budget), percentage(r.SpendPercentage),
		})
	}
	return t
}

func portfolioTotalTable(rows []domain.PortfolioTotalRow) Table {
	t := Table{
		Name:    domain.ViewPortfolioTotal,
		Columns: []string{"total_spend", "total_budget", "spend_percentage", "avg_daily_spend", "avg_daily_impressions", "date_range"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			money(r.TotalSpend), money(r.TotalBudget), percentage(r.SpendPercentage),
			money(r.AvgDailySpend), count(r.AvgDailyImpressions), r.DateRange,
		})
	}
	return t
}

// OutlookTable renders the combined 12-week outlook. Past weeks leave
// forecast_spend empty; future weeks leave past_spend empty.
func OutlookTable(rows []domain.WeeklyOutlookRow) Table {
	t := Table{
		Name:    "weekly_outlook",
		Columns: []string{"week_start_date", "week_end_date", "past_spend", "budget_allocated", "forecast_spend"},
		Rows:    make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		t.Rows = append(t.Rows, []string{
			FormatDate(r.WeekStart), FormatDate(r.WeekEnd),
			optMoney(r.PastSpend), money(r.BudgetAllocated), optMoney(r.ForecastSpend),
		})
	}
	return t
}

func optMoney(v *float64) string {
	if v == nil {
		return ""
	}
	return money(*v)
}
