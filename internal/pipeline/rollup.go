package pipeline

import (
	"sort"
	"strings"
	"time"

	"adpace/internal/core/domain"
)

// nameSeparators mark acceptable boundaries for common-prefix stripping,
// checked in order.
var nameSeparators = []string{" - ", " ", "-"}

// Aggregate computes the six rollup views from normalized records and the
// campaign catalog. The input is read-only; running twice on the same input
// yields identical output. Empty input yields six empty views.
func Aggregate(records []domain.LineItemRecord, campaigns []domain.Campaign) domain.Rollups {
	rollups := domain.Rollups{
		LineItemsDaily: []domain.LineItemDailyRow{},
		LineItemsTotal: []domain.LineItemTotalRow{},
		CampaignsDaily: []domain.CampaignDailyRow{},
		CampaignsTotal: []domain.CampaignTotalRow{},
		PortfolioDaily: []domain.PortfolioDailyRow{},
		PortfolioTotal: []domain.PortfolioTotalRow{},
	}
	if len(records) == 0 {
		return rollups
	}

	budgets := make(map[string]float64, len(campaigns))
	totalBudget := 0.0
	for _, c := range campaigns {
		budgets[c.ID] = c.Budget
		totalBudget += c.Budget
	}

	campaignNames := cleanedNames(records, func(r domain.LineItemRecord) string { return r.CampaignName })
	lineItemNames := cleanedNames(records, func(r domain.LineItemRecord) string { return r.LineItemName })

	rollups.LineItemsDaily = lineItemsDaily(records, campaignNames, lineItemNames)
	rollups.CampaignsDaily = campaignsDaily(records, campaignNames)
	rollups.PortfolioDaily = portfolioDaily(records)
	rollups.LineItemsTotal = lineItemsTotal(records, budgets, campaignNames, lineItemNames)
	rollups.CampaignsTotal = campaignsTotal(records, budgets, campaignNames)
	rollups.PortfolioTotal = portfolioTotal(records, totalBudget)
	return rollups
}

func lineItemsDaily(records []domain.LineItemRecord, campaignNames, lineItemNames map[string]string) []domain.LineItemDailyRow {
	byItem := make(map[string][]domain.LineItemRecord)
	for _, r := range records {
		byItem[r.LineItemID] = append(byItem[r.LineItemID], r)
	}

	rows := make([]domain.LineItemDailyRow, 0, len(records))
	for _, group := range byItem {
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })
		for i, r := range group {
			row := domain.LineItemDailyRow{
				Date:         r.Date,
				CampaignID:   r.CampaignID,
				CampaignName: campaignNames[r.CampaignName],
				LineItemID:   r.LineItemID,
				LineItemName: lineItemNames[r.LineItemName],
				Spend:        r.Spend,
				Impressions:  r.Impressions,
			}
			if i > 0 {
				row.PrevDaySpendRatio = spendRatio(r.Spend, group[i-1].Spend)
			}
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].LineItemID != rows[j].LineItemID {
			return rows[i].LineItemID > rows[j].LineItemID
		}
		return rows[i].Date.After(rows[j].Date)
	})
	return rows
}

func campaignsDaily(records []domain.LineItemRecord, campaignNames map[string]string) []domain.CampaignDailyRow {
	type key struct {
		campaignID string
		date       time.Time
	}
	sums := make(map[key]*domain.CampaignDailyRow)
	for _, r := range records {
		k := key{r.CampaignID, r.Date}
		row, ok := sums[k]
		if !ok {
			row = &domain.CampaignDailyRow{
				Date:         r.Date,
				CampaignID:   r.CampaignID,
				CampaignName: campaignNames[r.CampaignName],
			}
			sums[k] = row
		}
		row.Spend = round2(row.Spend + r.Spend)
		row.Impressions += r.Impressions
	}

	byCampaign := make(map[string][]*domain.CampaignDailyRow)
	for _, row := range sums {
		byCampaign[row.CampaignID] = append(byCampaign[row.CampaignID], row)
	}
	rows := make([]domain.CampaignDailyRow, 0, len(sums))
	for _, group := range byCampaign {
		sort.Slice(group, func(i, j int) bool { return group[i].Date.Before(group[j].Date) })
		for i, row := range group {
			if i > 0 {
				row.PrevDaySpendRatio = spendRatio(row.Spend, group[i-1].Spend)
			}
			rows = append(rows, *row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].CampaignID != rows[j].CampaignID {
			return rows[i].CampaignID > rows[j].CampaignID
		}
		return rows[i].Date.After(rows[j].Date)
	})
	return rows
}

func portfolioDaily(records []domain.LineItemRecord) []domain.PortfolioDailyRow {
	type daySum struct {
		row       domain.PortfolioDailyRow
		campaigns map[string]struct{}
	}
	byDate := make(map[time.Time]*daySum)
	for _, r := range records {
		d, ok := byDate[r.Date]
		if !ok {
			d = &daySum{
				row:       domain.PortfolioDailyRow{Date: r.Date},
				campaigns: make(map[string]struct{}),
			}
			byDate[r.Date] = d
		}
		d.row.Spend = round2(d.row.Spend + r.Spend)
		d.row.Impressions += r.Impressions
		d.campaigns[r.CampaignID] = struct{}{}
	}

	rows := make([]domain.PortfolioDailyRow, 0, len(byDate))
	for _, d := range byDate {
		d.row.TotalCampaigns = len(d.campaigns)
		rows = append(rows, d.row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	for i := range rows {
		if i > 0 {
			rows[i].PrevDaySpendRatio = spendRatio(rows[i].Spend, rows[i-1].Spend)
		}
	}
	return rows
}

func lineItemsTotal(records []domain.LineItemRecord, budgets map[string]float64, campaignNames, lineItemNames map[string]string) []domain.LineItemTotalRow {
	totals := make(map[string]*domain.LineItemTotalRow)
	for _, r := range records {
		row, ok := totals[r.LineItemID]
		if !ok {
			row = &domain.LineItemTotalRow{
				LineItemID:   r.LineItemID,
				LineItemName: lineItemNames[r.LineItemName],
				CampaignID:   r.CampaignID,
				CampaignName: campaignNames[r.CampaignName],
				Budget:       budgets[r.CampaignID],
			}
			totals[r.LineItemID] = row
		}
		row.TotalSpend = round2(row.TotalSpend + r.Spend)
		row.TotalImpressions += r.Impressions
	}

	rows := make([]domain.LineItemTotalRow, 0, len(totals))
	for _, row := range totals {
		row.SpendPercentage = spendPercentage(row.TotalSpend, row.Budget)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SpendPercentage != rows[j].SpendPercentage {
			return rows[i].SpendPercentage > rows[j].SpendPercentage
		}
		return rows[i].LineItemID < rows[j].LineItemID
	})
	return rows
}

func campaignsTotal(records []domain.LineItemRecord, budgets map[string]float64, campaignNames map[string]string) []domain.CampaignTotalRow {
	totals := make(map[string]*domain.CampaignTotalRow)
	for _, r := range records {
		row, ok := totals[r.CampaignID]
		if !ok {
			row = &domain.CampaignTotalRow{
				CampaignID:   r.CampaignID,
				CampaignName: campaignNames[r.CampaignName],
				Budget:       budgets[r.CampaignID],
			}
			totals[r.CampaignID] = row
		}
		row.TotalSpend = round2(row.TotalSpend + r.Spend)
		row.TotalImpressions += r.Impressions
	}

	rows := make([]domain.CampaignTotalRow, 0, len(totals))
	for _, row := range totals {
		row.SpendPercentage = spendPercentage(row.TotalSpend, row.Budget)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].SpendPercentage != rows[j].SpendPercentage {
			return rows[i].SpendPercentage > rows[j].SpendPercentage
		}
		return rows[i].CampaignID < rows[j].CampaignID
	})
	return rows
}

func portfolioTotal(records []domain.LineItemRecord, totalBudget float64) []domain.PortfolioTotalRow {
	var (
		totalSpend       float64
		totalImpressions int64
	)
	minDate, maxDate := records[0].Date, records[0].Date
	for _, r := range records {
		totalSpend = round2(totalSpend + r.Spend)
		totalImpressions += r.Impressions
		if r.Date.Before(minDate) {
			minDate = r.Date
		}
		if r.Date.After(maxDate) {
			maxDate = r.Date
		}
	}

	spanDays := daysBetween(minDate, maxDate) + 1
	return []domain.PortfolioTotalRow{{
		TotalSpend:          totalSpend,
		TotalBudget:         totalBudget,
		SpendPercentage:     spendPercentage(totalSpend, totalBudget),
		AvgDailySpend:       round2(totalSpend / float64(spanDays)),
		AvgDailyImpressions: totalImpressions / int64(spanDays),
		DateRange:           minDate.Format("2006-01-02") + " to " + maxDate.Format("2006-01-02"),
	}}
}

// spendRatio is spend(t)/spend(t-1) rounded to two places, nil when the
// previous spend is exactly zero.
func spendRatio(spend, prevSpend float64) *float64 {
	if prevSpend == 0 {
		return nil
	}
	ratio := round2(spend / prevSpend)
	return &ratio
}

// spendPercentage is spend/budget rounded to four places, 0.0 when the
// budget is not positive.
func spendPercentage(spend, budget float64) float64 {
	if budget <= 0 {
		return 0.0
	}
	return round4(spend / budget)
}

// CommonNamePrefix finds the shared prefix to strip from a name column: the
// longest common prefix of the lexicographically first and last distinct
// names, kept only when it is at least three characters long and ends at a
// separator boundary. Anything else returns "".
func CommonNamePrefix(names []string) string {
	distinct := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			distinct = append(distinct, n)
		}
	}
	if len(distinct) < 2 {
		return ""
	}
	sort.Strings(distinct)

	first, last := distinct[0], distinct[len(distinct)-1]
	i := 0
	for i < len(first) && i < len(last) && first[i] == last[i] {
		i++
	}
	prefix := first[:i]
	if len(prefix) < 3 {
		return ""
	}
	for _, sep := range nameSeparators {
		if strings.HasSuffix(prefix, sep) {
			return prefix
		}
	}
	return ""
}

// cleanedNames maps each original name to its display form with any common
// organizational prefix stripped.
func cleanedNames(records []domain.LineItemRecord, name func(domain.LineItemRecord) string) map[string]string {
	all := make([]string, 0, len(records))
	for _, r := range records {
		all = append(all, name(r))
	}
	prefix := CommonNamePrefix(all)

	cleaned := make(map[string]string, len(all))
	for _, n := range all {
		if prefix != "" && strings.HasPrefix(n, prefix) {
			cleaned[n] = n[len(prefix):]
		} else {
			cleaned[n] = n
		}
	}
	return cleaned
}
