package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpace/internal/core/domain"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rec(d time.Time, campaign, lineItem string, spend float64, impressions int64) domain.LineItemRecord {
	return domain.LineItemRecord{
		Date:         d,
		CampaignID:   campaign,
		CampaignName: "Campaign " + campaign,
		LineItemID:   lineItem,
		LineItemName: "Line " + lineItem,
		Spend:        spend,
		Impressions:  impressions,
	}
}

func sampleCampaigns() []domain.Campaign {
	return []domain.Campaign{
		{ID: "c1", Name: "Campaign c1", Budget: 10000, StartDate: day(2025, 3, 1), EndDate: day(2025, 3, 31)},
		{ID: "c2", Name: "Campaign c2", Budget: 5000, StartDate: day(2025, 3, 1), EndDate: day(2025, 3, 31)},
	}
}

func sampleRecords() []domain.LineItemRecord {
	return []domain.LineItemRecord{
		rec(day(2025, 3, 1), "c1", "li-1", 100, 1000),
		rec(day(2025, 3, 2), "c1", "li-1", 150, 1500),
		rec(day(2025, 3, 1), "c1", "li-2", 50, 500),
		rec(day(2025, 3, 2), "c1", "li-2", 0, 0),
		rec(day(2025, 3, 3), "c1", "li-2", 75, 750),
		rec(day(2025, 3, 2), "c2", "li-3", 200, 2000),
		rec(day(2025, 3, 3), "c2", "li-3", 300, 3000),
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	rollups := Aggregate(nil, sampleCampaigns())
	assert.Empty(t, rollups.LineItemsDaily)
	assert.Empty(t, rollups.LineItemsTotal)
	assert.Empty(t, rollups.CampaignsDaily)
	assert.Empty(t, rollups.CampaignsTotal)
	assert.Empty(t, rollups.PortfolioDaily)
	assert.Empty(t, rollups.PortfolioTotal)
}

func TestSpendConservationAcrossGrains(t *testing.T) {
	rollups := Aggregate(sampleRecords(), sampleCampaigns())

	var lineItemSum, campaignSum float64
	for _, row := range rollups.LineItemsTotal {
		lineItemSum += row.TotalSpend
	}
	for _, row := range rollups.CampaignsTotal {
		campaignSum += row.TotalSpend
	}
	require.Len(t, rollups.PortfolioTotal, 1)
	portfolio := rollups.PortfolioTotal[0].TotalSpend

	assert.InDelta(t, portfolio, lineItemSum, 0.01)
	assert.InDelta(t, portfolio, campaignSum, 0.01)
	assert.InDelta(t, 875.0, portfolio, 0.01)
}

func TestPrevDaySpendRatio(t *testing.T) {
	rollups := Aggregate(sampleRecords(), sampleCampaigns())

	byKey := make(map[string]domain.LineItemDailyRow)
	for _, row := range rollups.LineItemsDaily {
		byKey[row.LineItemID+"|"+row.Date.Format("2006-01-02")] = row
	}

	// first date of every group has no ratio
	assert.Nil(t, byKey["li-1|2025-03-01"].PrevDaySpendRatio)
	assert.Nil(t, byKey["li-2|2025-03-01"].PrevDaySpendRatio)
	assert.Nil(t, byKey["li-3|2025-03-02"].PrevDaySpendRatio)

	// 150/100
	require.NotNil(t, byKey["li-1|2025-03-02"].PrevDaySpendRatio)
	assert.Equal(t, 1.5, *byKey["li-1|2025-03-02"].PrevDaySpendRatio)

	// previous day spend was exactly zero -> no ratio
	assert.Nil(t, byKey["li-2|2025-03-03"].PrevDaySpendRatio)
}

func TestPrevDayRatioUsesPreviousPresentDate(t *testing.T) {
	// gap between Mar 1 and Mar 5: the ratio is against Mar 1, not Mar 4
	records := []domain.LineItemRecord{
		rec(day(2025, 3, 1), "c1", "li-1", 100, 0),
		rec(day(2025, 3, 5), "c1", "li-1", 250, 0),
	}
	rollups := Aggregate(records, nil)
	require.Len(t, rollups.LineItemsDaily, 2)

	// rows sorted (line_item_id desc, date desc): index 0 is Mar 5
	require.NotNil(t, rollups.LineItemsDaily[0].PrevDaySpendRatio)
	assert.Equal(t, 2.5, *rollups.LineItemsDaily[0].PrevDaySpendRatio)
}

func TestLineItemsDailySortOrder(t *testing.T) {
	rollups := Aggregate(sampleRecords(), sampleCampaigns())
	rows := rollups.LineItemsDaily
	for i := 1; i < len(rows); i++ {
		if rows[i-1].LineItemID == rows[i].LineItemID {
			assert.True(t, rows[i-1].Date.After(rows[i].Date))
		} else {
			assert.Greater(t, rows[i-1].LineItemID, rows[i].LineItemID)
		}
	}
}

func TestCampaignsDailySumsLineItemsFirst(t *testing.T) {
	rollups := Aggregate(sampleRecords(), sampleCampaigns())

	var mar1 *domain.CampaignDailyRow
	for i, row := range rollups.CampaignsDaily {
		if row.CampaignID == "c1" && row.Date.Equal(day(2025, 3, 1)) {
			mar1 = &rollups.CampaignsDaily[i]
		}
	}
	require.NotNil(t, mar1)
	assert.Equal(t, 150.0, mar1.Spend) // 100 + 50
	assert.Equal(t, int64(1500), mar1.Impressions)
}

func TestPortfolioDailyCountsDistinctCampaigns(t *testing.T) {
	rollups := Aggregate(sampleRecords(), sampleCampaigns())
	require.Len(t, rollups.PortfolioDaily, 3)

	assert.Equal(t, 1, rollups.PortfolioDaily[0].TotalCampaigns) // Mar 1: c1 only
	assert.Equal(t, 2, rollups.PortfolioDaily[1].TotalCampaigns) // Mar 2: c1+c2
	assert.Equal(t, 350.0, rollups.PortfolioDaily[1].Spend)
}

func TestSpendPercentageZeroBudget(t *testing.T) {
	records := []domain.LineItemRecord{rec(day(2025, 3, 1), "c1", "li-1", 100, 0)}
	campaigns := []domain.Campaign{{ID: "c1", Budget: 0}}
	rollups := Aggregate(records, campaigns)

	require.Len(t, rollups.CampaignsTotal, 1)
	assert.Zero(t, rollups.CampaignsTotal[0].SpendPercentage)
	require.Len(t, rollups.LineItemsTotal, 1)
	assert.Zero(t, rollups.LineItemsTotal[0].SpendPercentage)
	require.Len(t, rollups.PortfolioTotal, 1)
	assert.Zero(t, rollups.PortfolioTotal[0].SpendPercentage)
}

func TestTotalsSortedBySpendPercentage(t *testing.T) {
	rollups := Aggregate(sampleRecords(), sampleCampaigns())
	rows := rollups.CampaignsTotal
	require.Len(t, rows, 2)
	// c2: 500/5000 = 0.1000, c1: 375/10000 = 0.0375
	assert.Equal(t, "c2", rows[0].CampaignID)
	assert.Equal(t, 0.1, rows[0].SpendPercentage)
	assert.Equal(t, 0.0375, rows[1].SpendPercentage)
}

func TestPortfolioTotalAverages(t *testing.T) {
	rollups := Aggregate(sampleRecords(), sampleCampaigns())
	require.Len(t, rollups.PortfolioTotal, 1)
	total := rollups.PortfolioTotal[0]

	// span: Mar 1 to Mar 3 = 3 days
	assert.InDelta(t, 875.0/3, total.AvgDailySpend, 0.01)
	assert.Equal(t, int64(8750/3), total.AvgDailyImpressions)
	assert.Equal(t, "2025-03-01 to 2025-03-03", total.DateRange)
	assert.Equal(t, 15000.0, total.TotalBudget)
}

func TestCommonNamePrefix(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"separator boundary", []string{"Acme Media - Brand A", "Acme Media - Brand B"}, "Acme Media - Brand "},
		{"mid-word prefix discarded", []string{"Campaign1", "Campaign2"}, ""},
		{"too short", []string{"A 1", "A 2"}, ""},
		{"single name", []string{"Acme - Only"}, ""},
		{"no common prefix", []string{"Alpha", "Beta"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommonNamePrefix(tt.names))
		})
	}
}

func TestNamePrefixStripping(t *testing.T) {
	records := []domain.LineItemRecord{
		{Date: day(2025, 3, 1), CampaignID: "c1", CampaignName: "Acme Media - US", LineItemID: "li-1", LineItemName: "Acme Media - US - Video", Spend: 10},
		{Date: day(2025, 3, 1), CampaignID: "c2", CampaignName: "Acme Media - EU", LineItemID: "li-2", LineItemName: "Acme Media - US - Display", Spend: 10},
	}
	rollups := Aggregate(records, nil)

	names := map[string]bool{}
	for _, row := range rollups.CampaignsDaily {
		names[row.CampaignName] = true
	}
	assert.True(t, names["US"])
	assert.True(t, names["EU"])

	itemNames := map[string]bool{}
	for _, row := range rollups.LineItemsDaily {
		itemNames[row.LineItemName] = true
	}
	assert.True(t, itemNames["Video"])
	assert.True(t, itemNames["Display"])
}

func TestAggregateIdempotent(t *testing.T) {
	records := sampleRecords()
	campaigns := sampleCampaigns()
	first := Aggregate(records, campaigns)
	second := Aggregate(records, campaigns)
	assert.Equal(t, first, second)
}
