package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpace/internal/core/domain"
	"adpace/internal/core/port"
)

type fakeRecordRepo struct {
	raw      []domain.RawRecord
	upserted []domain.LineItemRecord
	listErr  error
}

func (f *fakeRecordRepo) ListRecords(_ context.Context) ([]domain.RawRecord, error) {
	return f.raw, f.listErr
}

func (f *fakeRecordRepo) UpsertRecords(_ context.Context, records []domain.LineItemRecord) error {
	f.upserted = append(f.upserted, records...)
	return nil
}

type fakeCampaignRepo struct {
	campaigns []domain.Campaign
}

func (f *fakeCampaignRepo) ListCampaigns(_ context.Context) ([]domain.Campaign, error) {
	return f.campaigns, nil
}

func (f *fakeCampaignRepo) GetCampaign(_ context.Context, id string) (*domain.Campaign, error) {
	for i := range f.campaigns {
		if f.campaigns[i].ID == id {
			return &f.campaigns[i], nil
		}
	}
	return nil, port.ErrCampaignNotFound
}

type fakeRollupRepo struct {
	saved   *domain.Rollups
	saveErr error
}

func (f *fakeRollupRepo) SaveRollups(_ context.Context, rollups domain.Rollups) error {
	f.saved = &rollups
	return f.saveErr
}

// fixture: one 30-day campaign spending exactly on plan through March 15.
func newFixture() (*fakeRecordRepo, *fakeCampaignRepo, *fakeRollupRepo) {
	campaigns := &fakeCampaignRepo{campaigns: []domain.Campaign{{
		ID:        "c1",
		Name:      "Acme Media - Spring Push",
		Budget:    300000,
		StartDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 30, 0, 0, 0, 0, time.UTC),
		Status:    "active",
	}}}

	records := &fakeRecordRepo{}
	for day := 1; day <= 15; day++ {
		records.raw = append(records.raw, domain.RawRecord{
			"date":           fmt.Sprintf("2025-03-%02d", day),
			"campaign_id":    "c1",
			"campaign_name":  "Acme Media - Spring Push",
			"line_item_id":   "li-1",
			"line_item_name": "Acme Media - US Display",
			"spend":          10000.0,
			"impressions":    int64(250000),
		})
	}
	return records, campaigns, &fakeRollupRepo{}
}

func newFixtureUseCase() (*ReportUseCase, *fakeRollupRepo) {
	records, campaigns, rollups := newFixture()
	u := NewReportUseCase(records, campaigns, rollups, Config{
		Clock: func() time.Time { return time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC) },
	})
	return u, rollups
}

func TestRollupsComputesSixViews(t *testing.T) {
	u, _ := newFixtureUseCase()

	rollups, err := u.Rollups(context.Background())
	require.NoError(t, err)
	assert.Len(t, rollups.LineItemsDaily, 15)
	assert.Len(t, rollups.CampaignsDaily, 15)
	assert.Len(t, rollups.PortfolioDaily, 15)
	assert.Len(t, rollups.LineItemsTotal, 1)
	assert.Len(t, rollups.CampaignsTotal, 1)
	require.Len(t, rollups.PortfolioTotal, 1)
	assert.Equal(t, 150000.0, rollups.PortfolioTotal[0].TotalSpend)
}

func TestRollupsPropagatesRepositoryError(t *testing.T) {
	records, campaigns, rollups := newFixture()
	records.listErr = errors.New("connection refused")
	u := NewReportUseCase(records, campaigns, rollups, Config{})

	_, err := u.Rollups(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list records")
}

func TestRefreshRollupsPersists(t *testing.T) {
	u, rollups := newFixtureUseCase()

	require.NoError(t, u.RefreshRollups(context.Background()))
	require.NotNil(t, rollups.saved)
	assert.Len(t, rollups.saved.PortfolioDaily, 15)
}

func TestRefreshRollupsPropagatesSaveError(t *testing.T) {
	records, campaigns, rollups := newFixture()
	rollups.saveErr = errors.New("tx aborted")
	u := NewReportUseCase(records, campaigns, rollups, Config{})

	assert.Error(t, u.RefreshRollups(context.Background()))
}

func TestPacingOnPace(t *testing.T) {
	u, _ := newFixtureUseCase()

	report, err := u.Pacing(context.Background(), port.PacingReq{CampaignID: "c1"})
	require.NoError(t, err)
	require.NoError(t, report.Err)

	assert.Equal(t, domain.PaceOnPace, report.Result.Status)
	assert.Equal(t, 150000.0, report.Result.TotalSpend)
	assert.Equal(t, 30, report.Result.TotalDays)
	assert.False(t, report.Result.IsPartialDay)
	assert.Contains(t, report.Text, "Acme Media - Spring Push")
	assert.Contains(t, report.Text, "Status: ON PACE")
}

func TestPacingWindowOverride(t *testing.T) {
	u, _ := newFixtureUseCase()

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	report, err := u.Pacing(context.Background(), port.PacingReq{CampaignID: "c1", From: &from, To: &to})
	require.NoError(t, err)
	require.NoError(t, report.Err)
	assert.Equal(t, 10, report.Result.TotalDays)
	assert.Equal(t, 100000.0, report.Result.TotalSpend)
}

func TestPacingDegradedWhenWindowEmpty(t *testing.T) {
	u, _ := newFixtureUseCase()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	report, err := u.Pacing(context.Background(), port.PacingReq{CampaignID: "c1", From: &from, To: &to})
	require.NoError(t, err)

	assert.ErrorIs(t, report.Err, port.ErrNoDataInRange)
	assert.Contains(t, report.Text, "No spend data found between 2025-06-01 and 2025-06-30")
}

func TestPacingUnknownCampaign(t *testing.T) {
	u, _ := newFixtureUseCase()

	_, err := u.Pacing(context.Background(), port.PacingReq{CampaignID: "nope"})
	assert.ErrorIs(t, err, port.ErrCampaignNotFound)
}

func TestPacingCSV(t *testing.T) {
	u, _ := newFixtureUseCase()

	csv, err := u.PacingCSV(context.Background(), port.PacingReq{CampaignID: "c1"})
	require.NoError(t, err)
	assert.Contains(t, csv, "Date,Spend,Impressions,Budget Target,Daily Variance,Status")
	// $300,000 over 30 days: every fully-delivered day sits on target
	assert.Contains(t, csv, "2025-03-08,10000.00,250000,10000.00,0.00,On Pace")
}

func TestOutlookShape(t *testing.T) {
	u, _ := newFixtureUseCase()

	rows, err := u.Outlook(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 12)

	for i, row := range rows {
		if i < 6 {
			require.NotNil(t, row.PastSpend, "past week %d", i)
			assert.Nil(t, row.ForecastSpend, "past week %d", i)
		} else {
			assert.Nil(t, row.PastSpend, "future week %d", i)
			require.NotNil(t, row.ForecastSpend, "future week %d", i)
			assert.LessOrEqual(t, *row.ForecastSpend, row.BudgetAllocated, "future week %d", i)
		}
		// weeks are contiguous within each half; the current week sits
		// between the two and belongs to neither
		if i > 0 && i != 6 {
			assert.Equal(t, rows[i-1].WeekStart.AddDate(0, 0, 7), row.WeekStart)
		}
		assert.Equal(t, row.WeekStart.AddDate(0, 0, 6), row.WeekEnd)
	}
}

func TestOutlookPastSpendBucketed(t *testing.T) {
	u, _ := newFixtureUseCase()

	rows, err := u.Outlook(context.Background())
	require.NoError(t, err)

	// the week of March 3-9 is fully delivered at $10k/day
	var found bool
	for _, row := range rows {
		if row.WeekStart.Equal(time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)) {
			require.NotNil(t, row.PastSpend)
			assert.Equal(t, 70000.0, *row.PastSpend)
			found = true
		}
	}
	assert.True(t, found)
}
