package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"adpace/internal/core/domain"
	"adpace/internal/core/port"
	"adpace/internal/pipeline"
	"adpace/internal/render"
)

// Config carries the reporting defaults injected at construction time.
// Clock is the "now" source; it is a parameter rather than time.Now so the
// timezone-local partial-day behaviour is testable.
type Config struct {
	Timezone    string
	WeeksPast   int
	WeeksFuture int
	Clock       func() time.Time
}

// ReportUseCase implements port.ReportUseCase on top of the record and
// campaign repositories. All computation is delegated to the pipeline
// package; this layer only loads inputs, applies defaults and renders.
type ReportUseCase struct {
	records   port.RecordRepository
	campaigns port.CampaignRepository
	rollups   port.RollupRepository

	tz          string
	weeksPast   int
	weeksFuture int
	now         func() time.Time
}

// NewReportUseCase builds the usecase. Zero config fields fall back to UTC,
// six weeks in each direction and time.Now.
func NewReportUseCase(records port.RecordRepository, campaigns port.CampaignRepository, rollups port.RollupRepository, cfg Config) *ReportUseCase {
	u := &ReportUseCase{
		records:     records,
		campaigns:   campaigns,
		rollups:     rollups,
		tz:          cfg.Timezone,
		weeksPast:   cfg.WeeksPast,
		weeksFuture: cfg.WeeksFuture,
		now:         cfg.Clock,
	}
	if u.tz == "" {
		u.tz = "UTC"
	}
	if u.weeksPast == 0 {
		u.weeksPast = 6
	}
	if u.weeksFuture == 0 {
		u.weeksFuture = 6
	}
	if u.now == nil {
		u.now = time.Now
	}
	return u
}

// Rollups loads and normalizes the full record set and computes the six
// derived views. An empty upstream set yields six empty views.
func (u *ReportUseCase) Rollups(ctx context.Context) (domain.Rollups, error) {
	records, campaigns, err := u.load(ctx)
	if err != nil {
		return domain.Rollups{}, err
	}
	return pipeline.Aggregate(records, campaigns), nil
}

// RefreshRollups recomputes the views and persists them wholesale.
func (u *ReportUseCase) RefreshRollups(ctx context.Context) error {
	rollups, err := u.Rollups(ctx)
	if err != nil {
		return err
	}
	return u.rollups.SaveRollups(ctx, rollups)
}

// Pacing computes the pacing result and report text for one campaign. A
// window with no data is reported through PacingReport.Err with a degraded
// text body; only repository and unknown-campaign failures return an error.
func (u *ReportUseCase) Pacing(ctx context.Context, req port.PacingReq) (*port.PacingReport, error) {
	campaign, from, to, tz, err := u.resolvePacingInputs(ctx, req)
	if err != nil {
		return nil, err
	}

	rollups, err := u.Rollups(ctx)
	if err != nil {
		return nil, err
	}

	result, err := pipeline.ComputePacing(rollups.PortfolioDaily, from, to, campaign.Budget, tz, u.now())
	if err != nil {
		if errors.Is(err, port.ErrNoDataInRange) {
			return &port.PacingReport{
				Result: result,
				Text:   render.DegradedReportText(campaign.Name, from, to),
				Err:    err,
			}, nil
		}
		return nil, err
	}

	return &port.PacingReport{
		Result: result,
		Text:   render.ReportText(campaign.Name, result, rollups.PortfolioDaily),
	}, nil
}

// PacingCSV renders the per-day pacing table for the same window as Pacing.
func (u *ReportUseCase) PacingCSV(ctx context.Context, req port.PacingReq) (string, error) {
	campaign, from, to, _, err := u.resolvePacingInputs(ctx, req)
	if err != nil {
		return "", err
	}
	rollups, err := u.Rollups(ctx)
	if err != nil {
		return "", err
	}
	return render.PacingDailyTable(rollups.PortfolioDaily, from, to, campaign.Budget).CSV(), nil
}

// Outlook assembles the combined week table: actual spend for past weeks,
// prorated budget for every week, capped forecast for future weeks.
func (u *ReportUseCase) Outlook(ctx context.Context) ([]domain.WeeklyOutlookRow, error) {
	records, campaigns, err := u.load(ctx)
	if err != nil {
		return nil, err
	}

	loc := pipeline.ResolveLocation(u.tz)
	localNow := u.now().In(loc)
	today := time.Date(localNow.Year(), localNow.Month(), localNow.Day(), 0, 0, 0, 0, time.UTC)

	past := pipeline.PastWeeks(today, u.weeksPast)
	future := pipeline.FutureWeeks(today, u.weeksFuture)
	buckets := append(append([]domain.WeekBucket{}, past...), future...)

	allocations := pipeline.AllocateBudgets(campaigns, buckets)
	forecasts := pipeline.ForecastSpend(records, campaigns, allocations, u.weeksPast, u.weeksFuture, today)

	allocatedByWeek := make(map[time.Time]float64, len(buckets))
	for _, a := range allocations {
		allocatedByWeek[a.WeekStart] = allocatedByWeek[a.WeekStart] + a.WeeklyBudget
	}
	forecastByWeek := make(map[time.Time]float64, len(future))
	for _, f := range forecasts {
		forecastByWeek[f.WeekStart] = forecastByWeek[f.WeekStart] + f.ForecastSpend
	}
	spendByWeek := make(map[time.Time]float64, len(past))
	for _, r := range records {
		for _, bucket := range past {
			if bucket.Contains(r.Date) {
				spendByWeek[bucket.WeekStart] += r.Spend
				break
			}
		}
	}

	rows := make([]domain.WeeklyOutlookRow, 0, len(buckets))
	for _, bucket := range past {
		spend := spendByWeek[bucket.WeekStart]
		rows = append(rows, domain.WeeklyOutlookRow{
			WeekStart:       bucket.WeekStart,
			WeekEnd:         bucket.WeekEnd,
			PastSpend:       &spend,
			BudgetAllocated: allocatedByWeek[bucket.WeekStart],
		})
	}
	for _, bucket := range future {
		forecast := forecastByWeek[bucket.WeekStart]
		rows = append(rows, domain.WeeklyOutlookRow{
			WeekStart:       bucket.WeekStart,
			WeekEnd:         bucket.WeekEnd,
			BudgetAllocated: allocatedByWeek[bucket.WeekStart],
			ForecastSpend:   &forecast,
		})
	}
	return rows, nil
}

func (u *ReportUseCase) load(ctx context.Context) ([]domain.LineItemRecord, []domain.Campaign, error) {
	raw, err := u.records.ListRecords(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list records: %w", err)
	}
	campaigns, err := u.campaigns.ListCampaigns(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list campaigns: %w", err)
	}
	return pipeline.Normalize(raw), campaigns, nil
}

func (u *ReportUseCase) resolvePacingInputs(ctx context.Context, req port.PacingReq) (*domain.Campaign, time.Time, time.Time, string, error) {
	campaign, err := u.campaigns.GetCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, time.Time{}, time.Time{}, "", err
	}

	from, to := campaign.StartDate, campaign.EndDate
	if req.From != nil {
		from = *req.From
	}
	if req.To != nil {
		to = *req.To
	}
	tz := req.Timezone
	if tz == "" {
		tz = u.tz
	}
	return campaign, from, to, tz, nil
}
