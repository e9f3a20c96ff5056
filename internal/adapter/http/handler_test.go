package httpadapter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adpace/internal/core/domain"
	"adpace/internal/core/port"
)

type stubUseCase struct {
	rollups domain.Rollups
	report  *port.PacingReport
	csv     string
	outlook []domain.WeeklyOutlookRow

	rollupsErr error
	pacingErr  error
}

func (s *stubUseCase) Rollups(context.Context) (domain.Rollups, error) {
	return s.rollups, s.rollupsErr
}

func (s *stubUseCase) RefreshRollups(context.Context) error { return nil }

func (s *stubUseCase) Pacing(context.Context, port.PacingReq) (*port.PacingReport, error) {
	return s.report, s.pacingErr
}

func (s *stubUseCase) PacingCSV(context.Context, port.PacingReq) (string, error) {
	return s.csv, s.pacingErr
}

func (s *stubUseCase) Outlook(context.Context) ([]domain.WeeklyOutlookRow, error) {
	return s.outlook, nil
}

func serve(t *testing.T, svc port.ReportUseCase, target string) *http.Response {
	t.Helper()
	h := NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec.Result()
}

func TestRollupViewJSON(t *testing.T) {
	svc := &stubUseCase{rollups: domain.Rollups{
		PortfolioDaily: []domain.PortfolioDailyRow{
			{Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Spend: 100, TotalCampaigns: 1},
		},
	}}
	res := serve(t, svc, "/api/v1/rollups/portfolio_daily")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), `"total_campaigns":1`)
}

func TestRollupViewCSV(t *testing.T) {
	res := serve(t, &stubUseCase{}, "/api/v1/rollups/campaigns_total?format=csv")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "text/csv", res.Header.Get("Content-Type"))
	assert.Contains(t, res.Header.Get("Content-Disposition"), "campaigns_total.csv")
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), "campaign_id,campaign_name,total_spend")
}

func TestRollupViewUnknown(t *testing.T) {
	res := serve(t, &stubUseCase{}, "/api/v1/rollups/nope")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestRollupViewRepositoryError(t *testing.T) {
	res := serve(t, &stubUseCase{rollupsErr: assert.AnError}, "/api/v1/rollups/portfolio_daily")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
}

func TestPacingMissingCampaignID(t *testing.T) {
	res := serve(t, &stubUseCase{}, "/api/v1/pacing")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPacingBadFromDate(t *testing.T) {
	res := serve(t, &stubUseCase{}, "/api/v1/pacing?campaign_id=c1&from=03-01-2025")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestPacingCampaignNotFound(t *testing.T) {
	res := serve(t, &stubUseCase{pacingErr: port.ErrCampaignNotFound}, "/api/v1/pacing?campaign_id=nope")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestPacingOK(t *testing.T) {
	svc := &stubUseCase{report: &port.PacingReport{
		Result: domain.PacingResult{Status: domain.PaceOnPace},
		Text:   "SPEND PACING REPORT",
	}}
	res := serve(t, svc, "/api/v1/pacing?campaign_id=c1")

	require.Equal(t, http.StatusOK, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), `"status":"ON_PACE"`)
	assert.Contains(t, string(body), "SPEND PACING REPORT")
}

func TestPacingDegraded(t *testing.T) {
	svc := &stubUseCase{report: &port.PacingReport{
		Text: "No spend data found",
		Err:  port.ErrNoDataInRange,
	}}
	res := serve(t, svc, "/api/v1/pacing?campaign_id=c1")

	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), "no data in range")
	assert.Contains(t, string(body), "No spend data found")
}

func TestPacingDailyCSV(t *testing.T) {
	svc := &stubUseCase{csv: "Date,Spend,Impressions,Budget Target,Daily Variance,Status\n"}
	res := serve(t, svc, "/api/v1/pacing/daily.csv?campaign_id=c1")

	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Disposition"), "pacing_daily.csv")
}

func TestOutlook(t *testing.T) {
	spend := 70000.0
	svc := &stubUseCase{outlook: []domain.WeeklyOutlookRow{{
		WeekStart:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		WeekEnd:         time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
		PastSpend:       &spend,
		BudgetAllocated: 70000,
	}}}
	res := serve(t, svc, "/api/v1/outlook")

	require.Equal(t, http.StatusOK, res.StatusCode)
	body, _ := io.ReadAll(res.Body)
	assert.Contains(t, string(body), `"past_spend":70000`)
	assert.Contains(t, string(body), `"forecast_spend":null`)
}
