package httpadapter

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"adpace/internal/core/port"
	"adpace/internal/observability"
)

// handlePacing computes budget pacing for one campaign. Required query
// parameter: `campaign_id`. Optional: `from` and `to` (YYYY-MM-DD, default
// to the campaign flight) and `tz` (IANA name or abbreviation). A window
// with no data produces HTTP 422 with the degraded report body rather than
// an error, so dashboards can still display something.
func (h *Handler) handlePacing(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePacingReq(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Pacing(r.Context(), req)
	if err != nil {
		h.pacingError(w, "pacing", err)
		return
	}
	if report.Err != nil {
		observability.ReportsGenerated.WithLabelValues("pacing", "degraded").Inc()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		h.writeBody(w, map[string]any{
			"error":  report.Err.Error(),
			"report": report.Text,
		})
		return
	}

	observability.ReportsGenerated.WithLabelValues("pacing", "ok").Inc()
	h.writeJSON(w, map[string]any{
		"result": report.Result,
		"report": report.Text,
	})
}

// handlePacingDailyCSV returns the per-day pacing CSV for the same window
// selection as handlePacing.
func (h *Handler) handlePacingDailyCSV(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parsePacingReq(w, r)
	if !ok {
		return
	}

	body, err := h.svc.PacingCSV(r.Context(), req)
	if err != nil {
		h.pacingError(w, "pacing_csv", err)
		return
	}
	observability.ReportsGenerated.WithLabelValues("pacing_csv", "ok").Inc()
	writeCSV(w, "pacing_daily.csv", body)
}

func (h *Handler) parsePacingReq(w http.ResponseWriter, r *http.Request) (port.PacingReq, bool) {
	q := r.URL.Query()
	req := port.PacingReq{
		CampaignID: q.Get("campaign_id"),
		Timezone:   q.Get("tz"),
	}
	if req.CampaignID == "" {
		http.Error(w, "missing campaign_id", http.StatusBadRequest)
		return req, false
	}
	if fromStr := q.Get("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			http.Error(w, "invalid 'from' date", http.StatusBadRequest)
			return req, false
		}
		req.From = &from
	}
	if toStr := q.Get("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			http.Error(w, "invalid 'to' date", http.StatusBadRequest)
			return req, false
		}
		req.To = &to
	}
	return req, true
}

func (h *Handler) pacingError(w http.ResponseWriter, kind string, err error) {
	if errors.Is(err, port.ErrCampaignNotFound) {
		http.Error(w, "campaign not found", http.StatusNotFound)
		return
	}
	observability.ReportsGenerated.WithLabelValues(kind, "error").Inc()
	h.logger.Error("pacing error", slog.String("kind", kind), slog.Any("error", err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
