package httpadapter

import (
	"log/slog"
	"net/http"

	"adpace/internal/observability"
	"adpace/internal/render"
)

// handleOutlook returns the combined 12-week budget/spend outlook: actual
// spend for past weeks, prorated budget for every week, capped forecast for
// future weeks. `?format=csv` returns the CSV form.
func (h *Handler) handleOutlook(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Outlook(r.Context())
	if err != nil {
		observability.ReportsGenerated.WithLabelValues("outlook", "error").Inc()
		h.logger.Error("outlook error", slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	observability.ReportsGenerated.WithLabelValues("outlook", "ok").Inc()

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, "weekly_outlook.csv", render.OutlookTable(rows).CSV())
		return
	}
	h.writeJSON(w, rows)
}
