package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"adpace/internal/observability"
	"adpace/internal/render"
)

// handleRollupView returns one of the six rollup views. The {view} path
// parameter names the view; `?format=csv` switches the response from JSON
// rows to a CSV document with a header row. Unknown views result in HTTP
// 404, repository failures in HTTP 500.
func (h *Handler) handleRollupView(w http.ResponseWriter, r *http.Request) {
	view := chi.URLParam(r, "view")

	rollups, err := h.svc.Rollups(r.Context())
	if err != nil {
		observability.ReportsGenerated.WithLabelValues("rollup", "error").Inc()
		h.logger.Error("rollup error", slog.String("view", view), slog.Any("error", err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	rows := rollups.View(view)
	if rows == nil {
		http.Error(w, "unknown view", http.StatusNotFound)
		return
	}
	observability.ReportsGenerated.WithLabelValues("rollup", "ok").Inc()

	if r.URL.Query().Get("format") == "csv" {
		table, _ := render.RollupTable(view, rollups)
		writeCSV(w, view+".csv", table.CSV())
		return
	}
	h.writeJSON(w, rows)
}
