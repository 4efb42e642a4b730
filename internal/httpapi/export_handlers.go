package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"leaddash/internal/chart"
	"leaddash/internal/events"
	"leaddash/internal/export"
)

type ExportHandler struct {
	Dash DashboardHandler
	Hub  *events.Hub
}

// CSV sends the filtered subset as an attachment.
func (h ExportHandler) CSV(w http.ResponseWriter, r *http.Request) {
	m, err := h.Dash.render(r)
	if err != nil {
		h.Dash.fail(w, r, err, false)
		return
	}
	b, err := export.CSV(m.Subset())
	if err != nil {
		h.Dash.fail(w, r, fmt.Errorf("export csv: %w", err), false)
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)

	if h.Hub != nil {
		h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeExport, map[string]any{
			"rows":  m.Metrics.Count,
			"query": m.Query,
		}))
	}
}

// Histogram draws the score distribution of the filtered subset.
// An empty subset has nothing to draw and answers 204.
func (h ExportHandler) Histogram(w http.ResponseWriter, r *http.Request) {
	m, err := h.Dash.render(r)
	if err != nil {
		h.Dash.fail(w, r, err, false)
		return
	}
	b, err := chart.HistogramPNG(m.Histogram, chart.DefaultOptions())
	if errors.Is(err, chart.ErrNoData) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.Dash.Log.Error("histogram render failed", zap.Error(err))
		WriteError(w, r, http.StatusInternalServerError, "chart_failed", "failed to render histogram")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(b)
}
