package httpapi

import (
	"bytes"
	"net/http"

	"go.uber.org/zap"

	"leaddash/internal/config"
	"leaddash/internal/dataset"
	"leaddash/internal/detail"
	"leaddash/internal/domain"
	"leaddash/internal/filter"
	"leaddash/internal/view"
)

type DashboardHandler struct {
	Data *dataset.Cache
	Cfg  func() config.Config
	Log  *zap.Logger
}

// render runs the view pipeline for the query in r.
func (h DashboardHandler) render(r *http.Request) (view.Model, error) {
	ds, err := h.Data.Get(r.Context())
	if err != nil {
		return view.Model{}, err
	}
	q := r.URL.Query()
	req := view.Request{
		Selection: filter.ParseQuery(q, ds),
		Lead:      q.Get("lead"),
	}
	return view.Render(ds, req, view.FromConfig(h.Cfg()))
}

func (h DashboardHandler) fail(w http.ResponseWriter, r *http.Request, err error, page bool) {
	status, code, msg := classify(err)
	h.Log.Error("dashboard failed",
		zap.String("request_id", RequestIDFrom(r.Context())),
		zap.String("code", code),
		zap.Error(err),
	)
	if !page {
		WriteError(w, r, status, code, msg)
		return
	}
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "error.html", errorPage{
		Code:      code,
		Message:   msg,
		RequestID: RequestIDFrom(r.Context()),
	}); err != nil {
		http.Error(w, msg, status)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Page serves the HTML dashboard.
func (h DashboardHandler) Page(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		WriteError(w, r, http.StatusNotFound, "not_found", "no such page")
		return
	}
	m, err := h.render(r)
	if err != nil {
		h.fail(w, r, err, true)
		return
	}
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, "dashboard.html", m); err != nil {
		h.fail(w, r, err, true)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// View serves the view model as JSON.
func (h DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	m, err := h.render(r)
	if err != nil {
		h.fail(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type optionsResponse struct {
	Dimensions map[string][]string `json:"dimensions"`
	Leads      []string            `json:"leads"`
}

// Options lists every filter value and lead name in the full dataset.
func (h DashboardHandler) Options(w http.ResponseWriter, r *http.Request) {
	ds, err := h.Data.Get(r.Context())
	if err != nil {
		h.fail(w, r, err, false)
		return
	}
	writeJSON(w, http.StatusOK, buildOptions(ds))
}

func buildOptions(ds domain.Dataset) optionsResponse {
	resp := optionsResponse{
		Dimensions: make(map[string][]string, len(filter.Dimensions)),
		Leads:      detail.Names(ds),
	}
	for _, d := range filter.Dimensions {
		resp.Dimensions[string(d)] = filter.Distinct(ds, d)
	}
	return resp
}
