package httpapi

import (
	"net/http"

	"leaddash/internal/config"
)

// NewMux returns the raw mux so main() can still attach /shutdown (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	log := d.logger()

	// Dashboard
	dh := DashboardHandler{Data: d.Data, Cfg: d.cfg, Log: log}
	mux.HandleFunc("/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Page,
	}))
	mux.HandleFunc("/api/view", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.View,
	}))
	mux.HandleFunc("/api/options", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Options,
	}))

	// Downloads
	xh := ExportHandler{Dash: dh, Hub: d.Hub}
	mux.HandleFunc("/export.csv", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: d.Limiter.Limit(xh.CSV),
	}))
	mux.HandleFunc("/histogram.png", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: d.ChartLimiter.Limit(xh.Histogram),
	}))

	// Health
	hh := HealthHandler{Data: d.Data}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Applied: func(c config.Config) {
			if d.Limiter != nil {
				d.Limiter.SetLimit(c.Export.RatePerSec, c.Export.Burst)
			}
			if d.ChartLimiter != nil {
				d.ChartLimiter.SetLimit(c.Export.ChartRatePerSec, c.Export.ChartBurst)
			}
		},
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))
	mux.HandleFunc("/config/validate", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Validate,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}

// Handler wraps the mux in the standard middleware stack.
func Handler(mux http.Handler, d Deps) http.Handler {
	log := d.logger()
	origins := func() []string { return d.cfg().App.AllowedOrigins }
	return Chain(mux, RequestID, Recover(log), AccessLog(log), Cors(origins))
}
