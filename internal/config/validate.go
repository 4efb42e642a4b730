package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Error lets a failed Validation travel as an error.
func (v Validation) Error() string {
	return "config validation failed:\n- " + strings.Join(v.Errors, "\n- ")
}

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// NormalizeAndValidate returns a trimmed copy of cfg and the problems found.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.App.Host = strings.TrimSpace(out.App.Host)
	out.Data.Path = strings.TrimSpace(out.Data.Path)
	out.Dashboard.Title = strings.TrimSpace(out.Dashboard.Title)
	out.Logging.Level = strings.ToLower(strings.TrimSpace(out.Logging.Level))

	var origins []string
	for _, o := range out.App.AllowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			continue
		}
		origins = append(origins, o)
	}
	out.App.AllowedOrigins = origins

	// drop featured entries without an image
	var featured []Property
	for _, p := range out.Dashboard.Featured {
		p.URL = strings.TrimSpace(p.URL)
		p.Caption = strings.TrimSpace(p.Caption)
		if p.URL == "" {
			continue
		}
		featured = append(featured, p)
	}
	out.Dashboard.Featured = featured

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.App.Host == "" {
		res.addErr("app.host is required")
	} else if out.App.Host != "127.0.0.1" && out.App.Host != "localhost" && out.App.Host != "::1" {
		res.addWarn("app.host %q exposes the dashboard beyond this machine", out.App.Host)
	}

	for i, o := range out.App.AllowedOrigins {
		u, err := url.Parse(o)
		if err != nil || u.Scheme == "" || u.Host == "" || u.Path != "" {
			res.addErr("app.allowed_origins[%d] must be scheme://host[:port], got %q", i, o)
		}
	}

	if out.Data.Path == "" {
		res.addErr("data.path is required")
	}

	if out.Dashboard.HistogramBins <= 0 {
		res.addErr("dashboard.histogram_bins must be > 0")
	} else if out.Dashboard.HistogramBins > 100 {
		res.addWarn("dashboard.histogram_bins is very high (%d); bars will be hard to read.", out.Dashboard.HistogramBins)
	}
	if out.Dashboard.Title == "" {
		res.addWarn("dashboard.title is empty")
	}
	for i, p := range out.Dashboard.Featured {
		u, err := url.Parse(p.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("dashboard.featured[%d].url is not an absolute URL: %q", i, p.URL)
		}
	}

	if out.Export.RatePerSec <= 0 {
		res.addErr("export.rate_per_sec must be > 0")
	}
	if out.Export.Burst <= 0 {
		res.addErr("export.burst must be > 0")
	}
	if out.Export.ChartRatePerSec <= 0 {
		res.addErr("export.chart_rate_per_sec must be > 0")
	}
	if out.Export.ChartBurst <= 0 {
		res.addErr("export.chart_burst must be > 0")
	}

	if out.Logging.Level == "" {
		out.Logging.Level = "info"
	}
	if !logLevels[out.Logging.Level] {
		res.addErr("logging.level must be one of debug, info, warn, error (got %q)", out.Logging.Level)
	}

	return out, res
}
