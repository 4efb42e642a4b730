package view

import (
	"leaddash/internal/config"
	"leaddash/internal/metrics"
)

// Option configures Render.
type Option func(*settings)

type settings struct {
	Title    string
	Subtitle string
	Bins     int
	Featured []config.Property
}

func WithTitle(title, subtitle string) Option {
	return func(s *settings) {
		s.Title = title
		s.Subtitle = subtitle
	}
}

func WithBins(n int) Option {
	return func(s *settings) {
		s.Bins = n
	}
}

func WithFeatured(props []config.Property) Option {
	return func(s *settings) {
		s.Featured = props
	}
}

// FromConfig applies the dashboard section of cfg.
func FromConfig(cfg config.Config) Option {
	return func(s *settings) {
		s.Title = cfg.Dashboard.Title
		s.Subtitle = cfg.Dashboard.Subtitle
		s.Bins = cfg.Dashboard.HistogramBins
		s.Featured = cfg.Dashboard.Featured
	}
}

func applyOptions(opts []Option) *settings {
	s := &settings{Bins: metrics.DefaultBins}
	for _, opt := range opts {
		opt(s)
	}
	if s.Bins <= 0 {
		s.Bins = metrics.DefaultBins
	}
	return s
}
