package httpapi

import (
	"sync/atomic"

	"go.uber.org/zap"

	"leaddash/internal/config"
	"leaddash/internal/dataset"
	"leaddash/internal/events"
)

type Deps struct {
	Data *dataset.Cache
	Hub  *events.Hub
	Log  *zap.Logger

	CfgVal *atomic.Value // stores config.Config

	// Config persistence
	UserCfgPath string
	LoadCfg     func() (config.Config, error)

	// Limiter guards the CSV download, ChartLimiter the histogram image.
	// Nil disables limiting.
	Limiter      *ClientLimiter
	ChartLimiter *ClientLimiter
}

func (d Deps) cfg() config.Config {
	return d.CfgVal.Load().(config.Config)
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}
