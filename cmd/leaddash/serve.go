package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"leaddash/internal/config"
	"leaddash/internal/dataset"
	"leaddash/internal/events"
	"leaddash/internal/httpapi"
	"leaddash/internal/instance"
	"leaddash/internal/scheduler"
)

const (
	shutdownTimeout   = 5 * time.Second
	limiterPruneEvery = time.Minute
	limiterIdle       = 10 * time.Minute
)

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP dashboard engine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	log := a.log

	release, err := instance.Acquire(a.dataDir)
	if err != nil {
		return err
	}
	defer func() { _ = release() }()

	// Load config and keep it reloadable
	cfg, vr := a.cfg, a.validation
	if !vr.OK() {
		return vr
	}
	for _, w := range vr.Warnings {
		log.Warn("config warning", zap.String("warning", w))
	}
	var cfgVal atomic.Value // stores config.Config
	cfgVal.Store(cfg)

	// A dataset that cannot be loaded is fatal: refuse to serve an empty dashboard.
	data := dataset.NewCache(a.datasetPath(), log)
	if _, err := data.Get(ctx); err != nil {
		return fmt.Errorf("warm up dataset: %w", err)
	}

	hub := events.NewHub()
	limiter := httpapi.NewClientLimiter(cfg.Export.RatePerSec, cfg.Export.Burst)
	chartLimiter := httpapi.NewClientLimiter(cfg.Export.ChartRatePerSec, cfg.Export.ChartBurst)

	deps := httpapi.Deps{
		Data:         data,
		Hub:          hub,
		Log:          log,
		CfgVal:       &cfgVal,
		UserCfgPath:  a.userCfgPath,
		LoadCfg:      func() (config.Config, error) { return config.Load(a.userCfgPath) },
		Limiter:      limiter,
		ChartLimiter: chartLimiter,
	}
	mux := httpapi.NewMux(deps)

	srv := &http.Server{
		Handler:           httpapi.Handler(mux, deps),
		ReadHeaderTimeout: 5 * time.Second,
	}

	token := os.Getenv("LEADDASH_SHUTDOWN_TOKEN")
	if token == "" {
		if token, err = randomToken(32); err != nil {
			return err
		}
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv, log))

	ln, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return err
	}
	log.Info("engine listening",
		zap.String("url", "http://"+ln.Addr().String()),
		zap.String("data", data.Path()),
		zap.String("config", a.userCfgPath),
	)
	log.Debug("shutdown token", zap.String("token", token))

	watcher := &config.Watcher{
		Path:  a.userCfgPath,
		Store: &cfgVal,
		Log:   log,
		OnReload: func(c config.Config) {
			limiter.SetLimit(c.Export.RatePerSec, c.Export.Burst)
			chartLimiter.SetLimit(c.Export.ChartRatePerSec, c.Export.ChartBurst)
			if c.Data.Path != cfg.Data.Path {
				log.Warn("data.path changed; restart to load the new dataset", zap.String("path", c.Data.Path))
			}
			hub.Publish(events.MakeEvent("", events.TypeConfigReloaded, nil))
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// /shutdown stops the server; take the rest of the group down with it.
		defer cancel()
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return watcher.Run(gctx)
	})
	g.Go(func() error {
		scheduler.Every(gctx, limiterPruneEvery, "prune-rate-limits", log, func(context.Context) error {
			if n := limiter.Prune(limiterIdle) + chartLimiter.Prune(limiterIdle); n > 0 {
				log.Debug("pruned idle rate limits", zap.Int("clients", n))
			}
			return nil
		})
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		return srv.Shutdown(sctx)
	})

	err = g.Wait()
	log.Info("engine stopped")
	return err
}
