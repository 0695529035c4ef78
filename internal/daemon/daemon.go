// Package daemon hosts the long-running serve mode: a scheduler that runs
// reconciliation passes on an interval, an HTTP control surface for manual
// triggers and status, and a config watcher that hot-swaps policies between
// passes.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
)

// shutdownGrace bounds how long the HTTP server drains on shutdown.
const shutdownGrace = 5 * time.Second

// Config holds the daemon's operational settings. Changing Listen or the
// store credentials requires a restart; everything routed through Reload is
// hot-swappable.
type Config struct {
	// Interval between scheduled passes.
	Interval time.Duration
	// Listen is the HTTP control address, conventionally loopback.
	Listen string
	// ConfigPath enables hot-reload when non-empty.
	ConfigPath string
}

// Daemon wires the Runner to a scheduler, an HTTP server, and an optional
// config watcher.
type Daemon struct {
	runner *reconcile.Runner
	cfg    Config
	log    *slog.Logger

	// Reload re-reads the config file and returns fresh engine options.
	// Called after a debounced config-file change; errors keep the old
	// options in place.
	reload func() (reconcile.Options, error)

	passWG sync.WaitGroup
}

// New creates a daemon. reload may be nil to disable hot-reload.
func New(runner *reconcile.Runner, cfg Config, log *slog.Logger, reload func() (reconcile.Options, error)) *Daemon {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Daemon{runner: runner, cfg: cfg, log: log, reload: reload}
}

// Run blocks until ctx is cancelled or the HTTP server fails. Cancellation
// is graceful: an in-flight pass runs to completion before the server
// drains and Run returns.
func (d *Daemon) Run(ctx context.Context) error {
	srv := &server{
		runner:  d.runner,
		log:     d.log,
		trigger: d.runPass,
	}
	httpSrv := &http.Server{
		Addr:         d.cfg.Listen,
		Handler:      srv.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d.log.Info("control server listening", "addr", d.cfg.Listen)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("control server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		d.schedule(gctx)
		return nil
	})

	if d.cfg.ConfigPath != "" && d.reload != nil {
		g.Go(func() error {
			return watchConfig(gctx, d.cfg.ConfigPath, d.log, d.applyReload)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		d.log.Info("shutting down, waiting for in-flight pass")
		d.passWG.Wait()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// schedule runs one pass immediately, then on every tick. An in-progress
// rejection (a manual trigger raced the tick) is logged and dropped.
func (d *Daemon) schedule(ctx context.Context) {
	if _, err := d.runPass(ctx); err != nil && !errors.Is(err, reconcile.ErrSyncInProgress) {
		d.log.Warn("initial pass failed", "error", err)
	}

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, err := d.runPass(ctx)
			switch {
			case errors.Is(err, reconcile.ErrSyncInProgress):
				d.log.Info("scheduled pass skipped, sync already running")
			case err != nil:
				d.log.Warn("scheduled pass failed", "error", err)
			}
		}
	}
}

// runPass executes a pass detached from its trigger's context: neither a
// disconnecting HTTP client nor daemon shutdown cancels a pass mid-apply.
func (d *Daemon) runPass(ctx context.Context) (*reconcile.PassResult, error) {
	d.passWG.Add(1)
	defer d.passWG.Done()
	return d.runner.RunOnce(context.WithoutCancel(ctx))
}

// applyReload re-loads the configuration and swaps the engine options at
// the next pass boundary. A broken config file is logged and ignored.
func (d *Daemon) applyReload() {
	opts, err := d.reload()
	if err != nil {
		d.log.Warn("config reload failed, keeping current options", "error", err)
		return
	}
	d.runner.SetOptions(opts)
	d.log.Info("configuration reloaded")
}
