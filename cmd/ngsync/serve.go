package main

import (
	"github.com/spf13/cobra"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/config"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/daemon"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run as a daemon: scheduled passes plus an HTTP control endpoint",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		runner, err := buildRunner(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}

		// Hot-reload re-reads policies, skew, and limits; credentials and
		// the listen address stay fixed until restart.
		reload := func() (reconcile.Options, error) {
			fresh, err := config.Load(path)
			if err != nil {
				return reconcile.Options{}, err
			}
			return fresh.EngineOptions(), nil
		}

		d := daemon.New(runner, daemon.Config{
			Interval:   cfg.Interval,
			Listen:     cfg.Listen,
			ConfigPath: path,
		}, log, reload)

		log.Info("starting daemon", "interval", cfg.Interval, "listen", cfg.Listen)
		return d.Run(cmd.Context())
	},
}
