package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/config"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
)

// timePrecision rounds durations for human-readable output.
const timePrecision = time.Millisecond

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one reconciliation pass and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		runner, err := buildRunner(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}

		res, err := runner.RunOnce(cmd.Context())
		if res == nil {
			return err
		}
		printResult(res)
		if !res.Success {
			os.Exit(1)
		}
		return nil
	},
}

func printResult(res *reconcile.PassResult) {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.Encode(res)
		return
	}

	outcome := "ok"
	if !res.Success {
		outcome = "failed"
	}
	fmt.Printf("Pass %s in %s: %d created, %d updated, %d skipped, %d errors\n",
		outcome, res.Duration.Round(timePrecision),
		res.Stats.Created, res.Stats.Updated, res.Stats.Skipped, res.Stats.Errors)
	if res.Error != "" {
		fmt.Printf("  error: %s\n", res.Error)
	}
}
