// ngsync keeps a Notion database and a Google Tasks list converged on
// completion state, notes, and task existence, matching tasks by title.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/config"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/debug"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/gtasks"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/notion"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/telemetry"
)

var (
	configPath  string
	verboseFlag bool
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "ngsync",
	Short: "Reconcile tasks between Notion and Google Tasks",
	Long: `ngsync converges a Notion database and a Google Tasks list: completion
state and notes flow toward the most recently edited side, and tasks that
exist on only one side are created on the other. Matching is by title;
nothing is ever deleted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: ~/.config/ngsync/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the process logger from config plus the verbose flag.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verboseFlag {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// buildRunner wires both store adapters and the engine from config.
func buildRunner(ctx context.Context, cfg *config.Config, log *slog.Logger) (*reconcile.Runner, error) {
	if err := cfg.ValidateStoreCredentials(); err != nil {
		return nil, err
	}

	notionStore := notion.NewStore(
		notion.NewClient(cfg.Notion.Token, cfg.Notion.DatabaseID, cfg.RetryOptions()), nil)

	hc, err := gtasks.NewHTTPClient(ctx, gtasks.AuthConfig{
		CredentialsFile: cfg.GTasks.CredentialsFile,
		TokenFile:       cfg.GTasks.TokenFile,
	})
	if err != nil {
		return nil, fmt.Errorf("google tasks auth: %w", err)
	}
	gtClient, err := gtasks.NewClient(ctx, hc, cfg.GTasks.Tasklist, cfg.RetryOptions())
	if err != nil {
		return nil, fmt.Errorf("google tasks client: %w", err)
	}

	engine := reconcile.NewEngine(notionStore, gtasks.NewStore(gtClient), cfg.EngineOptions(), log)
	return reconcile.NewRunner(engine, log), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := telemetry.Init(ctx, "ngsync", version); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: telemetry init failed: %v\n", err)
	}
	defer telemetry.Shutdown(context.Background())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
