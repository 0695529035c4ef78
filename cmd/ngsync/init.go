package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Interactive setup: credentials, task list, and policies",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}

		cfg := config.DefaultConfig()
		completion := string(cfg.CompletionPolicy)
		notes := string(cfg.NotesPolicy)
		direction := string(cfg.CreateDirection)
		confirmed := true

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Notion integration token").
					Description("From notion.so/my-integrations; the integration needs access to your database").
					Placeholder("secret_...").
					Value(&cfg.Notion.Token).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("token is required")
						}
						return nil
					}),

				huh.NewInput().
					Title("Notion database ID").
					Description("The 32-character ID from the database URL").
					Value(&cfg.Notion.DatabaseID).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("database ID is required")
						}
						return nil
					}),
			),

			huh.NewGroup(
				huh.NewInput().
					Title("Google OAuth credentials file").
					Description("Path to the client secrets JSON downloaded from Google Cloud Console").
					Value(&cfg.GTasks.CredentialsFile),

				huh.NewInput().
					Title("Google Tasks list").
					Description("Display title of the list to sync (empty = default list)").
					Value(&cfg.GTasks.Tasklist),
			),

			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Completion policy").
					Description("Which side wins when completion state disagrees").
					Options(
						huh.NewOption("Most recently edited side wins", "latest-wins"),
						huh.NewOption("Notion always wins", "notion-wins"),
						huh.NewOption("Google Tasks always wins", "gtasks-wins"),
					).
					Value(&completion),

				huh.NewSelect[string]().
					Title("Notes policy").
					Options(
						huh.NewOption("Most recently edited side wins", "latest-wins"),
						huh.NewOption("Notion always wins", "notion-wins"),
						huh.NewOption("Google Tasks always wins", "gtasks-wins"),
						huh.NewOption("Don't sync notes", "disabled"),
					).
					Value(&notes),

				huh.NewSelect[string]().
					Title("Create direction").
					Description("Where tasks that exist on only one side get created").
					Options(
						huh.NewOption("Both directions", "bidirectional"),
						huh.NewOption("Notion → Google Tasks only", "notion-to-gtasks"),
						huh.NewOption("Google Tasks → Notion only", "gtasks-to-notion"),
					).
					Value(&direction),

				huh.NewConfirm().
					Title(fmt.Sprintf("Write config to %s?", path)).
					Affirmative("Write").
					Negative("Cancel").
					Value(&confirmed),
			),
		)

		if err := form.Run(); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(os.Stderr, "Setup cancelled.")
				return nil
			}
			return err
		}
		if !confirmed {
			fmt.Fprintln(os.Stderr, "Setup cancelled.")
			return nil
		}

		cfg.CompletionPolicy = config.CompletionPolicy(completion)
		cfg.NotesPolicy = config.NotesPolicy(notes)
		cfg.CreateDirection = config.CreateDirection(direction)

		if err := writeConfig(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		fmt.Println("Run `ngsync run` to do a first pass; the Google authorization flow starts automatically.")
		return nil
	},
}

// writeConfig renders a commented YAML config. Durations go through a
// string round-trip because yaml.v3 would otherwise emit raw nanoseconds.
// 0600 because the file carries the Notion token.
func writeConfig(path string, cfg *config.Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	doc := map[string]any{
		"interval":          cfg.Interval.String(),
		"listen":            cfg.Listen,
		"skew_ms":           cfg.SkewMS,
		"guard_debounce":    cfg.GuardDebounce.String(),
		"completion_policy": string(cfg.CompletionPolicy),
		"notes_policy":      string(cfg.NotesPolicy),
		"create_direction":  string(cfg.CreateDirection),
		"log_level":         cfg.LogLevel,
		"log_json":          cfg.LogJSON,
		"notion": map[string]any{
			"token":       cfg.Notion.Token,
			"database_id": cfg.Notion.DatabaseID,
			"notes_limit": cfg.Notion.NotesLimit,
		},
		"gtasks": map[string]any{
			"credentials_file": cfg.GTasks.CredentialsFile,
			"token_file":       cfg.GTasks.TokenFile,
			"tasklist":         cfg.GTasks.Tasklist,
			"notes_limit":      cfg.GTasks.NotesLimit,
		},
		"retry": map[string]any{
			"max_attempts":  cfg.Retry.MaxAttempts,
			"initial_delay": cfg.Retry.InitialDelay.String(),
		},
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}
