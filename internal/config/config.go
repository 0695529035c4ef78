// Package config loads the single ngsync configuration surface: a YAML file
// plus environment overrides, validated with typed string enums that warn
// and fall back to defaults rather than failing startup.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/retry"
)

// NotionConfig configures the side A adapter.
type NotionConfig struct {
	Token      string `mapstructure:"token" yaml:"token"`
	DatabaseID string `mapstructure:"database_id" yaml:"database_id"`
	NotesLimit int    `mapstructure:"notes_limit" yaml:"notes_limit"`
}

// GTasksConfig configures the side B adapter.
type GTasksConfig struct {
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`
	TokenFile       string `mapstructure:"token_file" yaml:"token_file"`
	// Tasklist is the display title of the list to sync; empty uses the
	// account's default list.
	Tasklist   string `mapstructure:"tasklist" yaml:"tasklist"`
	NotesLimit int    `mapstructure:"notes_limit" yaml:"notes_limit"`
}

// RetryConfig bounds per-request retries in both store adapters.
type RetryConfig struct {
	MaxAttempts  int           `mapstructure:"max_attempts" yaml:"max_attempts"`
	InitialDelay time.Duration `mapstructure:"initial_delay" yaml:"initial_delay"`
}

// Config is the full configuration surface, selected at startup.
type Config struct {
	Interval         time.Duration    `mapstructure:"interval" yaml:"interval"`
	Listen           string           `mapstructure:"listen" yaml:"listen"`
	SkewMS           int              `mapstructure:"skew_ms" yaml:"skew_ms"`
	GuardDebounce    time.Duration    `mapstructure:"guard_debounce" yaml:"guard_debounce"`
	CompletionPolicy CompletionPolicy `mapstructure:"completion_policy" yaml:"completion_policy"`
	NotesPolicy      NotesPolicy      `mapstructure:"notes_policy" yaml:"notes_policy"`
	CreateDirection  CreateDirection  `mapstructure:"create_direction" yaml:"create_direction"`
	LogLevel         string           `mapstructure:"log_level" yaml:"log_level"`
	LogJSON          bool             `mapstructure:"log_json" yaml:"log_json"`
	Notion           NotionConfig     `mapstructure:"notion" yaml:"notion"`
	GTasks           GTasksConfig     `mapstructure:"gtasks" yaml:"gtasks"`
	Retry            RetryConfig      `mapstructure:"retry" yaml:"retry"`
}

// DefaultConfig carries all documented defaults.
func DefaultConfig() *Config {
	return &Config{
		Interval:         5 * time.Minute,
		Listen:           "127.0.0.1:8337",
		SkewMS:           2000,
		GuardDebounce:    2 * time.Second,
		CompletionPolicy: CompletionLatestWins,
		NotesPolicy:      NotesLatestWins,
		CreateDirection:  CreateBidirectional,
		LogLevel:         "info",
		Notion: NotionConfig{
			NotesLimit: 2000,
		},
		GTasks: GTasksConfig{
			CredentialsFile: filepath.Join(configDir(), "credentials.json"),
			TokenFile:       filepath.Join(configDir(), "token.json"),
			NotesLimit:      8000,
		},
		Retry: RetryConfig{
			MaxAttempts:  3,
			InitialDelay: time.Second,
		},
	}
}

// DefaultPath is where Load looks when no --config flag is given.
func DefaultPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ngsync"
	}
	return filepath.Join(home, ".config", "ngsync")
}

// Load reads the config file at path (DefaultPath when empty), applies
// NGSYNC_* and NOTION_TOKEN environment overrides, and normalizes enums.
// A missing file is not an error: env plus defaults is a valid setup.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)

	def := DefaultConfig()
	v.SetDefault("interval", def.Interval)
	v.SetDefault("listen", def.Listen)
	v.SetDefault("skew_ms", def.SkewMS)
	v.SetDefault("guard_debounce", def.GuardDebounce)
	v.SetDefault("completion_policy", string(def.CompletionPolicy))
	v.SetDefault("notes_policy", string(def.NotesPolicy))
	v.SetDefault("create_direction", string(def.CreateDirection))
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_json", def.LogJSON)
	v.SetDefault("notion.notes_limit", def.Notion.NotesLimit)
	v.SetDefault("gtasks.credentials_file", def.GTasks.CredentialsFile)
	v.SetDefault("gtasks.token_file", def.GTasks.TokenFile)
	v.SetDefault("gtasks.notes_limit", def.GTasks.NotesLimit)
	v.SetDefault("retry.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("retry.initial_delay", def.Retry.InitialDelay)

	v.SetEnvPrefix("NGSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("notion.token", "NOTION_TOKEN", "NGSYNC_NOTION_TOKEN")
	_ = v.BindEnv("notion.database_id", "NGSYNC_NOTION_DATABASE_ID")

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.normalize()
	return &cfg, nil
}

// normalize validates enum fields in place, warning and falling back to
// defaults on invalid values.
func (c *Config) normalize() {
	c.CompletionPolicy = normalizeCompletionPolicy(c.CompletionPolicy)
	c.NotesPolicy = normalizeNotesPolicy(c.NotesPolicy)
	c.CreateDirection = normalizeCreateDirection(c.CreateDirection)
	if c.SkewMS < 0 {
		fmt.Fprintf(os.Stderr, "Warning: negative skew_ms %d in config, using default 2000\n", c.SkewMS)
		c.SkewMS = 2000
	}
	if c.Retry.MaxAttempts < 1 {
		c.Retry.MaxAttempts = 1
	}
}

// ValidateStoreCredentials checks the fields a sync pass cannot run without.
func (c *Config) ValidateStoreCredentials() error {
	if c.Notion.Token == "" {
		return errors.New("notion.token is required (config file or NOTION_TOKEN)")
	}
	if c.Notion.DatabaseID == "" {
		return errors.New("notion.database_id is required")
	}
	if c.GTasks.CredentialsFile == "" {
		return errors.New("gtasks.credentials_file is required")
	}
	return nil
}

// Skew converts the configured millisecond tolerance to a duration.
func (c *Config) Skew() time.Duration {
	return time.Duration(c.SkewMS) * time.Millisecond
}

// EngineOptions maps the user-facing policy spellings onto the side-agnostic
// engine surface. Notion is side A; Google Tasks is side B.
func (c *Config) EngineOptions() reconcile.Options {
	return reconcile.Options{
		Skew:             c.Skew(),
		GuardDebounce:    c.GuardDebounce,
		CompletionPolicy: c.CompletionPolicy.engine(),
		NotesPolicy:      c.NotesPolicy.engine(),
		CreateDirection:  c.CreateDirection.engine(),
		NotesLimitA:      c.Notion.NotesLimit,
		NotesLimitB:      c.GTasks.NotesLimit,
	}
}

// RetryOptions maps the retry section onto the shared retry utility.
func (c *Config) RetryOptions() retry.Config {
	return retry.Config{
		MaxAttempts:  c.Retry.MaxAttempts,
		InitialDelay: c.Retry.InitialDelay,
	}
}
