package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/config"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
)

var (
	statusTitleStyle = lipgloss.NewStyle().Bold(true)
	statusOKStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})
	statusBusyStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
	statusMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "243", Dark: "245"})
)

// daemonStatus mirrors the daemon's /status response shape.
type daemonStatus struct {
	Running       bool            `json:"running"`
	State         string          `json:"state"`
	LastPassStart time.Time       `json:"last_pass_start"`
	Stats         reconcile.Stats `json:"stats"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show a running daemon's sync status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		url := fmt.Sprintf("http://%s/status", cfg.Listen)
		client := &http.Client{Timeout: 5 * time.Second}
		resp, err := client.Get(url)
		if err != nil {
			return fmt.Errorf("daemon not reachable at %s (is `ngsync serve` running?): %w", cfg.Listen, err)
		}
		defer resp.Body.Close()

		if jsonOutput {
			_, err := io.Copy(os.Stdout, resp.Body)
			return err
		}

		var st daemonStatus
		if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
			return fmt.Errorf("decoding status: %w", err)
		}
		printStatus(st)
		return nil
	},
}

func printStatus(st daemonStatus) {
	styled := term.IsTerminal(int(os.Stdout.Fd()))
	render := func(s lipgloss.Style, text string) string {
		if !styled {
			return text
		}
		return s.Render(text)
	}

	state := st.State
	stateStyle := statusOKStyle
	if st.Running {
		stateStyle = statusBusyStyle
	}

	fmt.Println(render(statusTitleStyle, "ngsync daemon"))
	fmt.Printf("  state:      %s\n", render(stateStyle, state))
	if st.LastPassStart.IsZero() {
		fmt.Printf("  last pass:  %s\n", render(statusMutedStyle, "never"))
	} else {
		fmt.Printf("  last pass:  %s (%s ago)\n",
			st.LastPassStart.Local().Format(time.RFC3339),
			time.Since(st.LastPassStart).Round(time.Second))
	}
	fmt.Printf("  passes:     %d\n", st.Stats.Passes)
	fmt.Printf("  created:    %d\n", st.Stats.Created)
	fmt.Printf("  updated:    %d\n", st.Stats.Updated)
	fmt.Printf("  errors:     %d\n", st.Stats.Errors)
}
