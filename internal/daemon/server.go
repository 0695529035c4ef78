package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
)

// server is the daemon's HTTP control surface: health, status, a manual
// pass trigger, and the stats reset. It is an operator interface bound to
// localhost, not a public API.
type server struct {
	runner  *reconcile.Runner
	log     *slog.Logger
	trigger func(ctx context.Context) (*reconcile.PassResult, error)
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /status", s.handleStatus)
	mux.HandleFunc("POST /sync", s.handleSync)
	mux.HandleFunc("POST /stats/reset", s.handleStatsReset)
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleStatus(w http.ResponseWriter, r *http.Request) {
	st := s.runner.Status()
	state := "idle"
	if st.Running {
		state = "syncing"
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Running:       st.Running,
		State:         state,
		LastPassStart: st.LastPassStart,
		Stats:         st.Stats,
	})
}

func (s *server) handleSync(w http.ResponseWriter, r *http.Request) {
	res, err := s.trigger(r.Context())
	if errors.Is(err, reconcile.ErrSyncInProgress) {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "sync already in progress"})
		return
	}
	if res == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	// A pass that ran but hit per-item errors still reports its result.
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleStatsReset(w http.ResponseWriter, r *http.Request) {
	s.runner.ResetStats()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type statusResponse struct {
	Running       bool            `json:"running"`
	State         string          `json:"state"`
	LastPassStart time.Time       `json:"last_pass_start"`
	Stats         reconcile.Stats `json:"stats"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("writing response", "error", err)
	}
}
