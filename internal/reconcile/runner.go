package reconcile

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/telemetry"
)

// ErrSyncInProgress is returned when a trigger races an in-flight pass.
// The skipped trigger is dropped, not queued; the next scheduled tick
// re-evaluates from fresh snapshots anyway.
var ErrSyncInProgress = errors.New("sync pass already in progress")

// Runner drives passes end-to-end: single-flight enforcement, cumulative
// statistics, and pass metrics. It is the only component with state that
// outlives a pass. The mutex exists because the daemon's status endpoint
// reads stats concurrently with a running pass.
type Runner struct {
	engine  *Engine
	log     *slog.Logger
	metrics *telemetry.PassMetrics

	mu      sync.Mutex
	running bool
	stats   Stats
	pending *Options // deferred option swap, applied at the next pass boundary
}

// Status is a read-only snapshot of the Runner for the daemon's HTTP layer.
type Status struct {
	Running       bool      `json:"running"`
	LastPassStart time.Time `json:"last_pass_start"`
	Stats         Stats     `json:"stats"`
}

// NewRunner creates a runner around an engine.
func NewRunner(engine *Engine, log *slog.Logger) *Runner {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		engine:  engine,
		log:     log,
		metrics: telemetry.NewPassMetrics(),
	}
}

// RunOnce executes one pass. Overlapping invocations (a manual trigger
// racing a scheduled one) get ErrSyncInProgress and are dropped.
func (r *Runner) RunOnce(ctx context.Context) (*PassResult, error) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		r.log.Info("pass trigger dropped, another pass is running")
		return nil, ErrSyncInProgress
	}
	if r.pending != nil {
		r.engine.SetOptions(*r.pending)
		r.pending = nil
	}
	r.running = true
	r.mu.Unlock()

	passCtx, endSpan := r.metrics.StartPassSpan(ctx)
	res, err := r.engine.RunPass(passCtx)
	endSpan()

	r.mu.Lock()
	r.running = false
	r.stats.record(res)
	r.mu.Unlock()

	r.metrics.RecordPass(ctx, res.Success, res.Stats.Created, res.Stats.Updated, res.Stats.Errors, res.Duration)
	return res, err
}

// Status returns a consistent snapshot of the runner state.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Status{
		Running:       r.running,
		LastPassStart: r.stats.LastPassStart,
		Stats:         r.stats,
	}
}

// ResetStats zeroes the cumulative statistics. This is the explicit
// operator action; stats never auto-reset.
func (r *Runner) ResetStats() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = Stats{}
	r.log.Info("statistics reset")
}

// SetOptions schedules a configuration swap. When no pass is running the
// swap is immediate; otherwise it takes effect at the next pass boundary so
// an in-flight pass never sees mixed options.
func (r *Runner) SetOptions(opts Options) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		r.pending = &opts
		return
	}
	r.engine.SetOptions(opts)
}
