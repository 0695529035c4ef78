package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// Engine runs one reconciliation pass between two stores. It holds no state
// across passes; the Runner owns stats and single-flight enforcement.
type Engine struct {
	a, b Store
	opts Options
	log  *slog.Logger
}

// NewEngine wires an engine to its two stores. Clients are constructed once
// at process start and passed in; the engine has no hidden globals.
func NewEngine(a, b Store, opts Options, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Engine{a: a, b: b, opts: opts, log: log}
}

// SetOptions swaps the engine's configuration. Called by the Runner between
// passes only (single-runner invariant), so no locking is needed here.
func (e *Engine) SetOptions(opts Options) {
	e.opts = opts
}

// RunPass executes one full pass: fetch both snapshots concurrently, plan,
// then apply sequentially. A fetch failure aborts the pass before any plan
// is computed; apply failures are isolated per operation and the pass
// continues, so one bad record cannot block convergence of the rest.
func (e *Engine) RunPass(ctx context.Context) (*PassResult, error) {
	res := &PassResult{StartedAt: time.Now().UTC()}
	defer func() { res.Duration = time.Since(res.StartedAt) }()

	var snapA, snapB task.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := e.a.FetchAll(gctx)
		if err != nil {
			return fmt.Errorf("fetching %s snapshot: %w", e.a.Name(), err)
		}
		snapA = snap
		return nil
	})
	g.Go(func() error {
		snap, err := e.b.FetchAll(gctx)
		if err != nil {
			return fmt.Errorf("fetching %s snapshot: %w", e.b.Name(), err)
		}
		snapB = snap
		return nil
	})
	if err := g.Wait(); err != nil {
		res.Stats.Errors++
		res.Error = err.Error()
		e.log.Error("pass aborted", "error", err)
		return res, err
	}

	e.log.Debug("snapshots fetched",
		e.a.Name(), len(snapA), e.b.Name(), len(snapB))
	if e.log.Enabled(ctx, slog.LevelDebug) {
		e.logDuplicateTitles(e.a.Name(), snapA)
		e.logDuplicateTitles(e.b.Name(), snapB)
	}

	p := buildPlan(snapA, snapB, e.opts)

	// Apply order is fixed: completion before notes, A before B, then the
	// A-to-B create scan before B-to-A. Writes stay sequential — both
	// stores have undocumented rate limits.
	for _, op := range p.updates() {
		e.applyUpdate(ctx, op, &res.Stats)
	}
	for _, rec := range p.createOnB {
		e.applyCreate(ctx, SideB, rec, &res.Stats)
	}
	for _, rec := range p.createOnA {
		e.applyCreate(ctx, SideA, rec, &res.Stats)
	}

	res.Success = true
	e.log.Info("pass complete",
		"created", res.Stats.Created,
		"updated", res.Stats.Updated,
		"skipped", res.Stats.Skipped,
		"errors", res.Stats.Errors,
		"duration", time.Since(res.StartedAt).Round(time.Millisecond))
	return res, nil
}

func (e *Engine) store(side Side) Store {
	if side == SideA {
		return e.a
	}
	return e.b
}

func (e *Engine) applyUpdate(ctx context.Context, op updateOp, stats *PassStats) {
	st := e.store(op.target)
	if _, err := st.Update(ctx, op.id, op.fields); err != nil {
		e.log.Warn("update failed",
			"store", st.Name(), "kind", string(op.kind), "title", op.title, "error", err)
		stats.Errors++
		return
	}
	e.log.Debug("updated", "store", st.Name(), "kind", string(op.kind), "title", op.title)
	stats.Updated++
}

// applyCreate mirrors a source record onto the target side, running the
// duplicate guard first. A guard hit is an intentional skip, not an error.
func (e *Engine) applyCreate(ctx context.Context, target Side, src task.Record, stats *PassStats) {
	st := e.store(target)

	proceed, err := e.guardAllowsCreate(ctx, st, src.Title)
	if err != nil {
		e.log.Warn("duplicate guard failed", "store", st.Name(), "title", src.Title, "error", err)
		stats.Errors++
		return
	}
	if !proceed {
		e.log.Info("create skipped, title already present", "store", st.Name(), "title", src.Title)
		stats.Skipped++
		return
	}

	out := task.Record{
		Title:     src.Title,
		Completed: src.Completed,
		Due:       src.Due,
		Notes:     Truncate(strings.TrimSpace(src.Notes), e.opts.notesLimit(target)),
	}
	created, err := st.Create(ctx, out)
	if err != nil {
		e.log.Warn("create failed", "store", st.Name(), "title", src.Title, "error", err)
		stats.Errors++
		return
	}
	e.log.Debug("created", "store", st.Name(), "title", created.Title, "id", created.ID)
	stats.Created++
}

// logDuplicateTitles surfaces same-title groups on one side. Duplicates are
// a data-quality issue the engine tolerates with a first-match tie-break,
// so they only show up in debug logging.
func (e *Engine) logDuplicateTitles(store string, snap task.Snapshot) {
	counts := make(map[string]int)
	for _, rec := range snap {
		if key := task.NormalizeTitle(rec.Title); key != "" {
			counts[key]++
		}
	}
	for key, n := range counts {
		if n > 1 {
			e.log.Debug("duplicate title group", "store", store, "title", key, "count", n)
		}
	}
}
