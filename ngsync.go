// Package ngsync provides a minimal public API for embedding the
// reconciliation engine in other programs.
//
// Most users want the ngsync CLI. This package exports only the types and
// constructors needed to drive passes programmatically against custom
// store implementations.
package ngsync

import (
	"log/slog"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// Core types for working with tasks and stores
type (
	Record   = task.Record
	Snapshot = task.Snapshot
	Store    = reconcile.Store
	Fields   = reconcile.Fields
	Options  = reconcile.Options
	Stats    = reconcile.Stats
	Runner   = reconcile.Runner
)

// Policy and direction constants
const (
	PolicyLatestWins = reconcile.PolicyLatestWins
	PolicyAWins      = reconcile.PolicyAWins
	PolicyBWins      = reconcile.PolicyBWins
	PolicyDisabled   = reconcile.PolicyDisabled

	DirectionBoth = reconcile.DirectionBoth
	DirectionAToB          = reconcile.DirectionAToB
	DirectionBToA          = reconcile.DirectionBToA
)

// ErrSyncInProgress is returned by Runner.RunOnce when a pass is already
// running.
var ErrSyncInProgress = reconcile.ErrSyncInProgress

// DefaultOptions returns the documented engine defaults.
func DefaultOptions() Options {
	return reconcile.DefaultOptions()
}

// NewRunner builds a single-flight runner reconciling stores a and b.
// A nil logger discards engine output.
func NewRunner(a, b Store, opts Options, log *slog.Logger) *Runner {
	return reconcile.NewRunner(reconcile.NewEngine(a, b, opts, log), log)
}
