// Package reconcile implements the reconciliation engine: given two
// independently-fetched task snapshots, it decides which records correspond,
// which side is authoritative for each field, and applies the minimal set of
// create/update operations — idempotent, never deleting, safe to re-run on a
// fixed interval forever.
package reconcile

import (
	"context"
	"time"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// Store is the capability interface both sides implement. Field mapping,
// auth, pagination, and rate-limit handling are entirely the adapter's
// responsibility; the engine only sees normalized records.
type Store interface {
	// Name identifies the store in logs and stats ("notion", "gtasks").
	Name() string

	// FetchAll returns every non-deleted task visible to the integration,
	// including completed ones, as a fully materialized snapshot.
	FetchAll(ctx context.Context) (task.Snapshot, error)

	// Create persists a new task and returns it with its store-assigned ID.
	Create(ctx context.Context, rec task.Record) (task.Record, error)

	// Update applies only the provided fields to an existing task.
	// Safe to call with any subset of fields set.
	Update(ctx context.Context, id string, fields Fields) (task.Record, error)
}

// Fields is a partial update. Nil fields are left untouched by the store.
type Fields struct {
	Title     *string
	Completed *bool
	Notes     *string
	Due       *time.Time
}

// Side names one of the two stores in engine-internal terms. Side A is
// bound to Notion and side B to Google Tasks at process wiring time; the
// engine itself stays side-agnostic.
type Side string

const (
	SideA Side = "a"
	SideB Side = "b"
)
