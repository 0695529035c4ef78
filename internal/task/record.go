// Package task defines the normalized in-memory task model shared by both
// store adapters and the reconciliation engine. Records are store-agnostic:
// adapters map their wire formats into this shape at the boundary, applying
// optional-field defaults there (missing due -> nil, missing notes -> "",
// unparseable timestamps -> zero time) so the engine never sees loose payloads.
package task

import "time"

// Record is one task, normalized regardless of origin store.
type Record struct {
	// ID is the store-assigned identifier, unique within the origin store.
	// Empty until the record has been persisted there.
	ID string

	// Title is the display string and the only cross-store join key.
	Title string

	Completed bool

	// Due is an optional calendar date. A nil Due means no due date.
	Due *time.Time

	// Notes is the plain-text body. Store-specific length limits are
	// enforced by the engine's truncator before writes, not here.
	Notes string

	// LastModified is the mutation timestamp reported by the origin store.
	// Zero when the store did not report one (treated as oldest).
	LastModified time.Time
}

// Addressable reports whether the record participates in matching and
// creation. Records with empty or whitespace-only titles are unaddressable.
func (r Record) Addressable() bool {
	return NormalizeTitle(r.Title) != ""
}

// Snapshot is one side's full task list, fetched fresh at the start of a
// pass. Snapshots are immutable within a pass; re-fetches produce new ones.
type Snapshot []Record
