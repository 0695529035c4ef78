package reconcile

import (
	"strings"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

type opKind string

const (
	opCompletion opKind = "completion"
	opNotes      opKind = "notes"
)

// updateOp is one planned partial update against a single record.
type updateOp struct {
	target Side
	id     string
	title  string
	kind   opKind
	fields Fields
}

// plan is the computed gap between two snapshots: the updates to apply and
// the source records to mirror onto the other side. Apply order is fixed for
// idempotence on re-run: completion before notes, A-targets before B-targets.
type plan struct {
	completionA []updateOp // completion updates landing on side A
	completionB []updateOp
	notesA      []updateOp
	notesB      []updateOp

	createOnB []task.Record // A-only records to mirror to B
	createOnA []task.Record // B-only records to mirror to A
}

func (p *plan) updates() []updateOp {
	ops := make([]updateOp, 0, len(p.completionA)+len(p.completionB)+len(p.notesA)+len(p.notesB))
	ops = append(ops, p.completionA...)
	ops = append(ops, p.completionB...)
	ops = append(ops, p.notesA...)
	ops = append(ops, p.notesB...)
	return ops
}

// buildPlan computes one pass's operations from fresh snapshots of both
// sides. Pure: no I/O, no mutation of the snapshots.
func buildPlan(snapA, snapB task.Snapshot, opts Options) *plan {
	p := &plan{}
	indexB := task.BuildIndex(snapB)
	indexA := task.BuildIndex(snapA)

	// Matched pairs: walk side A, find each record's representative on B.
	// Duplicate titles on A can map to the same representative; the target
	// sets keep a planned record from being updated twice in one pass.
	plannedCompletion := map[string]bool{}
	plannedNotes := map[string]bool{}

	for _, a := range snapA {
		if !a.Addressable() {
			continue
		}
		b, ok := indexB.Match(a.Title)
		if !ok {
			continue
		}
		p.planCompletion(a, b, opts, plannedCompletion)
		p.planNotes(a, b, opts, plannedNotes)
	}

	// Create-if-missing scans. Records already completed at their origin are
	// suppressed so closed items are not resurrected as open on the other
	// side.
	if opts.createsToB() {
		for _, a := range snapA {
			if !a.Addressable() || a.Completed {
				continue
			}
			if !indexB.Has(a.Title) {
				p.createOnB = append(p.createOnB, a)
			}
		}
	}
	if opts.createsToA() {
		for _, b := range snapB {
			if !b.Addressable() || b.Completed {
				continue
			}
			if !indexA.Has(b.Title) {
				p.createOnA = append(p.createOnA, b)
			}
		}
	}

	return p
}

// planCompletion emits at most one completion update per matched pair,
// targeting whichever side the policy says is stale.
func (p *plan) planCompletion(a, b task.Record, opts Options, planned map[string]bool) {
	if a.Completed == b.Completed {
		return
	}
	winner, ok := authoritative(opts.CompletionPolicy, a.LastModified, b.LastModified, opts.Skew)
	if !ok {
		return // tie within skew: no update on either side
	}

	if winner == SideA {
		key := string(SideB) + "/" + b.ID
		if planned[key] {
			return
		}
		planned[key] = true
		done := a.Completed
		p.completionB = append(p.completionB, updateOp{
			target: SideB, id: b.ID, title: b.Title, kind: opCompletion,
			fields: Fields{Completed: &done},
		})
	} else {
		key := string(SideA) + "/" + a.ID
		if planned[key] {
			return
		}
		planned[key] = true
		done := b.Completed
		p.completionA = append(p.completionA, updateOp{
			target: SideA, id: a.ID, title: a.Title, kind: opCompletion,
			fields: Fields{Completed: &done},
		})
	}
}

// planNotes writes the authoritative side's notes to the other side when
// they differ after trimming. The comparison runs against the truncated
// outbound text so a previously-truncated mirror does not re-update forever.
// Empty authoritative notes are never written: an empty write is a no-op,
// not a destructive clear.
func (p *plan) planNotes(a, b task.Record, opts Options, planned map[string]bool) {
	if opts.NotesPolicy == PolicyDisabled {
		return
	}
	winner, ok := authoritative(opts.NotesPolicy, a.LastModified, b.LastModified, opts.Skew)
	if !ok {
		return
	}

	src, dst := a, b
	target := SideB
	if winner == SideB {
		src, dst = b, a
		target = SideA
	}

	outbound := Truncate(strings.TrimSpace(src.Notes), opts.notesLimit(target))
	if outbound == "" || strings.TrimSpace(outbound) == strings.TrimSpace(dst.Notes) {
		return
	}

	key := string(target) + "/" + dst.ID
	if planned[key] {
		return
	}
	planned[key] = true

	op := updateOp{
		target: target, id: dst.ID, title: dst.Title, kind: opNotes,
		fields: Fields{Notes: &outbound},
	}
	if target == SideA {
		p.notesA = append(p.notesA, op)
	} else {
		p.notesB = append(p.notesB, op)
	}
}
