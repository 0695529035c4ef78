package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
)

// CompletionPolicy selects which side wins a completion conflict.
// The user-facing spellings bind the sides: Notion is side A, Google Tasks
// is side B.
type CompletionPolicy string

const (
	CompletionLatestWins CompletionPolicy = "latest-wins"
	CompletionNotionWins CompletionPolicy = "notion-wins"
	CompletionGTasksWins CompletionPolicy = "gtasks-wins"
)

var validCompletionPolicies = map[CompletionPolicy]bool{
	CompletionLatestWins: true,
	CompletionNotionWins: true,
	CompletionGTasksWins: true,
}

// NotesPolicy selects which side wins a notes conflict, or disables notes
// reconciliation entirely.
type NotesPolicy string

const (
	NotesLatestWins NotesPolicy = "latest-wins"
	NotesNotionWins NotesPolicy = "notion-wins"
	NotesGTasksWins NotesPolicy = "gtasks-wins"
	NotesDisabled   NotesPolicy = "disabled"
)

var validNotesPolicies = map[NotesPolicy]bool{
	NotesLatestWins: true,
	NotesNotionWins: true,
	NotesGTasksWins: true,
	NotesDisabled:   true,
}

// CreateDirection selects which create-if-missing scans run.
type CreateDirection string

const (
	CreateBidirectional  CreateDirection = "bidirectional"
	CreateNotionToGTasks CreateDirection = "notion-to-gtasks"
	CreateGTasksToNotion CreateDirection = "gtasks-to-notion"
)

var validCreateDirections = map[CreateDirection]bool{
	CreateBidirectional:  true,
	CreateNotionToGTasks: true,
	CreateGTasksToNotion: true,
}

// normalizeCompletionPolicy validates a configured value, warning to stderr
// and falling back to the default on anything unrecognized.
func normalizeCompletionPolicy(value CompletionPolicy) CompletionPolicy {
	if value == "" {
		return CompletionLatestWins
	}
	p := CompletionPolicy(strings.ToLower(strings.TrimSpace(string(value))))
	if !validCompletionPolicies[p] {
		fmt.Fprintf(os.Stderr, "Warning: invalid completion_policy %q in config (valid: latest-wins, notion-wins, gtasks-wins), using default 'latest-wins'\n", value)
		return CompletionLatestWins
	}
	return p
}

func normalizeNotesPolicy(value NotesPolicy) NotesPolicy {
	if value == "" {
		return NotesLatestWins
	}
	p := NotesPolicy(strings.ToLower(strings.TrimSpace(string(value))))
	if !validNotesPolicies[p] {
		fmt.Fprintf(os.Stderr, "Warning: invalid notes_policy %q in config (valid: latest-wins, notion-wins, gtasks-wins, disabled), using default 'latest-wins'\n", value)
		return NotesLatestWins
	}
	return p
}

func normalizeCreateDirection(value CreateDirection) CreateDirection {
	if value == "" {
		return CreateBidirectional
	}
	d := CreateDirection(strings.ToLower(strings.TrimSpace(string(value))))
	if !validCreateDirections[d] {
		fmt.Fprintf(os.Stderr, "Warning: invalid create_direction %q in config (valid: bidirectional, notion-to-gtasks, gtasks-to-notion), using default 'bidirectional'\n", value)
		return CreateBidirectional
	}
	return d
}

func (p CompletionPolicy) engine() reconcile.Policy {
	switch p {
	case CompletionNotionWins:
		return reconcile.PolicyAWins
	case CompletionGTasksWins:
		return reconcile.PolicyBWins
	default:
		return reconcile.PolicyLatestWins
	}
}

func (p NotesPolicy) engine() reconcile.Policy {
	switch p {
	case NotesNotionWins:
		return reconcile.PolicyAWins
	case NotesGTasksWins:
		return reconcile.PolicyBWins
	case NotesDisabled:
		return reconcile.PolicyDisabled
	default:
		return reconcile.PolicyLatestWins
	}
}

func (d CreateDirection) engine() reconcile.Direction {
	switch d {
	case CreateNotionToGTasks:
		return reconcile.DirectionAToB
	case CreateGTasksToNotion:
		return reconcile.DirectionBToA
	default:
		return reconcile.DirectionBoth
	}
}
