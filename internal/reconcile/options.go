package reconcile

import "time"

// Policy selects which side wins a field conflict.
type Policy string

const (
	// PolicyLatestWins takes the value from whichever side was modified
	// more recently, beyond the skew tolerance.
	PolicyLatestWins Policy = "latest-wins"
	// PolicyAWins makes side A unconditionally authoritative.
	PolicyAWins Policy = "a-wins"
	// PolicyBWins makes side B unconditionally authoritative.
	PolicyBWins Policy = "b-wins"
	// PolicyDisabled turns the field's reconciliation off entirely.
	// Only valid for notes.
	PolicyDisabled Policy = "disabled"
)

// Direction selects which create-if-missing scans run.
type Direction string

const (
	DirectionBoth Direction = "bidirectional"
	DirectionAToB Direction = "a-to-b"
	DirectionBToA Direction = "b-to-a"
)

// Options is the engine's configuration surface, fixed for the duration of
// one pass. The Runner swaps a new Options in between passes on hot reload.
type Options struct {
	// Skew is the tolerance window before one side's timestamp counts as
	// definitively newer. Prevents near-simultaneous, independently-clocked
	// edits from ping-ponging a write back and forth across passes.
	Skew time.Duration

	// GuardDebounce is the wait between the duplicate guard's two
	// re-fetches before a create.
	GuardDebounce time.Duration

	CompletionPolicy Policy
	NotesPolicy      Policy
	CreateDirection  Direction

	// NotesLimitA and NotesLimitB bound outbound notes per side.
	// Zero disables truncation for that side.
	NotesLimitA int
	NotesLimitB int
}

// DefaultOptions carries the documented defaults: 2s skew, 2s guard
// debounce, latest-wins everywhere, bidirectional creates, 2000/8000 notes
// limits for sides A/B.
func DefaultOptions() Options {
	return Options{
		Skew:             2 * time.Second,
		GuardDebounce:    2 * time.Second,
		CompletionPolicy: PolicyLatestWins,
		NotesPolicy:      PolicyLatestWins,
		CreateDirection:  DirectionBoth,
		NotesLimitA:      2000,
		NotesLimitB:      8000,
	}
}

func (o Options) notesLimit(target Side) int {
	if target == SideA {
		return o.NotesLimitA
	}
	return o.NotesLimitB
}

func (o Options) createsToB() bool {
	return o.CreateDirection == DirectionBoth || o.CreateDirection == DirectionAToB
}

func (o Options) createsToA() bool {
	return o.CreateDirection == DirectionBoth || o.CreateDirection == DirectionBToA
}
