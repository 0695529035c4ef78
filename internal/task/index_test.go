package task

import (
	"testing"
	"time"
)

func ts(sec int) time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func TestBuildIndexSkipsEmptyTitles(t *testing.T) {
	snap := Snapshot{
		{ID: "1", Title: "Groceries"},
		{ID: "2", Title: "   "},
		{ID: "3", Title: ""},
	}
	ix := BuildIndex(snap)
	if len(ix) != 1 {
		t.Fatalf("expected 1 group, got %d", len(ix))
	}
	if _, ok := ix.Match("groceries"); !ok {
		t.Error("expected groceries group")
	}
}

func TestMatchPrefersOpen(t *testing.T) {
	snap := Snapshot{
		{ID: "done", Title: "Groceries", Completed: true, LastModified: ts(100)},
		{ID: "open", Title: "groceries", Completed: false, LastModified: ts(0)},
	}
	ix := BuildIndex(snap)
	rep, ok := ix.Match("GROCERIES")
	if !ok {
		t.Fatal("expected a match")
	}
	if rep.ID != "open" {
		t.Errorf("expected open record preferred, got %q", rep.ID)
	}
}

func TestMatchFirstOpenInSnapshotOrder(t *testing.T) {
	snap := Snapshot{
		{ID: "first", Title: "Twice"},
		{ID: "second", Title: "twice"},
	}
	rep, ok := BuildIndex(snap).Match("Twice")
	if !ok || rep.ID != "first" {
		t.Errorf("expected first open record, got %+v ok=%v", rep, ok)
	}
}

func TestMatchMostRecentDone(t *testing.T) {
	snap := Snapshot{
		{ID: "older", Title: "Archive", Completed: true, LastModified: ts(10)},
		{ID: "newer", Title: "archive", Completed: true, LastModified: ts(20)},
	}
	rep, ok := BuildIndex(snap).Match("archive")
	if !ok || rep.ID != "newer" {
		t.Errorf("expected most-recently-modified done record, got %+v ok=%v", rep, ok)
	}
}

func TestMatchMissing(t *testing.T) {
	ix := BuildIndex(Snapshot{{ID: "1", Title: "Here"}})
	if _, ok := ix.Match("elsewhere"); ok {
		t.Error("expected no match for unknown title")
	}
	if ix.Has("elsewhere") {
		t.Error("Has should be false for unknown title")
	}
}

func TestBuildIndexDeterministic(t *testing.T) {
	snap := Snapshot{
		{ID: "a", Title: "x"},
		{ID: "b", Title: "X"},
		{ID: "c", Title: "x", Completed: true},
	}
	for i := 0; i < 3; i++ {
		rep, ok := BuildIndex(snap).Match("x")
		if !ok || rep.ID != "a" {
			t.Fatalf("iteration %d: got %+v ok=%v", i, rep, ok)
		}
	}
}
