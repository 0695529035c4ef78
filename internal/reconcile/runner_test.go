package reconcile

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// blockingStore gates FetchAll on a channel so tests can hold a pass open.
type blockingStore struct {
	*mockStore
	release chan struct{}
	started chan struct{}
}

func (s *blockingStore) FetchAll(ctx context.Context) (task.Snapshot, error) {
	select {
	case s.started <- struct{}{}:
	default:
	}
	select {
	case <-s.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return s.mockStore.FetchAll(ctx)
}

func TestRunnerSingleFlight(t *testing.T) {
	a := &blockingStore{
		mockStore: newMockStore("a"),
		release:   make(chan struct{}),
		started:   make(chan struct{}, 1),
	}
	b := newMockStore("b")
	runner := NewRunner(NewEngine(a, b, DefaultOptions(), testLogger()), testLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = runner.RunOnce(context.Background())
	}()
	<-a.started

	if !runner.Status().Running {
		t.Error("status should report a running pass")
	}
	if _, err := runner.RunOnce(context.Background()); !errors.Is(err, ErrSyncInProgress) {
		t.Errorf("overlapping trigger: got %v, want ErrSyncInProgress", err)
	}

	close(a.release)
	<-done

	status := runner.Status()
	if status.Running {
		t.Error("status should report idle after the pass")
	}
	if status.Stats.Passes != 1 {
		t.Errorf("passes = %d, the dropped trigger must not count", status.Stats.Passes)
	}
}

func TestRunnerAccumulatesStats(t *testing.T) {
	a := newMockStore("a",
		task.Record{ID: "a1", Title: "Groceries", LastModified: baseTime})
	b := newMockStore("b")
	opts := DefaultOptions()
	opts.GuardDebounce = time.Millisecond
	runner := NewRunner(NewEngine(a, b, opts, testLogger()), testLogger())

	for i := 0; i < 2; i++ {
		if _, err := runner.RunOnce(context.Background()); err != nil {
			t.Fatalf("pass %d failed: %v", i, err)
		}
	}

	status := runner.Status()
	if status.Stats.Passes != 2 {
		t.Errorf("passes = %d, want 2", status.Stats.Passes)
	}
	if status.Stats.Created != 1 {
		t.Errorf("cumulative created = %d, want 1 (second pass is a no-op)", status.Stats.Created)
	}
	if status.Stats.LastPassStart.IsZero() {
		t.Error("last pass start should be recorded")
	}
}

func TestRunnerStatsSurvivePassFailure(t *testing.T) {
	a := newMockStore("a",
		task.Record{ID: "a1", Title: "Groceries", LastModified: baseTime})
	b := newMockStore("b")
	opts := DefaultOptions()
	opts.GuardDebounce = time.Millisecond
	runner := NewRunner(NewEngine(a, b, opts, testLogger()), testLogger())

	if _, err := runner.RunOnce(context.Background()); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}

	b.fetchErr = errors.New("store down")
	if _, err := runner.RunOnce(context.Background()); err == nil {
		t.Fatal("expected second pass to fail")
	}

	status := runner.Status()
	if status.Stats.Passes != 2 {
		t.Errorf("passes = %d, failed passes still count", status.Stats.Passes)
	}
	if status.Stats.Created != 1 {
		t.Errorf("created = %d, prior statistics must survive a failed pass", status.Stats.Created)
	}
	if status.Stats.Errors != 1 {
		t.Errorf("errors = %d, want 1", status.Stats.Errors)
	}
}

func TestRunnerResetStats(t *testing.T) {
	a := newMockStore("a")
	b := newMockStore("b")
	runner := NewRunner(NewEngine(a, b, DefaultOptions(), testLogger()), testLogger())

	if _, err := runner.RunOnce(context.Background()); err != nil {
		t.Fatalf("pass failed: %v", err)
	}
	runner.ResetStats()

	if got := runner.Status().Stats; got.Passes != 0 || got.Created != 0 {
		t.Errorf("stats after reset = %+v, want zeroes", got)
	}
}

func TestRunnerSetOptionsWhenIdle(t *testing.T) {
	a := newMockStore("a")
	b := newMockStore("b")
	eng := NewEngine(a, b, DefaultOptions(), testLogger())
	runner := NewRunner(eng, testLogger())

	opts := DefaultOptions()
	opts.Skew = 9 * time.Second
	runner.SetOptions(opts)

	if eng.opts.Skew != 9*time.Second {
		t.Errorf("idle swap should apply immediately, skew = %v", eng.opts.Skew)
	}
}
