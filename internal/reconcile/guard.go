package reconcile

import (
	"context"
	"time"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// guardAllowsCreate re-verifies the absence of a title match on the target
// store immediately before a create. The pass snapshot can be stale by the
// time the apply step runs: a concurrent pass or a slow-propagating earlier
// write may have landed the same title in the meantime. Two checks with a
// debounce between them catch a create-in-flight that the first re-fetch
// raced past.
func (e *Engine) guardAllowsCreate(ctx context.Context, st Store, title string) (bool, error) {
	snap, err := st.FetchAll(ctx)
	if err != nil {
		return false, err
	}
	if task.BuildIndex(snap).Has(title) {
		return false, nil
	}

	if e.opts.GuardDebounce > 0 {
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(e.opts.GuardDebounce):
		}
	}

	snap, err = st.FetchAll(ctx)
	if err != nil {
		return false, err
	}
	if task.BuildIndex(snap).Has(title) {
		return false, nil
	}
	return true, nil
}
