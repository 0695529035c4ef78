package gtasks

import (
	"time"

	"google.golang.org/api/tasks/v1"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/debug"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// Task status values defined by the API.
const (
	statusNeedsAction = "needsAction"
	statusCompleted   = "completed"
)

// TaskToRecord maps an API task to a normalized record. A malformed or
// missing Updated timestamp falls back to the zero time, which recency
// comparison treats as infinitely old.
func TaskToRecord(t *tasks.Task) task.Record {
	rec := task.Record{
		ID:        t.Id,
		Title:     t.Title,
		Completed: t.Status == statusCompleted,
		Notes:     t.Notes,
	}
	if t.Updated != "" {
		mod, err := time.Parse(time.RFC3339, t.Updated)
		if err != nil {
			debug.Logf("gtasks: unparseable updated %q on task %s", t.Updated, t.Id)
		} else {
			rec.LastModified = mod
		}
	}
	if t.Due != "" {
		due, err := time.Parse(time.RFC3339, t.Due)
		if err != nil {
			debug.Logf("gtasks: unparseable due %q on task %s", t.Due, t.Id)
		} else {
			rec.Due = &due
		}
	}
	return rec
}

// RecordToTask maps a record to the API shape for insertion.
func RecordToTask(rec task.Record) *tasks.Task {
	t := &tasks.Task{
		Title:  rec.Title,
		Notes:  rec.Notes,
		Status: statusValue(rec.Completed),
	}
	if rec.Due != nil {
		t.Due = rec.Due.Format(time.RFC3339)
	}
	return t
}

func statusValue(completed bool) string {
	if completed {
		return statusCompleted
	}
	return statusNeedsAction
}
