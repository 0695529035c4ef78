package gtasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/tasks/v1"
)

func TestTaskToRecord(t *testing.T) {
	in := &tasks.Task{
		Id:      "t1",
		Title:   "Buy milk",
		Status:  "completed",
		Notes:   "2% if they have it",
		Due:     "2026-03-05T00:00:00.000Z",
		Updated: "2026-03-01T09:30:00.000Z",
	}
	rec := TaskToRecord(in)

	assert.Equal(t, "t1", rec.ID)
	assert.Equal(t, "Buy milk", rec.Title)
	assert.True(t, rec.Completed)
	assert.Equal(t, "2% if they have it", rec.Notes)
	require.NotNil(t, rec.Due)
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), rec.Due.UTC())
	assert.Equal(t, time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC), rec.LastModified.UTC())
}

func TestTaskToRecordNeedsAction(t *testing.T) {
	rec := TaskToRecord(&tasks.Task{Id: "t2", Title: "Call dentist", Status: "needsAction"})
	assert.False(t, rec.Completed)
	assert.Nil(t, rec.Due)
}

func TestTaskToRecordBadTimestampsFallBack(t *testing.T) {
	rec := TaskToRecord(&tasks.Task{
		Id:      "t3",
		Title:   "Weird clock",
		Updated: "yesterday-ish",
		Due:     "soon",
	})
	assert.True(t, rec.LastModified.IsZero(), "unparseable updated should map to zero time")
	assert.Nil(t, rec.Due)
}

func TestRecordToTask(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	open := RecordToTask(taskRecord("Water plants", false))
	assert.Equal(t, "needsAction", open.Status)
	assert.Empty(t, open.Due)

	done := taskRecord("Water plants", true)
	done.Due = &due
	done.Notes = "back porch too"
	out := RecordToTask(done)
	assert.Equal(t, "completed", out.Status)
	assert.Equal(t, "back porch too", out.Notes)
	assert.Equal(t, "2026-04-01T00:00:00Z", out.Due)
}
