package gtasks

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/tasks/v1"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// Store adapts the Google Tasks client to the engine's capability
// interface. It is side B of the reconciliation.
type Store struct {
	client *Client
}

func NewStore(client *Client) *Store {
	return &Store{client: client}
}

func (s *Store) Name() string { return "gtasks" }

// FetchAll materializes the list into a snapshot. Deleted tasks are
// invisible: deletion is never propagated, so they simply drop out.
// Hidden-but-not-deleted tasks are completed ones and stay in.
func (s *Store) FetchAll(ctx context.Context) (task.Snapshot, error) {
	items, err := s.client.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	snap := make(task.Snapshot, 0, len(items))
	for _, t := range items {
		if t.Deleted {
			continue
		}
		snap = append(snap, TaskToRecord(t))
	}
	return snap, nil
}

func (s *Store) Create(ctx context.Context, rec task.Record) (task.Record, error) {
	created, err := s.client.Insert(ctx, RecordToTask(rec))
	if err != nil {
		return task.Record{}, err
	}
	return TaskToRecord(created), nil
}

// Update patches only the provided fields. Clearing notes and reopening a
// completed task both need explicit null/force-send handling, since the
// API client omits zero values by default.
func (s *Store) Update(ctx context.Context, id string, fields reconcile.Fields) (task.Record, error) {
	patch := &tasks.Task{}
	any := false
	if fields.Title != nil {
		patch.Title = *fields.Title
		patch.ForceSendFields = append(patch.ForceSendFields, "Title")
		any = true
	}
	if fields.Completed != nil {
		patch.Status = statusValue(*fields.Completed)
		if !*fields.Completed {
			patch.NullFields = append(patch.NullFields, "Completed")
		}
		any = true
	}
	if fields.Notes != nil {
		patch.Notes = *fields.Notes
		patch.ForceSendFields = append(patch.ForceSendFields, "Notes")
		any = true
	}
	if fields.Due != nil {
		patch.Due = fields.Due.Format(time.RFC3339)
		any = true
	}
	if !any {
		return task.Record{}, fmt.Errorf("update of task %s has no fields", id)
	}

	updated, err := s.client.Patch(ctx, id, patch)
	if err != nil {
		return task.Record{}, err
	}
	return TaskToRecord(updated), nil
}
