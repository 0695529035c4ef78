package notion

import (
	"context"
	"fmt"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// Store adapts the Notion client to the engine's capability interface.
// It is side A of the reconciliation.
type Store struct {
	client  *Client
	mapping *MappingConfig
}

// NewStore wires a store adapter around a client. A nil mapping uses the
// conventional property names.
func NewStore(client *Client, mapping *MappingConfig) *Store {
	if mapping == nil {
		mapping = DefaultMappingConfig()
	}
	return &Store{client: client, mapping: mapping}
}

func (s *Store) Name() string { return "notion" }

// FetchAll materializes the database into a snapshot. Archived pages are
// invisible: deletion is never propagated, so they simply drop out.
func (s *Store) FetchAll(ctx context.Context) (task.Snapshot, error) {
	pages, err := s.client.QueryAllPages(ctx)
	if err != nil {
		return nil, err
	}
	snap := make(task.Snapshot, 0, len(pages))
	for _, page := range pages {
		if page.Archived {
			continue
		}
		snap = append(snap, PageToRecord(page, s.mapping))
	}
	return snap, nil
}

func (s *Store) Create(ctx context.Context, rec task.Record) (task.Record, error) {
	page, err := s.client.CreatePage(ctx, RecordToProperties(rec, s.mapping))
	if err != nil {
		return task.Record{}, err
	}
	created := rec
	created.ID = page.ID
	created.LastModified = page.LastEditedTime
	return created, nil
}

func (s *Store) Update(ctx context.Context, id string, fields reconcile.Fields) (task.Record, error) {
	props := make(map[string]Property)
	if fields.Title != nil {
		props[s.mapping.TitleProp] = titleProperty(*fields.Title)
	}
	if fields.Completed != nil {
		props[s.mapping.DoneProp] = checkboxProperty(*fields.Completed)
	}
	if fields.Notes != nil {
		props[s.mapping.NotesProp] = richTextProperty(*fields.Notes)
	}
	if fields.Due != nil {
		props[s.mapping.DueProp] = dateProperty(*fields.Due)
	}
	if len(props) == 0 {
		return task.Record{}, fmt.Errorf("update of page %s has no fields", id)
	}

	page, err := s.client.UpdatePage(ctx, id, props)
	if err != nil {
		return task.Record{}, err
	}
	return PageToRecord(*page, s.mapping), nil
}
