package gtasks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/reconcile"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/retry"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

func taskRecord(title string, completed bool) task.Record {
	return task.Record{Title: title, Completed: completed}
}

// testService points the generated client at a local server.
func testService(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := tasks.NewService(context.Background(),
		option.WithHTTPClient(srv.Client()),
		option.WithEndpoint(srv.URL))
	require.NoError(t, err)

	return &Client{
		svc:        svc,
		tasklistID: "@default",
		retry:      retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond},
	}, srv
}

func TestFetchAllPagesAndSkipsDeleted(t *testing.T) {
	var tokens []string
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks/v1/lists/@default/tasks", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("showCompleted"))
		assert.Equal(t, "true", r.URL.Query().Get("showHidden"))
		tok := r.URL.Query().Get("pageToken")
		tokens = append(tokens, tok)

		var page tasks.Tasks
		if tok == "" {
			page = tasks.Tasks{
				Items: []*tasks.Task{
					{Id: "t1", Title: "Groceries", Status: "needsAction"},
					{Id: "t2", Title: "Old thing", Status: "completed", Deleted: true},
				},
				NextPageToken: "page2",
			}
		} else {
			page = tasks.Tasks{
				Items: []*tasks.Task{
					{Id: "t3", Title: "Taxes", Status: "completed", Hidden: true},
				},
			}
		}
		json.NewEncoder(w).Encode(page)
	})

	client, _ := testService(t, mux)
	st := NewStore(client)

	snap, err := st.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"", "page2"}, tokens)

	require.Len(t, snap, 2, "deleted task should be filtered, hidden completed one kept")
	assert.Equal(t, "t1", snap[0].ID)
	assert.Equal(t, "t3", snap[1].ID)
	assert.True(t, snap[1].Completed)
}

func TestUpdatePatchesOnlyGivenFields(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks/v1/lists/@default/tasks/t1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(tasks.Task{
			Id: "t1", Title: "Groceries", Status: "completed",
			Updated: "2026-03-01T10:00:00.000Z",
		})
	})

	client, _ := testService(t, mux)
	st := NewStore(client)

	completed := true
	rec, err := st.Update(context.Background(), "t1", reconcile.Fields{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, rec.Completed)

	assert.Equal(t, "completed", body["status"])
	_, hasTitle := body["title"]
	assert.False(t, hasTitle, "patch should not carry fields that were not set")
	_, hasNotes := body["notes"]
	assert.False(t, hasNotes)
}

func TestUpdateClearsNotesExplicitly(t *testing.T) {
	var body map[string]any
	mux := http.NewServeMux()
	mux.HandleFunc("/tasks/v1/lists/@default/tasks/t1", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(tasks.Task{Id: "t1", Title: "Groceries", Status: "needsAction"})
	})

	client, _ := testService(t, mux)
	st := NewStore(client)

	empty := ""
	_, err := st.Update(context.Background(), "t1", reconcile.Fields{Notes: &empty})
	require.NoError(t, err)

	notes, present := body["notes"]
	assert.True(t, present, "empty notes must still be sent to clear the field")
	assert.Equal(t, "", notes)
}

func TestUpdateRejectsEmptyFieldSet(t *testing.T) {
	client, _ := testService(t, http.NewServeMux())
	st := NewStore(client)

	_, err := st.Update(context.Background(), "t1", reconcile.Fields{})
	require.Error(t, err)
}
