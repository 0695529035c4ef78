package notion

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/retry"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

func testClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      "secret_test",
		DatabaseID: "db1",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		Retry:      retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond},
	}
}

func TestQueryAllPagesPagination(t *testing.T) {
	var cursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Notion-Version"); got != APIVersion {
			t.Errorf("Notion-Version = %q, want %q", got, APIVersion)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret_test" {
			t.Errorf("Authorization = %q", got)
		}

		var req queryRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		cursors = append(cursors, req.StartCursor)

		resp := queryResponse{Results: []Page{{ID: "p" + req.StartCursor}}}
		if req.StartCursor == "" {
			resp.HasMore = true
			resp.NextCursor = "c2"
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	pages, err := testClient(srv.URL).QueryAllPages(context.Background())
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(pages) != 2 {
		t.Errorf("got %d pages, want 2 across both cursor pages", len(pages))
	}
	if len(cursors) != 2 || cursors[1] != "c2" {
		t.Errorf("cursor sequence = %v, want sequential [\"\" c2]", cursors)
	}
}

func TestRequestRetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(queryResponse{})
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).QueryAllPages(context.Background()); err != nil {
		t.Fatalf("expected retry to recover from 429: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestRequestClientErrorIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"code":"unauthorized"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	if _, err := testClient(srv.URL).QueryAllPages(context.Background()); err == nil {
		t.Fatal("expected error from 401")
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, a 4xx must not be retried", calls.Load())
	}
}

func TestCreateAndUpdatePage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "POST" && r.URL.Path == "/pages":
			var req createPageRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if req.Parent.DatabaseID != "db1" {
				t.Errorf("parent database = %q", req.Parent.DatabaseID)
			}
			_ = json.NewEncoder(w).Encode(Page{ID: "new-page", Properties: req.Properties})
		case r.Method == "PATCH" && r.URL.Path == "/pages/p9":
			var req updatePageRequest
			_ = json.NewDecoder(r.Body).Decode(&req)
			if _, ok := req.Properties["Done"]; !ok {
				t.Error("patch should carry only the provided properties")
			}
			_ = json.NewEncoder(w).Encode(Page{ID: "p9", Properties: req.Properties})
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	created, err := c.CreatePage(context.Background(), RecordToProperties(
		task.Record{Title: "Groceries"}, DefaultMappingConfig()))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID != "new-page" {
		t.Errorf("created ID = %q", created.ID)
	}

	done := true
	if _, err := c.UpdatePage(context.Background(), "p9", map[string]Property{
		"Done": {Checkbox: &done},
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
}
