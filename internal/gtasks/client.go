package gtasks

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/tasks/v1"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/debug"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/retry"
)

// defaultTasklist is the API alias for the account's default list.
const defaultTasklist = "@default"

// pageSize is the List page size; the API caps MaxResults at 100.
const pageSize = 100

// Client wraps the tasks/v1 service bound to a single task list.
type Client struct {
	svc        *tasks.Service
	tasklistID string
	retry      retry.Config
}

// NewClient builds the service over an authenticated HTTP client and
// resolves the configured task list. An empty listTitle binds to the
// account's default list.
func NewClient(ctx context.Context, hc *http.Client, listTitle string, rc retry.Config) (*Client, error) {
	svc, err := tasks.NewService(ctx, option.WithHTTPClient(hc))
	if err != nil {
		return nil, fmt.Errorf("building tasks service: %w", err)
	}
	c := &Client{svc: svc, retry: rc}
	c.tasklistID, err = c.resolveTasklist(ctx, listTitle)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// resolveTasklist maps a display title to a tasklist ID. The lookup runs
// once at startup; list renames need a restart.
func (c *Client) resolveTasklist(ctx context.Context, title string) (string, error) {
	if title == "" {
		return defaultTasklist, nil
	}
	var lists *tasks.TaskLists
	err := retry.Do(ctx, c.retry, func() error {
		var err error
		lists, err = c.svc.Tasklists.List().Context(ctx).Do()
		return classify(err)
	})
	if err != nil {
		return "", fmt.Errorf("listing tasklists: %w", err)
	}
	for _, tl := range lists.Items {
		if tl.Title == title {
			debug.Logf("gtasks: tasklist %q resolved to %s", title, tl.Id)
			return tl.Id, nil
		}
	}
	return "", fmt.Errorf("no tasklist titled %q", title)
}

// ListAll fetches every task in the list, including completed and hidden
// ones, following page tokens sequentially.
func (c *Client) ListAll(ctx context.Context) ([]*tasks.Task, error) {
	var all []*tasks.Task
	pageToken := ""
	for {
		var page *tasks.Tasks
		err := retry.Do(ctx, c.retry, func() error {
			call := c.svc.Tasks.List(c.tasklistID).
				ShowCompleted(true).
				ShowHidden(true).
				MaxResults(pageSize).
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			var err error
			page, err = call.Do()
			return classify(err)
		})
		if err != nil {
			return nil, fmt.Errorf("listing tasks: %w", err)
		}
		all = append(all, page.Items...)
		if page.NextPageToken == "" {
			return all, nil
		}
		pageToken = page.NextPageToken
	}
}

// Insert creates a task in the bound list.
func (c *Client) Insert(ctx context.Context, t *tasks.Task) (*tasks.Task, error) {
	var created *tasks.Task
	err := retry.Do(ctx, c.retry, func() error {
		var err error
		created, err = c.svc.Tasks.Insert(c.tasklistID, t).Context(ctx).Do()
		return classify(err)
	})
	if err != nil {
		return nil, fmt.Errorf("inserting task %q: %w", t.Title, err)
	}
	return created, nil
}

// Patch applies only the fields set on t to the task with the given ID.
func (c *Client) Patch(ctx context.Context, id string, t *tasks.Task) (*tasks.Task, error) {
	var updated *tasks.Task
	err := retry.Do(ctx, c.retry, func() error {
		var err error
		updated, err = c.svc.Tasks.Patch(c.tasklistID, id, t).Context(ctx).Do()
		return classify(err)
	})
	if err != nil {
		return nil, fmt.Errorf("patching task %s: %w", id, err)
	}
	return updated, nil
}

// classify decides retryability: rate limits and server errors are
// transient, any other API rejection is permanent.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500 {
			return err
		}
		return retry.Permanent(err)
	}
	// Transport-level failures retry.
	return err
}
