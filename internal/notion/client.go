// Package notion is the Notion store adapter: a REST client for the
// database query and page endpoints, plus the property mapping between
// pages and normalized records.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/debug"
	"github.com/reyyreyys/sync-notion-with-gtasks/internal/retry"
)

const (
	DefaultBaseURL  = "https://api.notion.com/v1"
	APIVersion      = "2022-06-28"
	DefaultTimeout  = 30 * time.Second
	DefaultPageSize = 100
)

// Client provides methods to interact with the Notion REST API.
type Client struct {
	BaseURL    string
	Token      string
	DatabaseID string
	HTTPClient *http.Client
	Retry      retry.Config
}

// NewClient creates a Notion client for one database.
func NewClient(token, databaseID string, retryCfg retry.Config) *Client {
	return &Client{
		BaseURL:    DefaultBaseURL,
		Token:      token,
		DatabaseID: databaseID,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
		Retry:      retryCfg,
	}
}

// request sends one JSON request, retrying transport errors, 429s, and 5xx
// responses through the shared retry utility. Other 4xx responses are
// permanent: retrying a bad request only burns rate limit.
func (c *Client) request(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	var jsonBody []byte
	if body != nil {
		var err error
		jsonBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	var respBody []byte
	err := retry.Do(ctx, c.Retry, func() error {
		var bodyReader io.Reader
		if jsonBody != nil {
			bodyReader = bytes.NewReader(jsonBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
		if err != nil {
			return retry.Permanent(fmt.Errorf("failed to create request: %w", err))
		}
		req.Header.Set("Authorization", "Bearer "+c.Token)
		req.Header.Set("Notion-Version", APIVersion)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}
		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to read response: %w", err)
		}

		debug.Logf("notion: %s %s -> %d (%d bytes)\n", method, path, resp.StatusCode, len(data))

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return fmt.Errorf("notion API transient error: status %d", resp.StatusCode)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return retry.Permanent(fmt.Errorf("notion API error: %s (status %d)", data, resp.StatusCode))
		}
		respBody = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return respBody, nil
}

// QueryAllPages fetches every page of the database with a sequential cursor
// loop. The cursor is stateful, so pages cannot be requested in parallel.
func (c *Client) QueryAllPages(ctx context.Context) ([]Page, error) {
	var all []Page
	cursor := ""
	for {
		reqBody := queryRequest{StartCursor: cursor, PageSize: DefaultPageSize}
		resp, err := c.request(ctx, "POST", "/databases/"+c.DatabaseID+"/query", reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to query database: %w", err)
		}

		var page queryResponse
		if err := json.Unmarshal(resp, &page); err != nil {
			return nil, fmt.Errorf("failed to parse query results: %w", err)
		}
		all = append(all, page.Results...)

		if !page.HasMore || page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}
	return all, nil
}

// CreatePage creates a new page in the database.
func (c *Client) CreatePage(ctx context.Context, props map[string]Property) (*Page, error) {
	reqBody := createPageRequest{
		Parent:     pageParent{DatabaseID: c.DatabaseID},
		Properties: props,
	}
	resp, err := c.request(ctx, "POST", "/pages", reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	var created Page
	if err := json.Unmarshal(resp, &created); err != nil {
		return nil, fmt.Errorf("failed to parse created page: %w", err)
	}
	return &created, nil
}

// UpdatePage patches only the provided properties of an existing page.
func (c *Client) UpdatePage(ctx context.Context, pageID string, props map[string]Property) (*Page, error) {
	resp, err := c.request(ctx, "PATCH", "/pages/"+pageID, updatePageRequest{Properties: props})
	if err != nil {
		return nil, fmt.Errorf("failed to update page %s: %w", pageID, err)
	}

	var updated Page
	if err := json.Unmarshal(resp, &updated); err != nil {
		return nil, fmt.Errorf("failed to parse updated page: %w", err)
	}
	return &updated, nil
}
