package notion

import "time"

// Page is the typed subset of the Notion page object this integration
// reads and writes. Everything else on the wire is ignored.
type Page struct {
	ID             string              `json:"id,omitempty"`
	LastEditedTime time.Time           `json:"last_edited_time,omitempty"`
	Archived       bool                `json:"archived,omitempty"`
	Properties     map[string]Property `json:"properties,omitempty"`
}

// Property is one page property. Exactly one of the value fields is set,
// matching the property's configured type in the database schema.
type Property struct {
	Type     string     `json:"type,omitempty"`
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Checkbox *bool      `json:"checkbox,omitempty"`
	Date     *Date      `json:"date,omitempty"`
}

// RichText is one span of a title or rich_text property. Reads use
// PlainText; writes populate Text.
type RichText struct {
	PlainText string       `json:"plain_text,omitempty"`
	Text      *TextContent `json:"text,omitempty"`
}

// TextContent is the writable payload of a rich text span.
type TextContent struct {
	Content string `json:"content"`
}

// Date is a Notion date property value. Start is either a plain calendar
// date ("2006-01-02") or an RFC3339 timestamp.
type Date struct {
	Start string `json:"start"`
}

// queryRequest pages through POST /databases/{id}/query.
type queryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
	PageSize    int    `json:"page_size,omitempty"`
}

// queryResponse is one page of query results.
type queryResponse struct {
	Results    []Page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// createPageRequest persists a new page into the database.
type createPageRequest struct {
	Parent     pageParent          `json:"parent"`
	Properties map[string]Property `json:"properties"`
}

type pageParent struct {
	DatabaseID string `json:"database_id"`
}

// updatePageRequest patches only the provided properties.
type updatePageRequest struct {
	Properties map[string]Property `json:"properties"`
}
