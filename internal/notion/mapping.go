package notion

import (
	"strings"
	"time"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

// MappingConfig names the database properties this integration reads and
// writes. Callers with a different database schema supply their own.
type MappingConfig struct {
	TitleProp string
	DoneProp  string
	DueProp   string
	NotesProp string
}

// DefaultMappingConfig returns the conventional property names.
func DefaultMappingConfig() *MappingConfig {
	return &MappingConfig{
		TitleProp: "Name",
		DoneProp:  "Done",
		DueProp:   "Due",
		NotesProp: "Notes",
	}
}

// PageToRecord normalizes a Notion page into a task record. Optional-field
// defaults are applied here, at the adapter boundary: missing date -> nil,
// missing rich text -> "", unparseable last_edited_time -> zero time.
func PageToRecord(page Page, mc *MappingConfig) task.Record {
	rec := task.Record{
		ID:           page.ID,
		LastModified: page.LastEditedTime,
	}
	if p, ok := page.Properties[mc.TitleProp]; ok {
		rec.Title = plainText(p.Title)
	}
	if p, ok := page.Properties[mc.DoneProp]; ok && p.Checkbox != nil {
		rec.Completed = *p.Checkbox
	}
	if p, ok := page.Properties[mc.DueProp]; ok && p.Date != nil {
		rec.Due = parseDate(p.Date.Start)
	}
	if p, ok := page.Properties[mc.NotesProp]; ok {
		rec.Notes = plainText(p.RichText)
	}
	return rec
}

// RecordToProperties builds the property payload for creating a page.
func RecordToProperties(rec task.Record, mc *MappingConfig) map[string]Property {
	props := map[string]Property{
		mc.TitleProp: titleProperty(rec.Title),
		mc.DoneProp:  checkboxProperty(rec.Completed),
	}
	if rec.Due != nil {
		props[mc.DueProp] = dateProperty(*rec.Due)
	}
	if rec.Notes != "" {
		props[mc.NotesProp] = richTextProperty(rec.Notes)
	}
	return props
}

func titleProperty(text string) Property {
	return Property{Title: []RichText{{Text: &TextContent{Content: text}}}}
}

func richTextProperty(text string) Property {
	return Property{RichText: []RichText{{Text: &TextContent{Content: text}}}}
}

func checkboxProperty(checked bool) Property {
	return Property{Checkbox: &checked}
}

func dateProperty(t time.Time) Property {
	return Property{Date: &Date{Start: t.Format("2006-01-02")}}
}

// plainText flattens rich text spans into one string. Reads prefer the
// rendered plain_text; spans written by this integration carry Text too.
func plainText(spans []RichText) string {
	var b strings.Builder
	for _, span := range spans {
		if span.PlainText != "" {
			b.WriteString(span.PlainText)
		} else if span.Text != nil {
			b.WriteString(span.Text.Content)
		}
	}
	return b.String()
}

// parseDate accepts both plain calendar dates and full RFC3339 timestamps,
// which Notion uses interchangeably in date properties.
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return &t
	}
	return nil
}
