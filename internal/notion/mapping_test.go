package notion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/reyyreyys/sync-notion-with-gtasks/internal/task"
)

func donePtr(b bool) *bool { return &b }

func TestPageToRecord(t *testing.T) {
	edited := time.Date(2026, 2, 10, 8, 30, 0, 0, time.UTC)
	page := Page{
		ID:             "page-1",
		LastEditedTime: edited,
		Properties: map[string]Property{
			"Name":  {Title: []RichText{{PlainText: "Pay rent"}}},
			"Done":  {Checkbox: donePtr(true)},
			"Due":   {Date: &Date{Start: "2026-02-28"}},
			"Notes": {RichText: []RichText{{PlainText: "transfer "}, {PlainText: "before noon"}}},
		},
	}

	rec := PageToRecord(page, DefaultMappingConfig())
	assert.Equal(t, "page-1", rec.ID)
	assert.Equal(t, "Pay rent", rec.Title)
	assert.True(t, rec.Completed)
	assert.Equal(t, "transfer before noon", rec.Notes)
	assert.Equal(t, edited, rec.LastModified)
	if assert.NotNil(t, rec.Due) {
		assert.Equal(t, time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC), *rec.Due)
	}
}

func TestPageToRecordDefaults(t *testing.T) {
	rec := PageToRecord(Page{ID: "bare", Properties: map[string]Property{}}, DefaultMappingConfig())
	assert.Equal(t, "", rec.Title)
	assert.False(t, rec.Completed)
	assert.Nil(t, rec.Due)
	assert.Equal(t, "", rec.Notes)
	assert.True(t, rec.LastModified.IsZero())
}

func TestPageToRecordTimestampDate(t *testing.T) {
	page := Page{Properties: map[string]Property{
		"Due": {Date: &Date{Start: "2026-02-28T09:00:00Z"}},
	}}
	rec := PageToRecord(page, DefaultMappingConfig())
	if assert.NotNil(t, rec.Due) {
		assert.Equal(t, 28, rec.Due.Day())
	}
}

func TestPageToRecordCustomMapping(t *testing.T) {
	mc := &MappingConfig{TitleProp: "Task", DoneProp: "Complete", DueProp: "Deadline", NotesProp: "Body"}
	page := Page{Properties: map[string]Property{
		"Task":     {Title: []RichText{{PlainText: "Groceries"}}},
		"Complete": {Checkbox: donePtr(false)},
	}}
	rec := PageToRecord(page, mc)
	assert.Equal(t, "Groceries", rec.Title)
	assert.False(t, rec.Completed)
}

func TestRecordToProperties(t *testing.T) {
	due := time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)
	rec := task.Record{Title: "Pay rent", Completed: true, Due: &due, Notes: "transfer"}

	props := RecordToProperties(rec, DefaultMappingConfig())
	assert.Equal(t, "Pay rent", props["Name"].Title[0].Text.Content)
	assert.True(t, *props["Done"].Checkbox)
	assert.Equal(t, "2026-02-28", props["Due"].Date.Start)
	assert.Equal(t, "transfer", props["Notes"].RichText[0].Text.Content)
}

func TestRecordToPropertiesOmitsEmptyOptionals(t *testing.T) {
	props := RecordToProperties(task.Record{Title: "Bare"}, DefaultMappingConfig())
	assert.Contains(t, props, "Name")
	assert.Contains(t, props, "Done")
	assert.NotContains(t, props, "Due")
	assert.NotContains(t, props, "Notes")
}
