// Package task defines the todo domain model shared by the remote client,
// the local cache, and the organizing and matching logic.
package task

import (
	"strings"
	"time"
)

// TypeTodo is the remote task type for one-off todos.
const TypeTodo = "todo"

// Task is a single todo as stored by the remote service.
//
// Notes is dual-purpose: it holds either human-written text or an encoded
// planning date (see package planning). Never both.
type Task struct {
	ID            string          `json:"id"`
	Type          string          `json:"type,omitempty"`
	Text          string          `json:"text"`
	Notes         string          `json:"notes"`
	Completed     bool            `json:"completed"`
	Date          *Time           `json:"date,omitempty"`
	DateCompleted *Time           `json:"dateCompleted,omitempty"`
	Tags          TagSet          `json:"tags"`
	Checklist     []ChecklistItem `json:"checklist,omitempty"`
}

// Due returns the hard due date, or nil when the task has none.
func (t Task) Due() *time.Time {
	return t.Date.Ptr()
}

// CompletedAt returns when the task was completed, or nil.
func (t Task) CompletedAt() *time.Time {
	return t.DateCompleted.Ptr()
}

// OpenChecklist returns the incomplete checklist items in order.
func (t Task) OpenChecklist() []ChecklistItem {
	var open []ChecklistItem
	for _, item := range t.Checklist {
		if !item.Completed {
			open = append(open, item)
		}
	}
	return open
}

// ChecklistItem is a sub-task owned by its parent Task. It is addressed by
// (parent id, position); ID is carried through updates but never used to
// look an item up.
type ChecklistItem struct {
	ID        string `json:"id,omitempty"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Tag is a user-defined tag. Colors come from configuration, not the remote.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stats is the subset of user stats the CLI displays.
type Stats struct {
	HP          float64 `json:"hp"`
	MaxHealth   float64 `json:"maxHealth"`
	MP          float64 `json:"mp"`
	MaxMP       float64 `json:"maxMP"`
	Exp         float64 `json:"exp"`
	ToNextLevel float64 `json:"toNextLevel"`
	GP          float64 `json:"gp"`
	Lvl         int     `json:"lvl"`
}

// Time is a timestamp as sent by the remote service. Empty strings and
// null both decode to the zero value.
type Time struct {
	time.Time
}

// NewTime wraps t, returning nil for the zero time.
func NewTime(t time.Time) *Time {
	if t.IsZero() {
		return nil
	}
	return &Time{Time: t}
}

// Ptr returns the wrapped time, or nil when unset.
func (t *Time) Ptr() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339Nano) + `"`), nil
}
