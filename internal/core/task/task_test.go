package task

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_UnmarshalJSON(t *testing.T) {
	input := `{
		"id": "f45a05b3-c12e-42e5-9c9c-333333333333",
		"type": "todo",
		"text": "Buy milk",
		"notes": "",
		"completed": false,
		"date": "2023-01-01T12:00:00.000Z",
		"tags": ["t1", "t2"],
		"checklist": [
			{"id": "c1", "text": "oat", "completed": true},
			{"id": "c2", "text": "almond", "completed": false}
		]
	}`

	var got Task
	require.NoError(t, json.Unmarshal([]byte(input), &got))

	assert.Equal(t, "f45a05b3-c12e-42e5-9c9c-333333333333", got.ID)
	assert.Equal(t, "Buy milk", got.Text)
	assert.True(t, got.Tags.Has("t1"))
	assert.True(t, got.Tags.Has("t2"))
	require.Len(t, got.Checklist, 2)
	assert.Equal(t, []ChecklistItem{{ID: "c2", Text: "almond"}}, got.OpenChecklist())

	due := got.Due()
	require.NotNil(t, due)
	assert.True(t, due.Equal(time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.Nil(t, got.CompletedAt())
}

func TestTask_EmptyDate(t *testing.T) {
	var got Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","text":"x","date":""}`), &got))
	assert.Nil(t, got.Due())

	require.NoError(t, json.Unmarshal([]byte(`{"id":"a","text":"x","date":null}`), &got))
	assert.Nil(t, got.Due())
}

func TestTagSet_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "list", input: `["b", "a", "b"]`, want: []string{"b", "a"}},
		{name: "membership map", input: `{"b": true, "a": true, "c": false}`, want: []string{"a", "b"}},
		{name: "null", input: `null`, want: nil},
		{name: "empty map", input: `{}`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s TagSet
			require.NoError(t, json.Unmarshal([]byte(tt.input), &s))
			assert.Equal(t, tt.want, s.IDs())
		})
	}
}

func TestTagSet_FalseIsNotMember(t *testing.T) {
	var s TagSet
	require.NoError(t, json.Unmarshal([]byte(`{"urgent": false}`), &s))
	assert.False(t, s.Has("urgent"))
	assert.False(t, s.Has("never-set"))
	assert.Equal(t, 0, s.Len())
}

func TestTagSet_MarshalJSON(t *testing.T) {
	s := NewTagSet("a", "", "b", "a")
	s.Remove("b")
	s.Add("c")

	bits, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["a","c"]`, string(bits))

	bits, err = json.Marshal(TagSet{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(bits))
}

func TestUserSnapshot_Prepare(t *testing.T) {
	t.Run("builds directory", func(t *testing.T) {
		snap := UserSnapshot{Tags: []Tag{{ID: "1", Name: "work"}, {ID: "2", Name: "urgent"}}}
		require.NoError(t, snap.Prepare([]string{"work", "home"}))

		id, ok := snap.Directory.ID("work")
		assert.True(t, ok)
		assert.Equal(t, "1", id)

		name, ok := snap.Directory.Name("2")
		assert.True(t, ok)
		assert.Equal(t, "urgent", name)

		assert.Equal(t, []string{"urgent", "work"}, snap.Directory.Names())
		assert.Equal(t, []string{"urgent"}, snap.Directory.NamesOf(NewTagSet("2", "missing")))
	})

	t.Run("duplicate category name", func(t *testing.T) {
		snap := UserSnapshot{Tags: []Tag{{ID: "1", Name: "work"}, {ID: "2", Name: "work"}}}
		err := snap.Prepare([]string{"work"})
		require.ErrorIs(t, err, ErrDuplicateCategoryTag)
	})

	t.Run("duplicate decorative name is allowed", func(t *testing.T) {
		snap := UserSnapshot{Tags: []Tag{{ID: "1", Name: "misc"}, {ID: "2", Name: "misc"}}}
		require.NoError(t, snap.Prepare([]string{"work"}))
	})
}

func TestBuildSearchable(t *testing.T) {
	tasks := []Task{
		{ID: "a", Text: "Write report", Checklist: []ChecklistItem{
			{Text: "outline", Completed: true},
			{Text: "draft"},
			{Text: "edit"},
		}},
		{ID: "b", Text: "Done already", Completed: true, Checklist: []ChecklistItem{{Text: "hidden"}}},
		{ID: "c", Text: "Call dentist"},
	}

	entries := BuildSearchable(tasks)
	require.Len(t, entries, 4)

	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Text()
	}
	assert.Equal(t, []string{"Write report", "draft", "edit", "Call dentist"}, texts)

	assert.Nil(t, entries[0].Parent)
	assert.Equal(t, -1, entries[0].Index)
	assert.False(t, entries[0].IsChecklistItem())

	assert.Equal(t, "a", entries[1].Parent.ID)
	assert.Equal(t, 1, entries[1].Index)
	assert.Equal(t, 2, entries[2].Index)
	assert.True(t, entries[2].IsChecklistItem())

	// entries alias the input slice
	entries[1].Item.Completed = true
	assert.True(t, tasks[0].Checklist[1].Completed)
}

func TestBuildSearchable_WithoutChecklist(t *testing.T) {
	tasks := []Task{
		{ID: "a", Text: "Write report", Checklist: []ChecklistItem{{Text: "draft"}}},
		{ID: "c", Text: "Call dentist"},
	}

	entries := BuildSearchable(tasks, WithoutChecklist())
	require.Len(t, entries, 2)
	assert.Equal(t, "Write report", entries[0].Text())
	assert.Equal(t, "Call dentist", entries[1].Text())
}

func TestBuildSearchable_CompletedOnly(t *testing.T) {
	tasks := []Task{
		{ID: "open", Text: "Open task"},
		{ID: "done", Text: "Done task", Completed: true, Checklist: []ChecklistItem{{Text: "item"}}},
	}

	entries := BuildSearchable(tasks, CompletedOnly())
	require.Len(t, entries, 1)
	assert.Equal(t, "done", entries[0].Task.ID)
	assert.False(t, entries[0].IsChecklistItem())

	snap := UserSnapshot{Todos: tasks}
	require.Len(t, snap.Completed(), 1)
	assert.Equal(t, "done", snap.Completed()[0].ID)
}
