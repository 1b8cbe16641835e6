package task

// Searchable is one candidate for fuzzy matching: either a top-level task
// or one checklist item of a task.
type Searchable struct {
	Task   *Task          // the matched task; for checklist items, same as Parent
	Item   *ChecklistItem // set only for checklist items
	Parent *Task          // nil for top-level tasks
	Index  int            // checklist position, -1 for top-level tasks
}

// IsChecklistItem reports whether the entry targets a checklist item.
func (s Searchable) IsChecklistItem() bool {
	return s.Item != nil
}

// Text is the display text used for matching.
func (s Searchable) Text() string {
	if s.Item != nil {
		return s.Item.Text
	}
	if s.Task != nil {
		return s.Task.Text
	}
	return ""
}

type searchOptions struct {
	checklist bool
	completed bool
}

// SearchOption configures BuildSearchable.
type SearchOption func(*searchOptions)

// WithoutChecklist limits the candidates to top-level tasks.
func WithoutChecklist() SearchOption {
	return func(o *searchOptions) { o.checklist = false }
}

// CompletedOnly searches completed top-level tasks instead of open ones.
// Checklist items are never included.
func CompletedOnly() SearchOption {
	return func(o *searchOptions) {
		o.completed = true
		o.checklist = false
	}
}

// BuildSearchable flattens the incomplete tasks and their incomplete
// checklist items into a candidate list. Order follows the input: each task
// is followed by its own checklist items.
//
// The returned entries point into tasks; callers mutating an entry mutate
// the slice element.
func BuildSearchable(tasks []Task, opts ...SearchOption) []Searchable {
	o := searchOptions{checklist: true}
	for _, opt := range opts {
		opt(&o)
	}

	var out []Searchable
	for i := range tasks {
		t := &tasks[i]
		if t.Completed != o.completed {
			continue
		}
		out = append(out, Searchable{Task: t, Index: -1})

		if !o.checklist {
			continue
		}
		for j := range t.Checklist {
			item := &t.Checklist[j]
			if item.Completed {
				continue
			}
			out = append(out, Searchable{Task: t, Item: item, Parent: t, Index: j})
		}
	}
	return out
}
