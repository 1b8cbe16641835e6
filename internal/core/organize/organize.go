// Package organize derives a task's category and orders tasks into
// planning-date groups for display.
package organize

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/planning"
	"github.com/colonyops/habit/internal/core/task"
)

// Group labels that are not relative dates.
const (
	LabelOverdue   = "OVERDUE"
	LabelUnplanned = "Unplanned"
)

// ErrMultipleCategoryTags marks a task carrying more than one category tag.
var ErrMultipleCategoryTags = errors.New("task has multiple category tags")

// MultipleCategoryTagsError reports which task broke the one-category rule.
type MultipleCategoryTagsError struct {
	TaskID string
	Tags   []string
}

func (e *MultipleCategoryTagsError) Error() string {
	return fmt.Sprintf("task %s has multiple category tags: %s", e.TaskID, strings.Join(e.Tags, ", "))
}

func (e *MultipleCategoryTagsError) Unwrap() error {
	return ErrMultipleCategoryTags
}

// PrimaryTag returns the single category tag on t, or "" when it has none.
// Decorative tags and ids unknown to dir are ignored.
func PrimaryTag(t task.Task, dir task.TagDirectory, categories []string) (string, error) {
	var found []string
	for _, id := range t.Tags.IDs() {
		name, ok := dir.Name(id)
		if !ok || !slices.Contains(categories, name) {
			continue
		}
		if !slices.Contains(found, name) {
			found = append(found, name)
		}
	}

	switch len(found) {
	case 0:
		return "", nil
	case 1:
		return found[0], nil
	default:
		slices.Sort(found)
		return "", &MultipleCategoryTagsError{TaskID: t.ID, Tags: found}
	}
}

// Entry is a task with the keys it was sorted by.
type Entry struct {
	Task     task.Task
	Category string
	Plan     *time.Time
}

// Group is a run of entries sharing a planning-date label.
type Group struct {
	Label   string
	Entries []Entry
}

// Options carries the context SortAndGroup needs.
type Options struct {
	Directory  task.TagDirectory
	Categories []string // display order of category tags
	Now        time.Time
}

// unplannedSentinel sorts unplanned tasks after every real planning date.
func unplannedSentinel(loc *time.Location) time.Time {
	return time.Date(2999, 12, 31, 0, 0, 0, 0, loc)
}

// SortAndGroup orders tasks by planning-date bucket, then category
// (configured order, uncategorized last), then due date (undated last), and
// splits them into labelled groups: OVERDUE, one group per planned day,
// Unplanned. Unplanned tasks sort as if planned for the sentinel date.
//
// Remaining ties are broken by exact planning time and then task id, so the
// output does not depend on the input order.
func SortAndGroup(tasks []task.Task, opts Options) ([]Group, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	today := dates.Day(now)
	sentinel := unplannedSentinel(now.Location())

	type keyed struct {
		Entry
		planKey  time.Time
		catIndex int
	}

	items := make([]keyed, 0, len(tasks))
	for _, t := range tasks {
		cat, err := PrimaryTag(t, opts.Directory, opts.Categories)
		if err != nil {
			return nil, err
		}

		plan := planning.Get(t)
		planKey := sentinel
		switch {
		case plan == nil:
		case bucket(plan, today) == LabelOverdue:
			planKey = time.Time{}
		default:
			planKey = dates.Day(plan.In(today.Location()))
		}

		catIndex := slices.Index(opts.Categories, cat)
		if cat == "" || catIndex < 0 {
			catIndex = len(opts.Categories)
		}

		items = append(items, keyed{
			Entry:    Entry{Task: t, Category: cat, Plan: plan},
			planKey:  planKey,
			catIndex: catIndex,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.planKey.Equal(b.planKey) {
			return a.planKey.Before(b.planKey)
		}
		if a.catIndex != b.catIndex {
			return a.catIndex < b.catIndex
		}
		if c := compareTimes(a.Task.Due(), b.Task.Due()); c != 0 {
			return c < 0
		}
		if c := compareTimes(a.Plan, b.Plan); c != 0 {
			return c < 0
		}
		return a.Task.ID < b.Task.ID
	})

	var groups []Group
	for _, it := range items {
		label := bucket(it.Plan, today)
		if n := len(groups); n > 0 && groups[n-1].Label == label {
			groups[n-1].Entries = append(groups[n-1].Entries, it.Entry)
			continue
		}
		groups = append(groups, Group{Label: label, Entries: []Entry{it.Entry}})
	}
	return groups, nil
}

func bucket(plan *time.Time, today time.Time) string {
	if plan == nil {
		return LabelUnplanned
	}
	day := plan.In(today.Location())
	if dates.Day(day).Before(today) {
		return LabelOverdue
	}
	return dates.Relative(day, today)
}

// compareTimes orders ascending with nil last.
func compareTimes(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return a.Compare(*b)
	}
}

// FilterByTags keeps tasks that carry at least one id from every group, in
// input order. A group usually holds one id; glob arguments expand to several.
func FilterByTags(tasks []task.Task, groups [][]string) []task.Task {
	if len(groups) == 0 {
		return tasks
	}

	var out []task.Task
	for _, t := range tasks {
		keep := true
		for _, group := range groups {
			if !slices.ContainsFunc(group, t.Tags.Has) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, t)
		}
	}
	return out
}
