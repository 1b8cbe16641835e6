package task

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrDuplicateCategoryTag is returned when two remote tags share the display
// name of a configured category, making name->id resolution ambiguous.
var ErrDuplicateCategoryTag = errors.New("duplicate category tag name")

// UserSnapshot is the full state fetched from the remote service.
type UserSnapshot struct {
	Stats     Stats     `json:"stats"`
	Tags      []Tag     `json:"tags"`
	Todos     []Task    `json:"todos"`
	FetchedAt time.Time `json:"fetched_at"`

	// Cached is set when the snapshot was served from the local cache
	// because the remote could not be reached.
	Cached bool `json:"-"`

	// Directory is derived from Tags by Prepare.
	Directory TagDirectory `json:"-"`
}

// Prepare builds the tag directory and checks that no two tags share the
// name of a category. Call once after every fetch or cache load.
func (s *UserSnapshot) Prepare(categories []string) error {
	seen := make(map[string]string)
	for _, tag := range s.Tags {
		if !slices.Contains(categories, tag.Name) {
			continue
		}
		if prev, ok := seen[tag.Name]; ok {
			return fmt.Errorf("%w: %q used by tags %s and %s", ErrDuplicateCategoryTag, tag.Name, prev, tag.ID)
		}
		seen[tag.Name] = tag.ID
	}

	s.Directory = NewTagDirectory(s.Tags)
	return nil
}

// Incomplete returns the todos that are not completed, in order.
func (s UserSnapshot) Incomplete() []Task {
	var out []Task
	for _, t := range s.Todos {
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// Completed returns the completed todos, in order.
func (s UserSnapshot) Completed() []Task {
	var out []Task
	for _, t := range s.Todos {
		if t.Completed {
			out = append(out, t)
		}
	}
	return out
}

// TagDirectory maps tag ids to display names and back.
type TagDirectory struct {
	names map[string]string
	ids   map[string]string
}

// NewTagDirectory indexes tags. When names collide the first tag wins the
// reverse mapping.
func NewTagDirectory(tags []Tag) TagDirectory {
	d := TagDirectory{
		names: make(map[string]string, len(tags)),
		ids:   make(map[string]string, len(tags)),
	}
	for _, tag := range tags {
		d.names[tag.ID] = tag.Name
		if _, ok := d.ids[tag.Name]; !ok {
			d.ids[tag.Name] = tag.ID
		}
	}
	return d
}

// Name returns the display name of a tag id.
func (d TagDirectory) Name(id string) (string, bool) {
	name, ok := d.names[id]
	return name, ok
}

// ID returns the tag id for a display name.
func (d TagDirectory) ID(name string) (string, bool) {
	id, ok := d.ids[name]
	return id, ok
}

// Names returns all known tag names, sorted.
func (d TagDirectory) Names() []string {
	names := make([]string, 0, len(d.ids))
	for name := range d.ids {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// NamesOf returns the display names of the tags in set, in set order.
// Unknown ids are skipped.
func (d TagDirectory) NamesOf(set TagSet) []string {
	var names []string
	for _, id := range set.IDs() {
		if name, ok := d.names[id]; ok {
			names = append(names, name)
		}
	}
	return names
}
