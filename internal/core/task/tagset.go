package task

import (
	"encoding/json"
	"fmt"
	"slices"
)

// TagSet is the set of tag ids attached to a task.
//
// The remote has used two encodings over time: a list of ids, and an object
// mapping id to a boolean. Only ids mapped to true are members; absent and
// false are both "not a member".
type TagSet struct {
	ids []string
}

// NewTagSet builds a set from ids, dropping duplicates and empty ids while
// keeping first-seen order.
func NewTagSet(ids ...string) TagSet {
	var s TagSet
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports whether id is a member.
func (s TagSet) Has(id string) bool {
	return slices.Contains(s.ids, id)
}

// Add inserts id if it is not already present.
func (s *TagSet) Add(id string) {
	if id == "" || s.Has(id) {
		return
	}
	s.ids = append(s.ids, id)
}

// Remove deletes id from the set.
func (s *TagSet) Remove(id string) {
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
}

// IDs returns the members in insertion order.
func (s TagSet) IDs() []string {
	return slices.Clone(s.ids)
}

// Len returns the number of members.
func (s TagSet) Len() int {
	return len(s.ids)
}

// MarshalJSON encodes the set as a list of ids.
func (s TagSet) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

// UnmarshalJSON accepts a list of ids, an id->bool object, or null.
func (s *TagSet) UnmarshalJSON(b []byte) error {
	*s = TagSet{}

	var list []string
	if err := json.Unmarshal(b, &list); err == nil {
		for _, id := range list {
			s.Add(id)
		}
		return nil
	}

	var membership map[string]bool
	if err := json.Unmarshal(b, &membership); err != nil {
		return fmt.Errorf("decode tags: %w", err)
	}

	ids := make([]string, 0, len(membership))
	for id, member := range membership {
		if member {
			ids = append(ids, id)
		}
	}
	// map iteration order is random
	slices.Sort(ids)
	for _, id := range ids {
		s.Add(id)
	}
	return nil
}
