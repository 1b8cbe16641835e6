// Package planning stores a task's planning date inside its notes field.
//
// The remote data model has no field for "intend to work on this by", so the
// date is written to the notes as a single YAML timestamp scalar. Setting a
// planning date replaces whatever the notes held before.
package planning

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/colonyops/habit/internal/core/task"
)

const timestampTag = "!!timestamp"

// Encode serializes t as a YAML timestamp, keeping its zone offset.
func Encode(t time.Time) string {
	out, err := yaml.Marshal(t)
	if err != nil {
		// time.Time always marshals; fall back to the same layout yaml uses
		return t.Format(time.RFC3339Nano) + "\n"
	}
	return string(out)
}

// Decode parses notes written by Encode. Notes holding anything other than
// a single timestamp with a time of day decode to nil.
func Decode(notes string) *time.Time {
	if strings.TrimSpace(notes) == "" {
		return nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(notes), &doc); err != nil {
		return nil
	}

	node := &doc
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) != 1 {
			return nil
		}
		node = node.Content[0]
	}

	if node.Kind != yaml.ScalarNode || node.Tag != timestampTag {
		return nil
	}
	if !hasClock(node.Value) {
		return nil
	}

	var t time.Time
	if err := node.Decode(&t); err != nil {
		return nil
	}
	return &t
}

// hasClock rejects date-only timestamps such as "2024-01-02".
func hasClock(v string) bool {
	return strings.ContainsAny(v, "Tt ") && strings.Contains(v, ":")
}

// Get returns the planning date stored in the task's notes, or nil.
func Get(t task.Task) *time.Time {
	return Decode(t.Notes)
}

// Set overwrites the task's notes with an encoded planning date.
func Set(t *task.Task, when time.Time) {
	t.Notes = Encode(when)
}
