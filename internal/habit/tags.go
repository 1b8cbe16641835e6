package habit

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/colonyops/habit/internal/core/task"
)

// UnknownTagError is returned when a tag argument names no tag.
type UnknownTagError struct {
	Tag   string
	Valid []string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("tag %q not in [%s]", e.Tag, strings.Join(e.Valid, ", "))
}

// TagGroups resolves each tag argument to the ids it names. A leading '+' is
// ignored. Plain names yield one id; glob patterns (doublestar syntax) yield
// every matching tag and must match at least one.
func TagGroups(dir task.TagDirectory, args []string) ([][]string, error) {
	groups := make([][]string, 0, len(args))
	for _, arg := range args {
		name := strings.TrimPrefix(strings.TrimSpace(arg), "+")

		var ids []string
		if isGlob(name) {
			for _, candidate := range dir.Names() {
				ok, err := doublestar.Match(name, candidate)
				if err != nil {
					return nil, fmt.Errorf("tag pattern %q: %w", name, err)
				}
				if ok {
					id, _ := dir.ID(candidate)
					ids = append(ids, id)
				}
			}
		} else if id, ok := dir.ID(name); ok {
			ids = []string{id}
		}

		if len(ids) == 0 {
			return nil, &UnknownTagError{Tag: name, Valid: dir.Names()}
		}
		groups = append(groups, ids)
	}
	return groups, nil
}

// TagIDs resolves tag arguments to a flat, de-duplicated id list.
func TagIDs(dir task.TagDirectory, args []string) ([]string, error) {
	groups, err := TagGroups(dir, args)
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, group := range groups {
		for _, id := range group {
			if !slices.Contains(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// SplitTagArgs separates "+tag" arguments from the rest.
func SplitTagArgs(args []string) (tags, rest []string) {
	for _, arg := range args {
		if len(arg) > 1 && strings.HasPrefix(arg, "+") {
			tags = append(tags, arg)
			continue
		}
		rest = append(rest, arg)
	}
	return tags, rest
}

func isGlob(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
