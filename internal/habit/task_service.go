package habit

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/match"
	"github.com/colonyops/habit/internal/core/planning"
	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/habitica"
)

// ErrEmptyText is returned when creating a task or checklist item without text.
var ErrEmptyText = errors.New("text cannot be empty")

// Remote is the subset of the Habitica client the service uses.
type Remote interface {
	User(ctx context.Context) (habitica.Profile, error)
	Fetch(ctx context.Context) (task.UserSnapshot, error)
	CreateTask(ctx context.Context, nt habitica.NewTask) (task.Task, error)
	UpdateTask(ctx context.Context, t task.Task) (task.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Score(ctx context.Context, id string, dir habitica.Direction) (habitica.ScoreResult, error)
}

// Cache persists the last good snapshot.
type Cache interface {
	Save(snap task.UserSnapshot) error
	Load() (task.UserSnapshot, error)
}

// TaskService reads the user's todos (remotely, or from the cache when
// offline) and applies changes to them remotely.
type TaskService struct {
	remote     Remote
	cache      Cache
	dates      *dates.Resolver
	categories []string
	log        zerolog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(remote Remote, cache Cache, resolver *dates.Resolver, categories []string, log zerolog.Logger) *TaskService {
	return &TaskService{
		remote:     remote,
		cache:      cache,
		dates:      resolver,
		categories: categories,
		log:        log,
	}
}

// Snapshot fetches the current state and refreshes the cache. When the
// remote is unreachable the cached snapshot is returned with Cached set; if
// there is no cache either, both errors are returned.
func (s *TaskService) Snapshot(ctx context.Context) (task.UserSnapshot, error) {
	snap, err := s.remote.Fetch(ctx)
	switch {
	case err == nil:
		if err := s.cache.Save(snap); err != nil {
			s.log.Warn().Ctx(ctx).Err(err).Msg("failed to update cache")
		}
	case errors.Is(err, habitica.ErrUnreachable):
		s.log.Warn().Ctx(ctx).Err(err).Msg("remote unreachable, using cached snapshot")

		cached, cacheErr := s.cache.Load()
		if cacheErr != nil {
			return task.UserSnapshot{}, errors.Join(err, cacheErr)
		}
		snap = cached
		snap.Cached = true
	default:
		return task.UserSnapshot{}, err
	}

	if err := snap.Prepare(s.categories); err != nil {
		return task.UserSnapshot{}, err
	}
	return snap, nil
}

// Selection is a matched task or checklist item together with the snapshot
// it was found in.
type Selection struct {
	task.Searchable
	Snapshot task.UserSnapshot
}

// Find fetches a snapshot and returns the candidate best matching query.
// By default open tasks and their open checklist items are candidates; see
// task.WithoutChecklist and task.CompletedOnly.
func (s *TaskService) Find(ctx context.Context, query string, opts ...task.SearchOption) (Selection, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return Selection{}, err
	}
	return Select(snap, query, opts...)
}

// Select matches query against an already loaded snapshot.
func Select(snap task.UserSnapshot, query string, opts ...task.SearchOption) (Selection, error) {
	candidates := task.BuildSearchable(snap.Todos, opts...)
	best, err := match.Best(query, candidates)
	if err != nil {
		return Selection{}, err
	}
	return Selection{Searchable: best, Snapshot: snap}, nil
}

// AddOptions describes a new todo. Due and Plan are date phrases.
type AddOptions struct {
	Text string
	Due  string
	Plan string
	Tags []string // tag names, optionally prefixed with '+', globs allowed
}

// Add creates a todo. Tags are resolved against the current snapshot.
func (s *TaskService) Add(ctx context.Context, opts AddOptions) (task.Task, error) {
	text := strings.TrimSpace(opts.Text)
	if text == "" {
		return task.Task{}, ErrEmptyText
	}

	nt := habitica.NewTask{Type: task.TypeTodo, Text: text}

	if len(opts.Tags) > 0 {
		snap, err := s.Snapshot(ctx)
		if err != nil {
			return task.Task{}, err
		}
		ids, err := TagIDs(snap.Directory, opts.Tags)
		if err != nil {
			return task.Task{}, err
		}
		nt.Tags = ids
	}

	if opts.Due != "" {
		due, err := s.dates.ResolveNow(opts.Due)
		if err != nil {
			return task.Task{}, fmt.Errorf("due date %q: %w", opts.Due, err)
		}
		nt.Date = task.NewTime(due)
	}

	if opts.Plan != "" {
		plan, err := s.dates.ResolveNow(opts.Plan)
		if err != nil {
			return task.Task{}, fmt.Errorf("plan date %q: %w", opts.Plan, err)
		}
		nt.Notes = planning.Encode(plan)
	}

	created, err := s.remote.CreateTask(ctx, nt)
	if err != nil {
		return task.Task{}, err
	}

	s.log.Info().Ctx(ctx).Str("id", created.ID).Str("text", created.Text).Msg("task created")
	return created, nil
}

// Completion is the outcome of completing or reopening a selection.
type Completion struct {
	// Updated is the parent task after a checklist item was completed.
	Updated *task.Task
	// Score is set when a top-level task was scored.
	Score *habitica.ScoreResult
	// Changes describes the stat change caused by scoring.
	Changes []string
}

// Complete completes the selection: a checklist item is marked done inside
// its parent, a top-level task is scored up.
func (s *TaskService) Complete(ctx context.Context, sel Selection) (Completion, error) {
	if sel.IsChecklistItem() {
		parent := *sel.Parent
		parent.Checklist = slices.Clone(parent.Checklist)
		parent.Checklist[sel.Index].Completed = true

		updated, err := s.remote.UpdateTask(ctx, parent)
		if err != nil {
			return Completion{}, err
		}

		s.log.Info().Ctx(ctx).Str("id", parent.ID).Int("item", sel.Index).Msg("checklist item completed")
		return Completion{Updated: &updated}, nil
	}

	return s.score(ctx, sel, habitica.Up)
}

// Uncomplete scores a completed top-level task down, reopening it.
func (s *TaskService) Uncomplete(ctx context.Context, sel Selection) (Completion, error) {
	if sel.IsChecklistItem() {
		return Completion{}, fmt.Errorf("cannot reopen checklist item %q", sel.Text())
	}
	return s.score(ctx, sel, habitica.Down)
}

func (s *TaskService) score(ctx context.Context, sel Selection, dir habitica.Direction) (Completion, error) {
	res, err := s.remote.Score(ctx, sel.Task.ID, dir)
	if err != nil {
		return Completion{}, err
	}

	s.log.Info().Ctx(ctx).Str("id", sel.Task.ID).Str("direction", string(dir)).Msg("task scored")
	return Completion{
		Score:   &res,
		Changes: StatChange(sel.Snapshot.Stats, res),
	}, nil
}

// Plan sets the planning date of t, replacing its notes.
func (s *TaskService) Plan(ctx context.Context, t task.Task, when time.Time) (task.Task, error) {
	planning.Set(&t, when)

	updated, err := s.remote.UpdateTask(ctx, t)
	if err != nil {
		return task.Task{}, err
	}

	s.log.Info().Ctx(ctx).Str("id", t.ID).Time("plan", when).Msg("planning date set")
	return updated, nil
}

// AddChecklist appends an open checklist item to parent.
func (s *TaskService) AddChecklist(ctx context.Context, parent task.Task, text string) (task.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return task.Task{}, ErrEmptyText
	}

	parent.Checklist = append(slices.Clone(parent.Checklist), task.ChecklistItem{Text: text})

	updated, err := s.remote.UpdateTask(ctx, parent)
	if err != nil {
		return task.Task{}, err
	}

	s.log.Info().Ctx(ctx).Str("id", parent.ID).Str("item", text).Msg("checklist item added")
	return updated, nil
}

// Delete removes t permanently.
func (s *TaskService) Delete(ctx context.Context, t task.Task) error {
	if err := s.remote.DeleteTask(ctx, t.ID); err != nil {
		return err
	}

	s.log.Info().Ctx(ctx).Str("id", t.ID).Msg("task deleted")
	return nil
}
