package habit

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/match"
	"github.com/colonyops/habit/internal/core/planning"
	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/data/cache"
	"github.com/colonyops/habit/internal/habitica"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

type scoreCall struct {
	ID  string
	Dir habitica.Direction
}

type fakeRemote struct {
	snap     task.UserSnapshot
	fetchErr error
	writeErr error

	created []habitica.NewTask
	updated []task.Task
	deleted []string
	scored  []scoreCall
	result  habitica.ScoreResult
}

func (f *fakeRemote) User(context.Context) (habitica.Profile, error) {
	if f.fetchErr != nil {
		return habitica.Profile{}, f.fetchErr
	}
	return habitica.Profile{Stats: f.snap.Stats, Tags: f.snap.Tags}, nil
}

func (f *fakeRemote) Fetch(context.Context) (task.UserSnapshot, error) {
	if f.fetchErr != nil {
		return task.UserSnapshot{}, f.fetchErr
	}
	return f.snap, nil
}

func (f *fakeRemote) CreateTask(_ context.Context, nt habitica.NewTask) (task.Task, error) {
	if f.writeErr != nil {
		return task.Task{}, f.writeErr
	}
	f.created = append(f.created, nt)
	return task.Task{ID: "new", Type: nt.Type, Text: nt.Text, Notes: nt.Notes, Date: nt.Date, Tags: task.NewTagSet(nt.Tags...)}, nil
}

func (f *fakeRemote) UpdateTask(_ context.Context, t task.Task) (task.Task, error) {
	if f.writeErr != nil {
		return task.Task{}, f.writeErr
	}
	f.updated = append(f.updated, t)
	return t, nil
}

func (f *fakeRemote) DeleteTask(_ context.Context, id string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRemote) Score(_ context.Context, id string, dir habitica.Direction) (habitica.ScoreResult, error) {
	if f.writeErr != nil {
		return habitica.ScoreResult{}, f.writeErr
	}
	f.scored = append(f.scored, scoreCall{ID: id, Dir: dir})
	return f.result, nil
}

func testSnapshot() task.UserSnapshot {
	return task.UserSnapshot{
		Stats: task.Stats{HP: 50, MaxHealth: 50, Exp: 100, GP: 10, Lvl: 5},
		Tags: []task.Tag{
			{ID: "m", Name: "morning"},
			{ID: "e", Name: "evening"},
			{ID: "w1", Name: "work-email"},
			{ID: "w2", Name: "work-code"},
		},
		Todos: []task.Task{
			{ID: "milk", Text: "Buy almond milk", Tags: task.NewTagSet("m")},
			{ID: "dentist", Text: "Call dentist"},
			{ID: "party", Text: "Plan party", Checklist: []task.ChecklistItem{
				{Text: "order cake", Completed: true},
				{Text: "send invitations"},
			}},
			{ID: "report", Text: "Write report", Completed: true},
		},
		FetchedAt: testNow,
	}
}

func newTestService(t *testing.T, remote *fakeRemote) (*TaskService, *cache.Store) {
	t.Helper()
	store := cache.New(filepath.Join(t.TempDir(), "cache.json"))
	resolver := dates.NewResolver(time.UTC, dates.WithClock(func() time.Time { return testNow }))
	svc := NewTaskService(remote, store, resolver, []string{"morning", "afternoon", "evening"}, zerolog.Nop())
	return svc, store
}

func TestSnapshot_RefreshesCache(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, store := newTestService(t, remote)

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.False(t, snap.Cached)

	id, ok := snap.Directory.ID("morning")
	require.True(t, ok)
	assert.Equal(t, "m", id)

	cached, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, cached.Todos, 4)
}

func TestSnapshot_FallsBackToCache(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, _ := newTestService(t, remote)

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	remote.fetchErr = errors.Join(habitica.ErrUnreachable, errors.New("dial tcp: connection refused"))

	snap, err := svc.Snapshot(context.Background())
	require.NoError(t, err)
	assert.True(t, snap.Cached)
	assert.Len(t, snap.Todos, 4)
	assert.Equal(t, 5, snap.Stats.Lvl)

	_, ok := snap.Directory.Name("e")
	assert.True(t, ok, "cached snapshot is prepared")
}

func TestSnapshot_UnreachableWithoutCache(t *testing.T) {
	remote := &fakeRemote{fetchErr: habitica.ErrUnreachable}
	svc, _ := newTestService(t, remote)

	_, err := svc.Snapshot(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, habitica.ErrUnreachable)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestSnapshot_APIErrorDoesNotFallBack(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, _ := newTestService(t, remote)

	_, err := svc.Snapshot(context.Background())
	require.NoError(t, err)

	remote.fetchErr = &habitica.APIError{Status: 401, Message: "NotAuthorized"}
	_, err = svc.Snapshot(context.Background())

	var apiErr *habitica.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.Status)
}

func TestSnapshot_DuplicateCategoryTag(t *testing.T) {
	snap := testSnapshot()
	snap.Tags = append(snap.Tags, task.Tag{ID: "m2", Name: "morning"})

	svc, _ := newTestService(t, &fakeRemote{snap: snap})

	_, err := svc.Snapshot(context.Background())
	require.ErrorIs(t, err, task.ErrDuplicateCategoryTag)
}

func TestFind(t *testing.T) {
	svc, _ := newTestService(t, &fakeRemote{snap: testSnapshot()})

	sel, err := svc.Find(context.Background(), "buy milk")
	require.NoError(t, err)
	assert.Equal(t, "milk", sel.Task.ID)
	assert.False(t, sel.IsChecklistItem())

	sel, err = svc.Find(context.Background(), "invitations")
	require.NoError(t, err)
	require.True(t, sel.IsChecklistItem())
	assert.Equal(t, "party", sel.Parent.ID)
	assert.Equal(t, 1, sel.Index)

	sel, err = svc.Find(context.Background(), "invitations", task.WithoutChecklist())
	require.NoError(t, err)
	assert.False(t, sel.IsChecklistItem())

	sel, err = svc.Find(context.Background(), "report", task.CompletedOnly())
	require.NoError(t, err)
	assert.Equal(t, "report", sel.Task.ID)
}

func TestFind_NoCandidates(t *testing.T) {
	svc, _ := newTestService(t, &fakeRemote{snap: task.UserSnapshot{}})

	_, err := svc.Find(context.Background(), "anything")
	require.ErrorIs(t, err, match.ErrNoMatch)
}

func TestAdd(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, _ := newTestService(t, remote)

	created, err := svc.Add(context.Background(), AddOptions{
		Text: "  Water plants ",
		Due:  "tomorrow",
		Plan: "tomorrow at 3pm",
		Tags: []string{"+morning", "work-*"},
	})
	require.NoError(t, err)
	assert.Equal(t, "new", created.ID)

	require.Len(t, remote.created, 1)
	nt := remote.created[0]
	assert.Equal(t, task.TypeTodo, nt.Type)
	assert.Equal(t, "Water plants", nt.Text)
	assert.Equal(t, []string{"m", "w2", "w1"}, nt.Tags)

	require.NotNil(t, nt.Date)
	assert.True(t, time.Date(2024, 1, 2, 18, 0, 0, 0, time.UTC).Equal(nt.Date.Time))

	plan := planning.Decode(nt.Notes)
	require.NotNil(t, plan)
	assert.True(t, time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC).Equal(*plan))
}

func TestAdd_Errors(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	_, err := svc.Add(ctx, AddOptions{Text: "   "})
	require.ErrorIs(t, err, ErrEmptyText)

	_, err = svc.Add(ctx, AddOptions{Text: "x", Tags: []string{"+nope"}})
	var unknown *UnknownTagError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Tag)
	assert.Contains(t, unknown.Valid, "morning")

	_, err = svc.Add(ctx, AddOptions{Text: "x", Due: "zzqx"})
	require.ErrorIs(t, err, dates.ErrAmbiguousDate)

	assert.Empty(t, remote.created)
}

func TestComplete_TopLevel(t *testing.T) {
	remote := &fakeRemote{
		snap:   testSnapshot(),
		result: habitica.ScoreResult{HP: 50, Exp: 112, GP: 11.5, Lvl: 5},
	}
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	sel, err := svc.Find(ctx, "dentist")
	require.NoError(t, err)

	done, err := svc.Complete(ctx, sel)
	require.NoError(t, err)

	assert.Equal(t, []scoreCall{{ID: "dentist", Dir: habitica.Up}}, remote.scored)
	require.NotNil(t, done.Score)
	assert.Nil(t, done.Updated)
	assert.Equal(t, []string{"12 XP!", "1.5 GP!"}, done.Changes)
}

func TestComplete_ChecklistItem(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	sel, err := svc.Find(ctx, "send invitations")
	require.NoError(t, err)
	require.True(t, sel.IsChecklistItem())

	done, err := svc.Complete(ctx, sel)
	require.NoError(t, err)

	assert.Empty(t, remote.scored)
	require.Len(t, remote.updated, 1)
	assert.Equal(t, "party", remote.updated[0].ID)
	assert.True(t, remote.updated[0].Checklist[1].Completed)
	require.NotNil(t, done.Updated)

	assert.False(t, sel.Parent.Checklist[1].Completed, "selection is not mutated")
}

func TestUncomplete(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot(), result: habitica.ScoreResult{HP: 50, Exp: 90, GP: 9, Lvl: 5}}
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	sel, err := svc.Find(ctx, "write report", task.CompletedOnly())
	require.NoError(t, err)

	done, err := svc.Uncomplete(ctx, sel)
	require.NoError(t, err)
	assert.Equal(t, []scoreCall{{ID: "report", Dir: habitica.Down}}, remote.scored)
	assert.Empty(t, done.Changes)
}

func TestPlan(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, _ := newTestService(t, remote)

	when := time.Date(2024, 1, 5, 18, 0, 0, 0, time.UTC)
	updated, err := svc.Plan(context.Background(), task.Task{ID: "dentist", Notes: "old notes"}, when)
	require.NoError(t, err)

	require.Len(t, remote.updated, 1)
	got := planning.Get(updated)
	require.NotNil(t, got)
	assert.True(t, when.Equal(*got))
	assert.NotContains(t, updated.Notes, "old notes")
}

func TestAddChecklist(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, _ := newTestService(t, remote)
	ctx := context.Background()

	parent := testSnapshot().Todos[2]
	updated, err := svc.AddChecklist(ctx, parent, "buy balloons")
	require.NoError(t, err)

	require.Len(t, updated.Checklist, 3)
	assert.Equal(t, "buy balloons", updated.Checklist[2].Text)
	assert.False(t, updated.Checklist[2].Completed)
	assert.Len(t, parent.Checklist, 2)

	_, err = svc.AddChecklist(ctx, parent, " ")
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestDelete(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot()}
	svc, _ := newTestService(t, remote)

	require.NoError(t, svc.Delete(context.Background(), task.Task{ID: "dentist"}))
	assert.Equal(t, []string{"dentist"}, remote.deleted)
}

func TestWrites_DoNotFallBack(t *testing.T) {
	remote := &fakeRemote{snap: testSnapshot(), writeErr: habitica.ErrUnreachable}
	svc, _ := newTestService(t, remote)

	err := svc.Delete(context.Background(), task.Task{ID: "dentist"})
	require.ErrorIs(t, err, habitica.ErrUnreachable)

	_, err = svc.Plan(context.Background(), task.Task{ID: "dentist"}, testNow)
	require.ErrorIs(t, err, habitica.ErrUnreachable)
}
