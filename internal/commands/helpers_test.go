package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/config"
	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/planning"
	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/data/cache"
	"github.com/colonyops/habit/internal/habit"
	"github.com/colonyops/habit/internal/habitica"
)

var testNow = time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

// fakeHabitica serves the subset of the remote API the client uses from
// in-memory state.
type fakeHabitica struct {
	mu     sync.Mutex
	stats  task.Stats
	tags   []task.Tag
	todos  []task.Task
	score  habitica.ScoreResult
	scored []string
	nextID int
}

func newFakeHabitica() *fakeHabitica {
	tomorrow9 := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)
	lastWeek := time.Date(2023, 12, 28, 9, 0, 0, 0, time.UTC)

	return &fakeHabitica{
		stats: task.Stats{HP: 40, MaxHealth: 50, MP: 15, MaxMP: 30, Exp: 50, ToNextLevel: 100, GP: 12, Lvl: 3},
		tags: []task.Tag{
			{ID: "t-morning", Name: "morning"},
			{ID: "t-evening", Name: "evening"},
			{ID: "t-work", Name: "work"},
			{ID: "t-home", Name: "home"},
		},
		todos: []task.Task{
			{ID: "1", Text: "Buy almond milk", Notes: planning.Encode(tomorrow9), Tags: task.NewTagSet("t-home")},
			{ID: "2", Text: "Call dentist", Notes: planning.Encode(lastWeek), Tags: task.NewTagSet("t-morning")},
			{
				ID: "3", Text: "Write report", Tags: task.NewTagSet("t-work", "t-evening"),
				Checklist: []task.ChecklistItem{{ID: "c1", Text: "Outline"}, {ID: "c2", Text: "Draft"}},
			},
			{ID: "4", Text: "Pack groceries", Notes: "# Shopping\n\n- bags\n- list", Tags: task.NewTagSet("t-home")},
			{
				ID: "5", Text: "Water plants", Completed: true,
				DateCompleted: task.NewTime(time.Date(2023, 12, 31, 8, 0, 0, 0, time.UTC)),
			},
		},
		score:  habitica.ScoreResult{HP: 40, MP: 15, Exp: 62, GP: 13.5, Lvl: 3},
		nextID: 100,
	}
}

func (f *fakeHabitica) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /user", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		writeData(w, habitica.Profile{Stats: f.stats, Tags: f.tags})
	})
	mux.HandleFunc("GET /tasks/user", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		completed := r.URL.Query().Get("type") == string(habitica.ListCompletedTodos)
		out := []task.Task{}
		for _, t := range f.todos {
			if t.Completed == completed {
				out = append(out, t)
			}
		}
		writeData(w, out)
	})
	mux.HandleFunc("POST /tasks/user", func(w http.ResponseWriter, r *http.Request) {
		var nt habitica.NewTask
		if err := json.NewDecoder(r.Body).Decode(&nt); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		created := task.Task{
			ID: strconv.Itoa(f.nextID), Type: nt.Type, Text: nt.Text, Notes: nt.Notes,
			Date: nt.Date, Tags: task.NewTagSet(nt.Tags...),
		}
		f.todos = append(f.todos, created)
		writeData(w, created)
	})
	mux.HandleFunc("PUT /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		var t task.Task
		if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		i := f.index(r.PathValue("id"))
		if i < 0 {
			http.NotFound(w, r)
			return
		}
		f.todos[i] = t
		writeData(w, t)
	})
	mux.HandleFunc("DELETE /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		i := f.index(r.PathValue("id"))
		if i < 0 {
			http.NotFound(w, r)
			return
		}
		f.todos = slices.Delete(f.todos, i, i+1)
		writeData(w, struct{}{})
	})
	mux.HandleFunc("POST /tasks/{id}/score/{dir}", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		i := f.index(r.PathValue("id"))
		if i < 0 {
			http.NotFound(w, r)
			return
		}
		f.todos[i].Completed = r.PathValue("dir") == string(habitica.Up)
		f.scored = append(f.scored, r.PathValue("id")+"/"+r.PathValue("dir"))
		writeData(w, f.score)
	})
	return mux
}

func (f *fakeHabitica) index(id string) int {
	return slices.IndexFunc(f.todos, func(t task.Task) bool { return t.ID == id })
}

func (f *fakeHabitica) todo(t *testing.T, id string) task.Task {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.index(id)
	require.GreaterOrEqual(t, i, 0, "todo %s not found", id)
	return f.todos[i]
}

func writeData(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "data": v})
}

type registrar interface {
	Register(app *cli.Command) *cli.Command
}

type testEnv struct {
	fake   *fakeHabitica
	server *httptest.Server
	flags  *Flags
	app    *habit.App
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fake := newFakeHabitica()
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	dataDir := t.TempDir()
	cfg := &config.Config{
		UserID:     "3f2a9c1e-8b7d-4e6f-a5c4-1d2e3f4a5b6c",
		APIKey:     "key",
		APIURL:     srv.URL,
		Categories: []string{"morning", "afternoon", "evening"},
		Colors:     map[string]string{"morning": "red"},
		DataDir:    dataDir,
		Source:     filepath.Join(dataDir, "config.yaml"),
	}

	flags := &Flags{Yes: true, Config: cfg, DataDir: dataDir}
	resolver := dates.NewResolver(time.UTC, dates.WithClock(func() time.Time { return testNow }))
	remote := habitica.New(cfg.APIURL, cfg.UserID, cfg.APIKey)

	return &testEnv{
		fake:   fake,
		server: srv,
		flags:  flags,
		app:    habit.NewApp(cfg, remote, cache.New(cfg.CacheFile()), resolver),
	}
}

// run executes one command in-process and returns what it wrote.
func (e *testEnv) run(t *testing.T, cmd registrar, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	root := &cli.Command{
		Name:           "habit",
		Writer:         &buf,
		ErrWriter:      &buf,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
	cmd.Register(root)

	err := root.Run(context.Background(), append([]string{"habit"}, args...))
	return buf.String(), err
}
