package habitica

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/colonyops/habit/internal/core/task"
)

// TaskList selects which todo list Tasks returns.
type TaskList string

const (
	ListTodos          TaskList = "todos"
	ListCompletedTodos TaskList = "completedTodos"
)

// Direction is a scoring direction.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Profile is the part of GET /user the CLI reads.
type Profile struct {
	Stats task.Stats `json:"stats"`
	Tags  []task.Tag `json:"tags"`
}

// NewTask is the body of a create request.
type NewTask struct {
	Type      string               `json:"type"`
	Text      string               `json:"text"`
	Notes     string               `json:"notes,omitempty"`
	Date      *task.Time           `json:"date,omitempty"`
	Tags      []string             `json:"tags,omitempty"`
	Checklist []task.ChecklistItem `json:"checklist,omitempty"`
}

// Drop is an item awarded by scoring a task.
type Drop struct {
	Key  string `json:"key"`
	Type string `json:"type"`
}

// ScoreResult is the user's stats after scoring, plus any drop.
type ScoreResult struct {
	HP    float64 `json:"hp"`
	MP    float64 `json:"mp"`
	Exp   float64 `json:"exp"`
	GP    float64 `json:"gp"`
	Lvl   int     `json:"lvl"`
	Delta float64 `json:"delta"`
	Tmp   struct {
		Drop *Drop `json:"drop,omitempty"`
	} `json:"_tmp"`
}

// Drop returns the awarded drop, or nil.
func (r ScoreResult) Drop() *Drop {
	return r.Tmp.Drop
}

// User fetches the profile: stats and tag definitions.
func (c *Client) User(ctx context.Context) (Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/user", nil, nil, &p); err != nil {
		return Profile{}, fmt.Errorf("get user: %w", err)
	}
	return p, nil
}

// Tasks fetches one of the user's todo lists.
func (c *Client) Tasks(ctx context.Context, list TaskList) ([]task.Task, error) {
	var tasks []task.Task
	q := url.Values{"type": []string{string(list)}}
	if err := c.do(ctx, http.MethodGet, "/tasks/user", q, nil, &tasks); err != nil {
		return nil, fmt.Errorf("list %s: %w", list, err)
	}
	return tasks, nil
}

// CreateTask creates a task and returns it as stored.
func (c *Client) CreateTask(ctx context.Context, nt NewTask) (task.Task, error) {
	if nt.Type == "" {
		nt.Type = task.TypeTodo
	}

	var out task.Task
	if err := c.do(ctx, http.MethodPost, "/tasks/user", nil, nt, &out); err != nil {
		return task.Task{}, fmt.Errorf("create task: %w", err)
	}
	return out, nil
}

// UpdateTask replaces the task's editable fields, checklist included.
func (c *Client) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	var out task.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(t.ID), nil, t, &out); err != nil {
		return task.Task{}, fmt.Errorf("update task %s: %w", t.ID, err)
	}
	return out, nil
}

// DeleteTask removes a task permanently.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}

// Score scores a task up (complete) or down (undo).
func (c *Client) Score(ctx context.Context, id string, dir Direction) (ScoreResult, error) {
	var out ScoreResult
	path := "/tasks/" + url.PathEscape(id) + "/score/" + string(dir)
	if err := c.do(ctx, http.MethodPost, path, nil, nil, &out); err != nil {
		return ScoreResult{}, fmt.Errorf("score task %s %s: %w", id, dir, err)
	}
	return out, nil
}

// Fetch assembles a fresh snapshot: profile plus open and recently
// completed todos. The snapshot is not prepared.
func (c *Client) Fetch(ctx context.Context) (task.UserSnapshot, error) {
	profile, err := c.User(ctx)
	if err != nil {
		return task.UserSnapshot{}, err
	}

	todos, err := c.Tasks(ctx, ListTodos)
	if err != nil {
		return task.UserSnapshot{}, err
	}

	done, err := c.Tasks(ctx, ListCompletedTodos)
	if err != nil {
		return task.UserSnapshot{}, err
	}

	return task.UserSnapshot{
		Stats:     profile.Stats,
		Tags:      profile.Tags,
		Todos:     append(todos, done...),
		FetchedAt: time.Now(),
	}, nil
}
