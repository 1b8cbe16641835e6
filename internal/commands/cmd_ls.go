package commands

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/match"
	"github.com/colonyops/habit/internal/core/organize"
	"github.com/colonyops/habit/internal/core/styles"
	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/habit"
	"github.com/colonyops/habit/pkg/iojson"
)

type LsCmd struct {
	flags *Flags
	app   *habit.App

	// flags
	raw       bool
	completed bool
	grep      string
}

// NewLsCmd creates a new ls command
func NewLsCmd(flags *Flags, app *habit.App) *LsCmd {
	return &LsCmd{flags: flags, app: app}
}

// Register adds the ls command to the application
func (cmd *LsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "ls",
		Usage:     "List open todos grouped by planning date",
		UsageText: "habit ls [+tag ...] [--raw] [--completed] [--grep text]",
		Description: `Lists open todos in three kinds of groups: OVERDUE, one group per planned
day, and Unplanned. Within a group todos are ordered by category (in the
order configured) and then by due date.

Pass +tag arguments to only show todos carrying every given tag. Tag names
may be glob patterns, e.g. +work-*.

Use --completed to append recently completed todos and --raw for JSON lines.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "output todos as JSON lines",
				Destination: &cmd.raw,
			},
			&cli.BoolFlag{
				Name:        "completed",
				Usage:       "also list recently completed todos",
				Destination: &cmd.completed,
			},
			&cli.StringFlag{
				Name:        "grep",
				Aliases:     []string{"g"},
				Usage:       "fuzzy filter todos by text",
				Destination: &cmd.grep,
			},
		},
		ShellComplete: TagCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *LsCmd) run(ctx context.Context, c *cli.Command) error {
	tagArgs, rest := habit.SplitTagArgs(c.Args().Slice())
	if len(rest) > 0 {
		return fmt.Errorf("unexpected arguments %q; tags must start with '+'", strings.Join(rest, " "))
	}

	snap, err := cmd.app.Tasks.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load todos: %w", err)
	}

	out := c.Root().Writer
	writeCachedNotice(out, snap)

	groups, err := habit.TagGroups(snap.Directory, tagArgs)
	if err != nil {
		return err
	}
	filter := func(todos []task.Task) []task.Task {
		return grepTodos(organize.FilterByTags(todos, groups), cmd.grep)
	}

	todos := filter(snap.Incomplete())

	var completed []task.Task
	if cmd.completed {
		completed = filter(snap.Completed())
		slices.SortStableFunc(completed, func(a, b task.Task) int {
			return compareDesc(a.CompletedAt(), b.CompletedAt())
		})
	}

	// JSON output mode
	if cmd.raw {
		for _, t := range slices.Concat(todos, completed) {
			if err := iojson.WriteLine(out, t); err != nil {
				return fmt.Errorf("encode todo: %w", err)
			}
		}
		return nil
	}

	now := cmd.app.Dates.Now()

	sorted, err := organize.SortAndGroup(todos, organize.Options{
		Directory:  snap.Directory,
		Categories: cmd.flags.Config.Categories,
		Now:        now,
	})
	if err != nil {
		return err
	}

	for _, g := range sorted {
		header := styles.HeaderStyle
		if g.Label == organize.LabelOverdue {
			header = styles.OverdueStyle
		}
		_, _ = fmt.Fprintln(out, header.Render(g.Label+":"))

		for _, e := range g.Entries {
			_, _ = fmt.Fprintf(out, "\t%s\n", colorFor(cmd.flags.Config, e.Category, e.Task.Text))
		}
	}

	if len(completed) > 0 {
		_, _ = fmt.Fprintln(out, styles.HeaderStyle.Render("Completed:"))
		for _, t := range completed {
			done := ""
			if at := t.CompletedAt(); at != nil {
				done = dates.RelativeTime(at.In(now.Location()), now)
			}
			_, _ = fmt.Fprintf(out, "\t%-40s %s\n", t.Text, styles.MutedStyle.Render(done))
		}
	}

	return nil
}

// grepTodos keeps todos whose text fuzzily contains pattern, in input order.
func grepTodos(todos []task.Task, pattern string) []task.Task {
	if pattern == "" {
		return todos
	}

	texts := make([]string, len(todos))
	for i, t := range todos {
		texts[i] = t.Text
	}

	idx := match.Filter(pattern, texts)
	out := make([]task.Task, 0, len(idx))
	for _, i := range idx {
		out = append(out, todos[i])
	}
	return out
}

// compareDesc orders newest first with nil last.
func compareDesc(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return b.Compare(*a)
	}
}
