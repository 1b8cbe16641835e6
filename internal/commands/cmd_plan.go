package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/habit"
)

type PlanCmd struct {
	flags *Flags
	app   *habit.App
}

// NewPlanCmd creates a new plan command
func NewPlanCmd(flags *Flags, app *habit.App) *PlanCmd {
	return &PlanCmd{flags: flags, app: app}
}

// Register adds the plan command to the application
func (cmd *PlanCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "plan",
		Usage:     "Set the planning date of a todo",
		UsageText: `habit plan "<todo>" "<when>"`,
		Description: `Sets when you intend to do the todo that best matches the first argument.
The second argument is a natural language date such as "tomorrow 9am" or
"next monday". A date without a time means 18:00.

The planning date replaces the todo's notes.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *PlanCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("usage: %s", c.UsageText)
	}
	query, phrase := c.Args().Get(0), c.Args().Get(1)

	when, err := cmd.app.Dates.ResolveNow(phrase)
	if err != nil {
		return fmt.Errorf("parse planning date: %w", err)
	}

	sel, err := cmd.app.Tasks.Find(ctx, query, task.WithoutChecklist())
	if err != nil {
		return handleNoMatch(c, err)
	}

	out := c.Root().Writer
	writeCachedNotice(out, sel.Snapshot)

	now := cmd.app.Dates.Now()
	ok, err := cmd.flags.confirm(fmt.Sprintf("Change do-date of '%s' to %s?", sel.Task.Text, dates.Relative(when, now)))
	if err != nil || !ok {
		return err
	}

	updated, err := cmd.app.Tasks.Plan(ctx, *sel.Task, when)
	if err != nil {
		return fmt.Errorf("plan todo: %w", err)
	}

	_, _ = fmt.Fprintln(out, taskLine(updated, now))
	return nil
}
