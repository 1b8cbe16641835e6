package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/habit"
)

type AddCheckCmd struct {
	flags *Flags
	app   *habit.App
}

// NewAddCheckCmd creates a new addcheck command
func NewAddCheckCmd(flags *Flags, app *habit.App) *AddCheckCmd {
	return &AddCheckCmd{flags: flags, app: app}
}

// Register adds the addcheck command to the application
func (cmd *AddCheckCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "addcheck",
		Usage:       "Add a checklist item to a todo",
		UsageText:   `habit addcheck "<item>" <todo...>`,
		Description: "Appends a checklist item to the open todo that best matches the remaining arguments.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *AddCheckCmd) run(ctx context.Context, c *cli.Command) error {
	args := c.Args().Slice()
	if len(args) < 2 {
		return fmt.Errorf("usage: %s", c.UsageText)
	}
	item, query := args[0], strings.Join(args[1:], " ")

	sel, err := cmd.app.Tasks.Find(ctx, query, task.WithoutChecklist())
	if err != nil {
		return handleNoMatch(c, err)
	}

	out := c.Root().Writer
	writeCachedNotice(out, sel.Snapshot)

	ok, err := cmd.flags.confirm(fmt.Sprintf("Add '%s' to '%s'?", item, sel.Task.Text))
	if err != nil || !ok {
		return err
	}

	updated, err := cmd.app.Tasks.AddChecklist(ctx, *sel.Task, item)
	if err != nil {
		return fmt.Errorf("add checklist item: %w", err)
	}

	_, _ = fmt.Fprintln(out, taskLine(updated, cmd.app.Dates.Now()))
	writeChecklist(out, updated)
	return nil
}
