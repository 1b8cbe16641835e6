package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/habit"
)

type DeleteCmd struct {
	flags *Flags
	app   *habit.App
}

// NewDeleteCmd creates a new delete command
func NewDeleteCmd(flags *Flags, app *habit.App) *DeleteCmd {
	return &DeleteCmd{flags: flags, app: app}
}

// Register adds the delete command to the application
func (cmd *DeleteCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "delete",
		Aliases:     []string{"rm"},
		Usage:       "Delete a todo",
		UsageText:   "habit delete <todo...>",
		Description: "Permanently deletes the open todo that best matches the arguments.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *DeleteCmd) run(ctx context.Context, c *cli.Command) error {
	sel, err := cmd.app.Tasks.Find(ctx, strings.Join(c.Args().Slice(), " "), task.WithoutChecklist())
	if err != nil {
		return handleNoMatch(c, err)
	}

	out := c.Root().Writer
	writeCachedNotice(out, sel.Snapshot)

	ok, err := cmd.flags.confirm(fmt.Sprintf("Delete '%s'?", sel.Task.Text))
	if err != nil || !ok {
		return err
	}

	if err := cmd.app.Tasks.Delete(ctx, *sel.Task); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Deleted '%s'\n", sel.Task.Text)
	return nil
}
