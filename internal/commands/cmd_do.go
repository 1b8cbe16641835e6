package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/habit"
)

type DoCmd struct {
	flags *Flags
	app   *habit.App
}

// NewDoCmd creates a new do command
func NewDoCmd(flags *Flags, app *habit.App) *DoCmd {
	return &DoCmd{flags: flags, app: app}
}

// Register adds the do and undo commands to the application
func (cmd *DoCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "do",
			Usage:     "Complete a todo or checklist item",
			UsageText: "habit do <todo...>",
			Description: `Completes the open todo or checklist item that best matches the arguments.
Completing a todo scores it and prints the resulting stat changes.`,
			Action: cmd.runDo,
		},
		&cli.Command{
			Name:        "undo",
			Usage:       "Reopen a completed todo",
			UsageText:   "habit undo <todo...>",
			Description: "Scores down the recently completed todo that best matches the arguments, reopening it.",
			Action:      cmd.runUndo,
		},
	)

	return app
}

func (cmd *DoCmd) runDo(ctx context.Context, c *cli.Command) error {
	sel, err := cmd.app.Tasks.Find(ctx, strings.Join(c.Args().Slice(), " "))
	if err != nil {
		return handleNoMatch(c, err)
	}

	out := c.Root().Writer
	writeCachedNotice(out, sel.Snapshot)

	ok, err := cmd.flags.confirm(fmt.Sprintf("Complete '%s'?", sel.Text()))
	if err != nil || !ok {
		return err
	}

	done, err := cmd.app.Tasks.Complete(ctx, sel)
	if err != nil {
		return fmt.Errorf("complete todo: %w", err)
	}

	if done.Updated != nil {
		_, _ = fmt.Fprintln(out, taskLine(*done.Updated, cmd.app.Dates.Now()))
		writeChecklist(out, *done.Updated)
		return nil
	}

	_, _ = fmt.Fprintf(out, "Completed '%s'\n", sel.Text())
	writeChanges(out, done.Changes)
	return nil
}

func (cmd *DoCmd) runUndo(ctx context.Context, c *cli.Command) error {
	sel, err := cmd.app.Tasks.Find(ctx, strings.Join(c.Args().Slice(), " "), task.CompletedOnly())
	if err != nil {
		return handleNoMatch(c, err)
	}

	out := c.Root().Writer
	writeCachedNotice(out, sel.Snapshot)

	ok, err := cmd.flags.confirm(fmt.Sprintf("Reopen '%s'?", sel.Text()))
	if err != nil || !ok {
		return err
	}

	done, err := cmd.app.Tasks.Uncomplete(ctx, sel)
	if err != nil {
		return fmt.Errorf("reopen todo: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Reopened '%s'\n", sel.Text())
	writeChanges(out, done.Changes)
	return nil
}
