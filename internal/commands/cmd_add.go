package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/habit"
)

type AddCmd struct {
	flags *Flags
	app   *habit.App

	// flags
	due  string
	plan string
}

// NewAddCmd creates a new add command
func NewAddCmd(flags *Flags, app *habit.App) *AddCmd {
	return &AddCmd{flags: flags, app: app}
}

// Register adds the add command to the application
func (cmd *AddCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "add",
		Usage:     "Add a todo",
		UsageText: `habit add <text...> [--due "friday"] [--plan "tomorrow 9am"] [+tag ...]`,
		Description: `Creates a todo. Arguments starting with '+' are tags; the rest is the todo
text. Dates are natural language; a date without a time means 18:00.

The planning date (--plan) is when you intend to do the todo. It is stored in
the todo's notes.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "due",
				Aliases:     []string{"d"},
				Usage:       "due date, e.g. \"next friday\"",
				Destination: &cmd.due,
			},
			&cli.StringFlag{
				Name:        "plan",
				Aliases:     []string{"p"},
				Usage:       "planning date, e.g. \"tomorrow at 9am\"",
				Destination: &cmd.plan,
			},
		},
		ShellComplete: TagCompleter(cmd.app),
		Action:        cmd.run,
	})

	return app
}

func (cmd *AddCmd) run(ctx context.Context, c *cli.Command) error {
	tags, words := habit.SplitTagArgs(c.Args().Slice())

	created, err := cmd.app.Tasks.Add(ctx, habit.AddOptions{
		Text: strings.Join(words, " "),
		Due:  cmd.due,
		Plan: cmd.plan,
		Tags: tags,
	})
	if err != nil {
		return fmt.Errorf("add todo: %w", err)
	}

	_, _ = fmt.Fprintln(c.Root().Writer, "Added: "+taskLine(created, cmd.app.Dates.Now()))
	return nil
}
