package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/habit/internal/core/planning"
	"github.com/colonyops/habit/internal/core/styles"
	"github.com/colonyops/habit/internal/core/task"
	"github.com/colonyops/habit/internal/habit"
)

const defaultNotesWidth = 80

type DetailCmd struct {
	flags *Flags
	app   *habit.App
}

// NewDetailCmd creates a new detail command
func NewDetailCmd(flags *Flags, app *habit.App) *DetailCmd {
	return &DetailCmd{flags: flags, app: app}
}

// Register adds the detail command to the application
func (cmd *DetailCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "detail",
		Aliases:     []string{"show"},
		Usage:       "Show a todo with its tags, checklist, and notes",
		UsageText:   "habit detail <todo...>",
		Description: "Shows the open todo that best matches the arguments. Notes are rendered as markdown.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *DetailCmd) run(ctx context.Context, c *cli.Command) error {
	sel, err := cmd.app.Tasks.Find(ctx, strings.Join(c.Args().Slice(), " "), task.WithoutChecklist())
	if err != nil {
		return handleNoMatch(c, err)
	}

	out := c.Root().Writer
	writeCachedNotice(out, sel.Snapshot)

	t := *sel.Task
	_, _ = fmt.Fprintln(out, taskLine(t, cmd.app.Dates.Now()))

	if names := sel.Snapshot.Directory.NamesOf(t.Tags); len(names) > 0 {
		_, _ = fmt.Fprintf(out, "Tags: %s\n", strings.Join(names, ", "))
	}

	writeChecklist(out, t)

	notes := strings.TrimSpace(t.Notes)
	if notes == "" || planning.Get(t) != nil {
		return nil
	}

	rendered, err := styles.Markdown(notes, notesWidth(), isTerminal(out))
	if err != nil {
		return fmt.Errorf("render notes: %w", err)
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, rendered)
	return nil
}

func notesWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultNotesWidth
	}
	return min(w, defaultNotesWidth)
}
