package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/habit"
)

// TagCompleter returns a ShellCompleteFunc that suggests "+tag" arguments
// from the user's tags.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func TagCompleter(app *habit.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		snap, err := app.Tasks.Snapshot(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, name := range snap.Directory.Names() {
			_, _ = fmt.Fprintln(w, "+"+name)
		}
	}
}
