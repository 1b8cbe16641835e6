package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/habit"
)

// NewRoot builds the habit command tree with its global flags. The caller
// adds the Before and After hooks that populate app.
func NewRoot(flags *Flags, app *habit.App) *cli.Command {
	root := &cli.Command{
		Name:      "habit",
		Usage:     "Manage Habitica todos from the command line",
		UsageText: "habit [global options] command [command options]",
		Description: `habit lists, adds, plans, and completes Habitica todos.

Todos are found by fuzzy matching, so 'habit do dentist' completes the todo
that best matches "dentist". Todos can carry a planning date, when you
intend to do them, separate from the due date. 'habit ls' groups open todos
by planning date.

When Habitica is unreachable, read commands fall back to the last fetched
data and say so.`,
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("HABIT_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to <data-dir>/habit.log)",
				Sources:     cli.EnvVars("HABIT_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("HABIT_CONFIG"),
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "path to data directory",
				Sources:     cli.EnvVars("HABIT_DATA_DIR"),
				Value:       DefaultDataDir(),
				Destination: &flags.DataDir,
			},
			&cli.BoolFlag{
				Name:        "yes",
				Aliases:     []string{"y"},
				Usage:       "answer yes to every confirmation",
				Destination: &flags.Yes,
			},
		},
	}

	root = NewLsCmd(flags, app).Register(root)
	root = NewStatsCmd(flags, app).Register(root)
	root = NewAddCmd(flags, app).Register(root)
	root = NewAddCheckCmd(flags, app).Register(root)
	root = NewDoCmd(flags, app).Register(root)
	root = NewDeleteCmd(flags, app).Register(root)
	root = NewDetailCmd(flags, app).Register(root)
	root = NewPlanCmd(flags, app).Register(root)
	root = NewDoctorCmd(flags, app).Register(root)
	root = NewConfigCmd(flags).Register(root)

	return root
}
