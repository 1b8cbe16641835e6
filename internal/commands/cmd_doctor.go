package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/doctor"
	"github.com/colonyops/habit/internal/core/styles"
	"github.com/colonyops/habit/internal/habit"
	"github.com/colonyops/habit/pkg/iojson"
)

type DoctorCmd struct {
	flags  *Flags
	app    *habit.App
	format string
}

func NewDoctorCmd(flags *Flags, app *habit.App) *DoctorCmd {
	return &DoctorCmd{flags: flags, app: app}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your habit setup",
		UsageText:   "habit doctor [options]",
		Description: "Runs diagnostic checks on configuration, Habitica connectivity, and the offline cache.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	results := cmd.app.Doctor.RunChecks(ctx, cmd.flags.ConfigPath)

	if cmd.format == "json" {
		return cmd.outputJSON(c, results)
	}

	return cmd.outputText(c, results)
}

type summaryJSON struct {
	Passed int `json:"passed"`
	Warned int `json:"warned"`
	Failed int `json:"failed"`
}

func (cmd *DoctorCmd) outputJSON(c *cli.Command, results []doctor.Result) error {
	passed, warned, failed := doctor.Summary(results)

	out := struct {
		Healthy bool            `json:"healthy"`
		Summary summaryJSON     `json:"summary"`
		Checks  []doctor.Result `json:"checks"`
	}{
		Healthy: failed == 0,
		Summary: summaryJSON{Passed: passed, Warned: warned, Failed: failed},
		Checks:  results,
	}

	if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *DoctorCmd) outputText(c *cli.Command, results []doctor.Result) error {
	w := c.Root().Writer
	divider := styles.MutedStyle.Render(strings.Repeat("─", 40))

	_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render("Habit Doctor"))
	_, _ = fmt.Fprintln(w, divider)
	_, _ = fmt.Fprintln(w)

	for _, result := range results {
		_, _ = fmt.Fprintln(w, styles.HeaderStyle.Render(result.Name))

		for _, item := range result.Items {
			var detail string
			if item.Detail != "" {
				detail = " " + styles.MutedStyle.Render(item.Detail)
			}

			var icon string
			switch item.Status {
			case doctor.StatusPass:
				icon = styles.Colorize("green", "✔")
			case doctor.StatusWarn:
				icon = styles.NoticeStyle.Render("●")
			case doctor.StatusFail:
				icon = styles.OverdueStyle.Render("✘")
			}

			_, _ = fmt.Fprintf(w, "  %s %s%s\n", icon, item.Label, detail)
		}

		_, _ = fmt.Fprintln(w)
	}

	passed, warned, failed := doctor.Summary(results)
	_, _ = fmt.Fprintf(w, "%d passed  %d warnings  %d failed\n", passed, warned, failed)

	if failed > 0 {
		return cli.Exit("", 1)
	}

	return nil
}
