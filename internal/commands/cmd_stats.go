package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/styles"
	"github.com/colonyops/habit/internal/habit"
)

const (
	barWidth = 60
	barChar  = "="
)

type StatsCmd struct {
	flags *Flags
	app   *habit.App
}

// NewStatsCmd creates a new stats command
func NewStatsCmd(flags *Flags, app *habit.App) *StatsCmd {
	return &StatsCmd{flags: flags, app: app}
}

// Register adds the stats command to the application
func (cmd *StatsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "stats",
		Usage:       "Show HP, MP and XP bars",
		UsageText:   "habit stats",
		Description: "Shows health, mana and experience as bars. Health turns yellow below half and red below a quarter.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *StatsCmd) run(ctx context.Context, c *cli.Command) error {
	snap, err := cmd.app.Tasks.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	s := snap.Stats
	hp := fraction(s.HP, s.MaxHealth)

	out := c.Root().Writer
	_, _ = fmt.Fprintln(out, "HP: "+statBar(styles.HPStyle(hp), hp))
	_, _ = fmt.Fprintln(out, "MP: "+statBar(styles.MPStyle, fraction(s.MP, s.MaxMP)))
	_, _ = fmt.Fprintln(out, "XP: "+statBar(styles.XPStyle, fraction(s.Exp, s.ToNextLevel)))
	_, _ = fmt.Fprintf(out, "Level %d, %.1f GP\n", s.Lvl, s.GP)

	if snap.Cached {
		_, _ = fmt.Fprintln(out, styles.NoticeStyle.Render("(Cached)"))
	}
	return nil
}

// fraction returns current/maximum of whole points, capped at 1.
func fraction(current, maximum float64) float64 {
	if int(maximum) <= 0 {
		return 0
	}
	f := float64(int(current)) / float64(int(maximum))
	return max(0, min(f, 1))
}

func statBar(style lipgloss.Style, f float64) string {
	filled := strings.Repeat(barChar, int(f*barWidth))
	return style.Render(fmt.Sprintf("[%-*s]", barWidth, filled))
}
