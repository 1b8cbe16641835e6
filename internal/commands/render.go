package commands

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/habit/internal/core/config"
	"github.com/colonyops/habit/internal/core/dates"
	"github.com/colonyops/habit/internal/core/match"
	"github.com/colonyops/habit/internal/core/planning"
	"github.com/colonyops/habit/internal/core/styles"
	"github.com/colonyops/habit/internal/core/task"
)

// relative labels t by calendar day as seen from now, or "" for nil.
func relative(t *time.Time, now time.Time) string {
	if t == nil {
		return ""
	}
	return dates.Relative(t.In(now.Location()), now)
}

// taskLine is the one-line summary: text, planning date, due date.
func taskLine(t task.Task, now time.Time) string {
	line := fmt.Sprintf("%-40s Plan: %-15s Due: %s", t.Text, relative(planning.Get(t), now), relative(t.Due(), now))
	return strings.TrimRight(line, " ")
}

// writeChecklist prints the checklist under a task, completed items faint.
func writeChecklist(w io.Writer, t task.Task) {
	for _, item := range t.Checklist {
		if item.Completed {
			_, _ = fmt.Fprintf(w, "    %s\n", styles.MutedStyle.Render("[x] "+item.Text))
			continue
		}
		_, _ = fmt.Fprintf(w, "    [ ] %s\n", item.Text)
	}
}

// colorFor renders text in the configured color of a category.
func colorFor(cfg *config.Config, category, text string) string {
	if category == "" || cfg == nil {
		return text
	}
	color, ok := cfg.Color(category)
	if !ok {
		return text
	}
	return styles.Colorize(color, text)
}

// writeCachedNotice marks output built from a stale snapshot.
func writeCachedNotice(w io.Writer, snap task.UserSnapshot) {
	if !snap.Cached {
		return
	}
	_, _ = fmt.Fprintln(w, styles.NoticeStyle.Render("Cached"))
}

// handleNoMatch reports an empty candidate list as a message, not a failure.
func handleNoMatch(c *cli.Command, err error) error {
	if errors.Is(err, match.ErrNoMatch) {
		_, _ = fmt.Fprintln(c.Root().Writer, "No match found.")
		return nil
	}
	return fmt.Errorf("find todo: %w", err)
}

func writeChanges(w io.Writer, changes []string) {
	for _, line := range changes {
		_, _ = fmt.Fprintln(w, styles.NoticeStyle.Render(line))
	}
}
