// Package styles provides the lipgloss styles shared by CLI output.
package styles

import (
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

// namedColors maps the color names accepted in configuration to the basic
// ANSI palette, so they follow the user's terminal theme.
var namedColors = map[string]lipgloss.Color{
	"black":   lipgloss.Color("0"),
	"red":     lipgloss.Color("1"),
	"green":   lipgloss.Color("2"),
	"yellow":  lipgloss.Color("3"),
	"blue":    lipgloss.Color("4"),
	"magenta": lipgloss.Color("5"),
	"cyan":    lipgloss.Color("6"),
	"white":   lipgloss.Color("7"),
}

// ColorNames returns the sorted color names usable for tags.
func ColorNames() []string {
	names := make([]string, 0, len(namedColors))
	for name := range namedColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsColor reports whether name is a known color name.
func IsColor(name string) bool {
	_, ok := namedColors[strings.ToLower(name)]
	return ok
}

// Colorize renders text in the named color. Unknown or empty names leave the
// text unchanged.
func Colorize(name, text string) string {
	c, ok := namedColors[strings.ToLower(name)]
	if !ok {
		return text
	}
	return lipgloss.NewStyle().Foreground(c).Render(text)
}

var (
	// HeaderStyle renders group headers in listings.
	HeaderStyle = lipgloss.NewStyle().Bold(true)
	// OverdueStyle renders the OVERDUE header.
	OverdueStyle = lipgloss.NewStyle().Bold(true).Foreground(namedColors["red"])
	// MutedStyle renders secondary details and completed items.
	MutedStyle = lipgloss.NewStyle().Faint(true)
	// NoticeStyle renders notices such as stale-cache warnings.
	NoticeStyle = lipgloss.NewStyle().Foreground(namedColors["yellow"])
	// MPStyle renders the mana bar.
	MPStyle = lipgloss.NewStyle().Foreground(namedColors["blue"])
	// XPStyle renders the experience bar.
	XPStyle = lipgloss.NewStyle()
)

// HPStyle picks the health bar color for a fill fraction: red below a
// quarter, yellow below half, green otherwise.
func HPStyle(fraction float64) lipgloss.Style {
	switch {
	case fraction < 0.25:
		return lipgloss.NewStyle().Foreground(namedColors["red"])
	case fraction < 0.5:
		return lipgloss.NewStyle().Foreground(namedColors["yellow"])
	default:
		return lipgloss.NewStyle().Foreground(namedColors["green"])
	}
}

// Markdown renders notes for a terminal. When color is false the plain
// notty style is used.
func Markdown(text string, width int, color bool) (string, error) {
	cfg := glamourstyles.NoTTYStyleConfig
	if color {
		cfg = glamourstyles.DarkStyleConfig
	}
	noMargin := uint(0)
	cfg.Document.Margin = &noMargin
	cfg.Document.BlockPrefix = ""
	cfg.Document.BlockSuffix = ""

	return renderMarkdown(cfg, text, width)
}

func renderMarkdown(cfg glamouransi.StyleConfig, text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(cfg),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}

	out, err := r.Render(text)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n"), nil
}
