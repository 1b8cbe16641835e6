package commands

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// ErrNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal and --yes was not given.
var ErrNotInteractive = errors.New("confirmation required: stdin is not a terminal (use --yes)")

// confirm asks the user to approve an action, defaulting to yes. It returns
// false without error when the user declines or aborts the prompt.
func (f *Flags) confirm(title string) (bool, error) {
	if f.Yes {
		return true, nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return false, ErrNotInteractive
	}

	ok := true
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return ok, nil
}

// isTerminal reports whether w is a terminal, for choosing styled output.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
