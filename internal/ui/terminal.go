package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("aborted by user")

var noInteractive bool

// SetNoInteractive disables prompts and spinners regardless of the terminal.
func SetNoInteractive(v bool) {
	noInteractive = v
}

// IsInteractive reports whether both stdin and stdout are terminals and
// prompting was not disabled.
func IsInteractive() bool {
	if noInteractive {
		return false
	}
	return term.IsTerminal(os.Stdin.Fd()) && term.IsTerminal(os.Stdout.Fd())
}

func IsAbort(err error) bool {
	return errors.Is(err, huh.ErrUserAborted) || errors.Is(err, ErrAborted)
}

// NormalizeAbort maps prompt cancellation onto ErrAborted.
func NormalizeAbort(err error) error {
	if err != nil && errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}
