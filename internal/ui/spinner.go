package ui

import (
	"github.com/charmbracelet/huh/spinner"
)

// RunWithSpinner runs fn behind a spinner when interactive, and plainly
// otherwise. fn's error is returned unchanged.
func RunWithSpinner(title string, fn func() error) error {
	if !IsInteractive() || quiet {
		return fn()
	}

	var fnErr error
	err := spinner.New().
		Title(title).
		Action(func() {
			fnErr = fn()
		}).
		Run()
	if err != nil {
		return NormalizeAbort(err)
	}

	return fnErr
}
