package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/scaffold"
	"github.com/artisanexperiences/trestle/internal/scaffold/types"
	"github.com/artisanexperiences/trestle/internal/ui"
)

// UsageError marks bad arguments or flag values.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

// ConfigError marks a configuration file or environment that could not be
// loaded.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return e.Err.Error() }
func (e *ConfigError) Unwrap() error { return e.Err }

// InterruptedError reports a project left partially written after the user
// cancelled while files were being copied. It does not unwrap to
// ui.ErrAborted, so Execute reports it.
type InterruptedError struct {
	Path string
}

func (e *InterruptedError) Error() string {
	return fmt.Sprintf("interrupted while writing %s; the project may be incomplete", e.Path)
}

// ExitCode maps an error returned by Execute onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return config.ExitSuccess
	}

	var (
		usageErr    *UsageError
		configErr   *ConfigError
		notFoundErr *scaffold.TemplateNotFoundError
		existsErr   *scaffold.TargetExistsError
		stepErr     *scaffold.StepError
		ioErr       *scaffold.IOError
		intErr      *InterruptedError
	)

	switch {
	case errors.As(err, &configErr):
		return config.ExitConfigurationError
	case errors.As(err, &usageErr),
		errors.Is(err, scaffold.ErrInvalidProjectName),
		errors.Is(err, types.ErrUnknownFrontend),
		errors.Is(err, types.ErrUnknownDatabase):
		return config.ExitInvalidArguments
	case errors.As(err, &notFoundErr):
		return config.ExitTemplateNotFound
	case errors.As(err, &existsErr):
		return config.ExitTargetExists
	case errors.As(err, &stepErr):
		return config.ExitStepFailed
	case errors.As(err, &ioErr), errors.As(err, &intErr):
		return config.ExitIOFailure
	default:
		return config.ExitGeneralError
	}
}

// usageArgs tags positional argument errors so they exit as invalid
// arguments.
func usageArgs(validate func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return &UsageError{Err: err}
		}
		return nil
	}
}

// hint returns a suggestion printed under an error, if one applies.
func hint(err error) string {
	var (
		notFoundErr *scaffold.TemplateNotFoundError
		existsErr   *scaffold.TargetExistsError
		configErr   *ConfigError
		intErr      *InterruptedError
	)

	switch {
	case errors.As(err, &notFoundErr):
		return "set templates_dir or TRESTLE_TEMPLATES_DIR to a directory containing " + string(notFoundErr.Identifier)
	case errors.As(err, &existsErr):
		return "choose a different project path or remove the existing directory"
	case errors.As(err, &configErr):
		return "run 'trestle config show' to inspect the effective configuration"
	case errors.As(err, &intErr):
		return "remove " + intErr.Path + " before running trestle new again"
	case errors.Is(err, types.ErrUnknownFrontend), errors.Is(err, types.ErrUnknownDatabase):
		return "run 'trestle templates' to see the available combinations"
	}
	return ""
}

// ReportError prints err with a hint when one applies, and returns the exit
// code for it.
func ReportError(err error) int {
	ui.PrintErrorWithHint(err.Error(), hint(err))
	return ExitCode(err)
}
