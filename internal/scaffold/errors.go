package scaffold

import (
	"errors"
	"fmt"
)

// ErrInvalidProjectName is returned when a project path has no usable final
// component.
var ErrInvalidProjectName = errors.New("invalid project name")

// TemplateNotFoundError is returned when neither the embedded bundle nor the
// templates directory on disk holds the requested template.
type TemplateNotFoundError struct {
	Identifier Identifier
	ProbedPath string
}

func (e *TemplateNotFoundError) Error() string {
	return fmt.Sprintf("template %q not found in embedded assets or on disk at %s", e.Identifier, e.ProbedPath)
}

// TargetExistsError is returned before any write when the project directory
// is already present.
type TargetExistsError struct {
	Path string
}

func (e *TargetExistsError) Error() string {
	return fmt.Sprintf("directory %q already exists", e.Path)
}

// IOError reports a read, create or write failure on a specific path.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// StepError wraps the failure of a post-create step. The project has already
// been materialized when it is returned.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
