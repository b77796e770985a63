package scaffold

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ProjectName reduces a project path to its final component, which becomes
// the substitution value for the placeholder token.
func ProjectName(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("%w: path is empty", ErrInvalidProjectName)
	}
	if !utf8.ValidString(path) {
		return "", fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidProjectName, path)
	}

	name := filepath.Base(filepath.Clean(path))
	switch name {
	case ".", "..", string(filepath.Separator), "":
		return "", fmt.Errorf("%w: %q has no final path component", ErrInvalidProjectName, path)
	}
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: %q ends in a blank component", ErrInvalidProjectName, path)
	}

	return name, nil
}
