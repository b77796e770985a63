// Package fs provides the file system abstraction used when writing a new
// project. Materialization and post-create steps go through FS so they can be
// unit tested, including failure paths, without touching the real disk.
package fs

import (
	"errors"
	"os"
)

// Default permissions for generated output.
const (
	DirPerm  os.FileMode = 0o755
	FilePerm os.FileMode = 0o644
)

// FS defines the write-side file system operations trestle needs.
type FS interface {
	// ReadFile reads the entire file at path and returns its contents.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes data to the file at path with the given permissions.
	WriteFile(path string, data []byte, perm os.FileMode) error

	// MkdirAll creates path and any missing parents. An existing directory
	// is not an error.
	MkdirAll(path string, perm os.FileMode) error

	// Stat returns file info for the given path.
	Stat(path string) (os.FileInfo, error)

	// Exists reports whether anything exists at path.
	Exists(path string) bool
}

// RealFS implements FS using the actual operating system.
type RealFS struct{}

// ReadFile reads the entire file at path.
func (r *RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to the file at path with permissions.
func (r *RealFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

// MkdirAll creates all directories in the path.
func (r *RealFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Stat returns file info for the given path.
func (r *RealFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Exists reports whether path exists. Errors other than "not exist" (for
// example permission denied on a parent) count as existing, so callers never
// overwrite something they could not inspect.
func (r *RealFS) Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// Default is the default RealFS instance for convenience.
var Default = &RealFS{}
