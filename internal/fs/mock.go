package fs

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileInfo implements os.FileInfo for mock files.
type MockFileInfo struct {
	name    string
	size    int64
	mode    os.FileMode
	modTime time.Time
	isDir   bool
}

func (m *MockFileInfo) Name() string       { return m.name }
func (m *MockFileInfo) Size() int64        { return m.size }
func (m *MockFileInfo) Mode() os.FileMode  { return m.mode }
func (m *MockFileInfo) ModTime() time.Time { return m.modTime }
func (m *MockFileInfo) IsDir() bool        { return m.isDir }
func (m *MockFileInfo) Sys() interface{}   { return nil }

// MockFS implements FS using an in-memory file system for testing.
// Unlike the real file system, WriteFile requires the parent directory to
// exist, which lets tests assert that callers create parents first.
type MockFS struct {
	mu         sync.RWMutex
	files      map[string][]byte
	perms      map[string]os.FileMode
	dirs       map[string]bool
	writeFails map[string]error
	mkdirFails map[string]error
	writes     int
}

// NewMockFS creates a new MockFS with empty storage.
func NewMockFS() *MockFS {
	return &MockFS{
		files:      make(map[string][]byte),
		perms:      make(map[string]os.FileMode),
		dirs:       make(map[string]bool),
		writeFails: make(map[string]error),
		mkdirFails: make(map[string]error),
	}
}

// ReadFile reads the file at path from memory.
func (m *MockFS) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cleanPath := filepath.Clean(path)
	data, ok := m.files[cleanPath]
	if !ok {
		return nil, &os.PathError{Op: "read", Path: path, Err: os.ErrNotExist}
	}
	// Return a copy to prevent external modification
	result := make([]byte, len(data))
	copy(result, data)
	return result, nil
}

// WriteFile writes data to the file at path in memory.
func (m *MockFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleanPath := filepath.Clean(path)
	if err, ok := m.writeFails[cleanPath]; ok {
		return &os.PathError{Op: "write", Path: path, Err: err}
	}

	dir := filepath.Dir(cleanPath)
	if dir != "." && !m.dirs[dir] && !isRoot(dir) {
		return &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}

	m.files[cleanPath] = make([]byte, len(data))
	copy(m.files[cleanPath], data)
	m.perms[cleanPath] = perm
	m.writes++

	return nil
}

// MkdirAll creates all directories in the path.
func (m *MockFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cleanPath := filepath.Clean(path)
	if err, ok := m.mkdirFails[cleanPath]; ok {
		return &os.PathError{Op: "mkdir", Path: path, Err: err}
	}
	if _, ok := m.files[cleanPath]; ok {
		return &os.PathError{Op: "mkdir", Path: path, Err: errors.New("not a directory")}
	}

	for dir := cleanPath; dir != "." && !isRoot(dir); dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}

	return nil
}

// Stat returns file info for the given path.
func (m *MockFS) Stat(path string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cleanPath := filepath.Clean(path)

	if data, ok := m.files[cleanPath]; ok {
		perm := m.perms[cleanPath]
		if perm == 0 {
			perm = FilePerm
		}
		return &MockFileInfo{
			name:    filepath.Base(cleanPath),
			size:    int64(len(data)),
			mode:    perm,
			modTime: time.Now(),
		}, nil
	}

	if m.dirs[cleanPath] || cleanPath == "." || isRoot(cleanPath) {
		return &MockFileInfo{
			name:    filepath.Base(cleanPath),
			mode:    DirPerm | os.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}, nil
	}

	return nil, &os.PathError{Op: "stat", Path: path, Err: os.ErrNotExist}
}

// Exists reports whether a file or directory exists at path.
func (m *MockFS) Exists(path string) bool {
	_, err := m.Stat(path)
	return err == nil
}

// FailWrite makes every subsequent WriteFile to path fail with err.
func (m *MockFS) FailWrite(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writeFails[filepath.Clean(path)] = err
}

// FailMkdir makes every subsequent MkdirAll of path fail with err.
func (m *MockFS) FailMkdir(path string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirFails[filepath.Clean(path)] = err
}

// AddFile adds a file with content to the mock FS for testing.
func (m *MockFS) AddFile(path string, content []byte, perm os.FileMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cleanPath := filepath.Clean(path)
	m.files[cleanPath] = make([]byte, len(content))
	copy(m.files[cleanPath], content)
	m.perms[cleanPath] = perm
	for dir := filepath.Dir(cleanPath); dir != "." && !isRoot(dir); dir = filepath.Dir(dir) {
		m.dirs[dir] = true
	}
}

// AddDir adds a directory to the mock FS for testing.
func (m *MockFS) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[filepath.Clean(path)] = true
}

// FileExists checks if a file exists in the mock FS.
func (m *MockFS) FileExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[filepath.Clean(path)]
	return ok
}

// DirExists checks if a directory exists in the mock FS.
func (m *MockFS) DirExists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[filepath.Clean(path)]
}

// Files returns the sorted paths of every file under root.
func (m *MockFS) Files(root string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collectUnder(m.files, filepath.Clean(root))
}

// Dirs returns the sorted paths of every directory under root, root included.
func (m *MockFS) Dirs(root string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return collectUnder(m.dirs, filepath.Clean(root))
}

// Writes returns the number of successful WriteFile calls.
func (m *MockFS) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

// Reset clears all files, directories and injected failures.
func (m *MockFS) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[string][]byte)
	m.perms = make(map[string]os.FileMode)
	m.dirs = make(map[string]bool)
	m.writeFails = make(map[string]error)
	m.mkdirFails = make(map[string]error)
	m.writes = 0
}

func collectUnder[V any](entries map[string]V, root string) []string {
	prefix := root + string(filepath.Separator)
	var paths []string
	for p := range entries {
		if p == root || strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

func isRoot(path string) bool {
	return path == string(filepath.Separator) || filepath.Dir(path) == path
}
