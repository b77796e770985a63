package scaffold

import (
	"bytes"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/fs"
)

// Placeholder is replaced with the project name in every text file.
const Placeholder = "__PROJECT_NAME__"

// Stats summarizes one materialization.
type Stats struct {
	Dirs    int
	Text    int
	Binary  int
	Skipped int
}

func (s Stats) Files() int {
	return s.Text + s.Binary
}

// Materializer writes a template tree into a new project directory.
type Materializer struct {
	fs     fs.FS
	logger *log.Logger
	ignore []string
	dryRun bool
}

type MaterializerOption func(*Materializer)

func WithFS(filesystem fs.FS) MaterializerOption {
	return func(m *Materializer) { m.fs = filesystem }
}

func WithLogger(logger *log.Logger) MaterializerOption {
	return func(m *Materializer) { m.logger = logger }
}

// WithIgnore replaces the ignore patterns. Patterns use doublestar syntax and
// match slash-separated paths relative to the template root. They apply to
// on-disk templates only; embedded templates are always copied whole.
func WithIgnore(patterns []string) MaterializerOption {
	return func(m *Materializer) { m.ignore = patterns }
}

// WithDryRun walks and transforms the template without writing anything.
func WithDryRun(dryRun bool) MaterializerOption {
	return func(m *Materializer) { m.dryRun = dryRun }
}

func NewMaterializer(opts ...MaterializerOption) *Materializer {
	m := &Materializer{
		fs:     fs.Default,
		logger: log.New(io.Discard),
		ignore: config.DefaultIgnore,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Materialize copies src into targetRoot, substituting projectName for the
// placeholder in text files. It fails with *TargetExistsError before writing
// anything if targetRoot exists. Files already written are left in place
// when a later write fails.
func (m *Materializer) Materialize(targetRoot, projectName string, src Source) (Stats, error) {
	var stats Stats

	if err := m.validateIgnore(); err != nil {
		return stats, err
	}
	if m.fs.Exists(targetRoot) {
		return stats, &TargetExistsError{Path: targetRoot}
	}

	if err := m.mkdir(targetRoot); err != nil {
		return stats, err
	}

	ignore := m.ignore
	if src.Kind() != SourceDisk {
		ignore = nil
	}

	m.logger.Debug("materializing template", "template", src.Identifier(), "source", src.Kind(), "location", src.Location(), "target", targetRoot)

	err := src.Walk(func(entry Entry) error {
		if ignored(ignore, entry.Path) {
			stats.Skipped++
			m.logger.Debug("skipping ignored path", "path", entry.Path)
			if entry.IsDir() {
				return iofs.SkipDir
			}
			return nil
		}

		target := filepath.Join(targetRoot, filepath.FromSlash(entry.Path))

		if entry.IsDir() {
			if err := m.mkdir(target); err != nil {
				return err
			}
			stats.Dirs++
			return nil
		}

		if err := m.mkdir(filepath.Dir(target)); err != nil {
			return err
		}

		content, isText := Substitute(entry.Data, projectName)
		if isText {
			stats.Text++
		} else {
			stats.Binary++
		}

		m.logger.Debug("writing file", "path", entry.Path, "bytes", len(content), "text", isText)
		if m.dryRun {
			return nil
		}
		if err := m.fs.WriteFile(target, content, fs.FilePerm); err != nil {
			return &IOError{Op: "writing file", Path: target, Err: err}
		}
		return nil
	})
	if err != nil {
		return stats, err
	}

	return stats, nil
}

func (m *Materializer) mkdir(path string) error {
	if m.dryRun {
		return nil
	}
	if err := m.fs.MkdirAll(path, fs.DirPerm); err != nil {
		return &IOError{Op: "creating directory", Path: path, Err: err}
	}
	return nil
}

func ignored(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
	}
	return false
}

func (m *Materializer) validateIgnore() error {
	for _, pattern := range m.ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore pattern %q", pattern)
		}
	}
	return nil
}

// Substitute replaces every placeholder occurrence in data when data is valid
// UTF-8. Anything else is returned unchanged with isText false.
func Substitute(data []byte, projectName string) (out []byte, isText bool) {
	if !utf8.Valid(data) {
		return data, false
	}
	token := []byte(Placeholder)
	if !bytes.Contains(data, token) {
		return data, true
	}
	return bytes.ReplaceAll(data, token, []byte(projectName)), true
}
