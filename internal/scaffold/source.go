package scaffold

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sync"

	trestle "github.com/artisanexperiences/trestle"
)

type EntryKind int

const (
	EntryDir EntryKind = iota
	EntryFile
)

// Entry is one node of a template tree. Path is slash-separated and relative
// to the template root; Data is nil for directories.
type Entry struct {
	Path string
	Kind EntryKind
	Data []byte
}

func (e Entry) IsDir() bool {
	return e.Kind == EntryDir
}

// WalkFunc receives each entry of a template tree. Returning fs.SkipDir for a
// directory entry skips its contents; any other error stops the walk.
type WalkFunc func(Entry) error

type SourceKind string

const (
	SourceEmbedded SourceKind = "embedded"
	SourceDisk     SourceKind = "disk"
)

// Source is a resolved template tree. Walk visits every entry under the
// template root, parents before children, siblings in lexical order.
type Source interface {
	Identifier() Identifier
	Kind() SourceKind
	Location() string
	Walk(fn WalkFunc) error
}

// EmbeddedSource serves a template compiled into the binary.
type EmbeddedSource struct {
	id   Identifier
	tree fs.FS
}

func (s *EmbeddedSource) Identifier() Identifier { return s.id }
func (s *EmbeddedSource) Kind() SourceKind       { return SourceEmbedded }
func (s *EmbeddedSource) Location() string {
	return path.Join(trestle.TemplatesDir, string(s.id))
}

func (s *EmbeddedSource) Walk(fn WalkFunc) error {
	return walkTree(s.tree, s.Location(), fn)
}

// DiskSource serves a template directory from the local file system.
type DiskSource struct {
	id  Identifier
	dir string
}

func (s *DiskSource) Identifier() Identifier { return s.id }
func (s *DiskSource) Kind() SourceKind       { return SourceDisk }
func (s *DiskSource) Location() string       { return s.dir }

func (s *DiskSource) Walk(fn WalkFunc) error {
	return walkTree(os.DirFS(s.dir), s.dir, fn)
}

func walkTree(tree fs.FS, location string, fn WalkFunc) error {
	return fs.WalkDir(tree, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return &IOError{Op: "reading template", Path: path.Join(location, p), Err: err}
		}
		if p == "." {
			return nil
		}
		if d.IsDir() {
			return fn(Entry{Path: p, Kind: EntryDir})
		}

		data, err := fs.ReadFile(tree, p)
		if err != nil {
			return &IOError{Op: "reading template file", Path: path.Join(location, p), Err: err}
		}
		if err := fn(Entry{Path: p, Kind: EntryFile, Data: data}); err != nil && !errors.Is(err, fs.SkipDir) {
			return err
		}
		return nil
	})
}

// DefaultBundle returns the templates compiled into the binary, rooted so that
// each template identifier is a top-level directory.
var DefaultBundle = sync.OnceValue(func() fs.FS {
	sub, err := fs.Sub(trestle.Templates, trestle.TemplatesDir)
	if err != nil {
		panic("embedded templates directory missing: " + err.Error())
	}
	return sub
})

// Resolver locates template trees, preferring the embedded bundle over the
// on-disk templates directory.
type Resolver struct {
	bundle       fs.FS
	templatesDir string
}

// NewResolver creates a resolver. A nil bundle disables embedded lookup.
func NewResolver(bundle fs.FS, templatesDir string) *Resolver {
	if templatesDir == "" {
		templatesDir = trestle.TemplatesDir
	}
	return &Resolver{bundle: bundle, templatesDir: templatesDir}
}

// Resolve returns the source for id. Embedded and on-disk trees are never
// merged: when the bundle has the template the disk is not consulted.
func (r *Resolver) Resolve(id Identifier) (Source, error) {
	probed := filepath.Join(r.templatesDir, string(id))
	if !validIdentifier(id) {
		return nil, &TemplateNotFoundError{Identifier: id, ProbedPath: probed}
	}

	if r.bundle != nil {
		if info, err := fs.Stat(r.bundle, string(id)); err == nil && info.IsDir() {
			tree, err := fs.Sub(r.bundle, string(id))
			if err != nil {
				return nil, &IOError{Op: "opening embedded template", Path: string(id), Err: err}
			}
			return &EmbeddedSource{id: id, tree: tree}, nil
		}
	}

	if info, err := os.Stat(probed); err == nil && info.IsDir() {
		return &DiskSource{id: id, dir: probed}, nil
	}

	return nil, &TemplateNotFoundError{Identifier: id, ProbedPath: probed}
}

// Lookup reports where id would resolve from without opening it.
func (r *Resolver) Lookup(id Identifier) (SourceKind, bool) {
	src, err := r.Resolve(id)
	if err != nil {
		return "", false
	}
	return src.Kind(), true
}

func (r *Resolver) TemplatesDir() string {
	return r.templatesDir
}

// validIdentifier accepts a single slash-free path element.
func validIdentifier(id Identifier) bool {
	s := string(id)
	return s != "" && s != "." && fs.ValidPath(s) && path.Base(s) == s && filepath.Base(s) == s
}
