package types

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Frontend is the web frontend a generated project is built with.
type Frontend string

const (
	FrontendDioxus Frontend = "dioxus"
	FrontendHTMX   Frontend = "htmx"
)

// DefaultFrontend is used when neither a flag nor the config picks one.
const DefaultFrontend = FrontendDioxus

// Database is the optional storage backend of a generated project.
// The zero value means no database.
type Database string

const (
	DatabaseNone     Database = ""
	DatabasePostgres Database = "postgres"
	DatabaseMySQL    Database = "mysql"
	DatabaseMongoDB  Database = "mongodb"
	DatabaseFirebase Database = "firebase"
)

var (
	ErrUnknownFrontend = errors.New("unknown frontend")
	ErrUnknownDatabase = errors.New("unknown database")
)

// Frontends returns every supported frontend in display order.
func Frontends() []Frontend {
	return []Frontend{FrontendDioxus, FrontendHTMX}
}

// Databases returns every supported database in display order, without
// DatabaseNone.
func Databases() []Database {
	return []Database{DatabasePostgres, DatabaseMySQL, DatabaseMongoDB, DatabaseFirebase}
}

func (f Frontend) String() string {
	return string(f)
}

// Valid reports whether f is one of Frontends.
func (f Frontend) Valid() bool {
	for _, known := range Frontends() {
		if f == known {
			return true
		}
	}
	return false
}

func (d Database) String() string {
	if d == DatabaseNone {
		return "none"
	}
	return string(d)
}

// MarshalText writes DatabaseNone as "none" so it round-trips through
// ParseDatabase.
func (d Database) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Valid reports whether d is DatabaseNone or one of Databases.
func (d Database) Valid() bool {
	if d == DatabaseNone {
		return true
	}
	for _, known := range Databases() {
		if d == known {
			return true
		}
	}
	return false
}

// ParseFrontend parses a frontend name, ignoring case and surrounding space.
func ParseFrontend(s string) (Frontend, error) {
	f := Frontend(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w %q (available: %s)", ErrUnknownFrontend, s, joinNames(Frontends()))
	}
	return f, nil
}

// ParseDatabase parses a database name. An empty string and "none" both
// select DatabaseNone.
func ParseDatabase(s string) (Database, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "" || normalized == "none" {
		return DatabaseNone, nil
	}
	d := Database(normalized)
	if !d.Valid() {
		return "", fmt.Errorf("%w %q (available: none, %s)", ErrUnknownDatabase, s, joinNames(Databases()))
	}
	return d, nil
}

func joinNames[T ~string](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}

// ProjectContext describes a freshly materialized project to post-create
// steps.
type ProjectContext struct {
	ProjectPath string
	ProjectName string
	Template    string
	Frontend    Frontend
	Database    Database
	Vars        map[string]string
	mu          sync.RWMutex
}

type StepOptions struct {
	DryRun  bool
	Verbose bool
	Quiet   bool
}

// ScaffoldStep is a post-create action run against a generated project.
type ScaffoldStep interface {
	Name() string
	Run(ctx *ProjectContext, opts StepOptions) error
	Condition(ctx *ProjectContext) bool
}

func (ctx *ProjectContext) SetVar(key, value string) {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()
	if ctx.Vars == nil {
		ctx.Vars = make(map[string]string)
	}
	ctx.Vars[key] = value
}

func (ctx *ProjectContext) GetVar(key string) string {
	ctx.mu.RLock()
	defer ctx.mu.RUnlock()
	return ctx.Vars[key]
}
