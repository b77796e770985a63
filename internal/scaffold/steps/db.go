package steps

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/fs"
	"github.com/artisanexperiences/trestle/internal/scaffold/types"
	"github.com/artisanexperiences/trestle/internal/scaffold/validation"
	"github.com/artisanexperiences/trestle/internal/ui"
	"github.com/artisanexperiences/trestle/internal/utils"
)

const (
	DefaultDatabaseURLKey = "DATABASE_URL"
	DefaultDbTimeout      = 10 * time.Second
	maxDbNameLength       = 63
)

var (
	invalidDbNameChars = regexp.MustCompile(`[^a-z0-9_]`)
	repeatedUnderscore = regexp.MustCompile(`_+`)
)

// DbCreateStep creates the database named in the project's connection URL.
// An unreachable server produces a warning, not a failure.
type DbCreateStep struct {
	engine        string
	key           string
	file          string
	options       validation.DbCreateOptions
	enabled       *bool
	clientFactory DatabaseClientFactory
	fs            fs.FS
}

func NewDbCreateStep(cfg config.StepConfig) *DbCreateStep {
	return NewDbCreateStepWithFactory(cfg, DefaultDatabaseClientFactory, nil)
}

// NewDbCreateStepWithFactory is used by tests to substitute the database
// client and file system.
func NewDbCreateStepWithFactory(cfg config.StepConfig, factory DatabaseClientFactory, filesystem fs.FS) *DbCreateStep {
	if filesystem == nil {
		filesystem = fs.Default
	}
	key := cfg.Key
	if key == "" {
		key = DefaultDatabaseURLKey
	}

	var options validation.DbCreateOptions
	// options were checked by the registry validator
	_ = config.DecodeOptions(cfg.Options, &options)
	if options.Timeout == 0 {
		options.Timeout = DefaultDbTimeout
	}

	return &DbCreateStep{
		engine:        cfg.Type,
		key:           key,
		file:          cfg.File,
		options:       options,
		enabled:       cfg.Enabled,
		clientFactory: factory,
		fs:            filesystem,
	}
}

func (s *DbCreateStep) Name() string {
	return StepDbCreate
}

func (s *DbCreateStep) IsEnabled() bool {
	return s.enabled == nil || *s.enabled
}

// Condition holds for templates backed by a server we can create databases on.
func (s *DbCreateStep) Condition(ctx *types.ProjectContext) bool {
	return s.targetEngine(ctx) != ""
}

func (s *DbCreateStep) targetEngine(ctx *types.ProjectContext) string {
	if s.engine != "" {
		return s.engine
	}
	switch ctx.Database {
	case types.DatabasePostgres:
		return EnginePostgres
	case types.DatabaseMySQL:
		return EngineMySQL
	}
	return ""
}

func (s *DbCreateStep) Run(ctx *types.ProjectContext, opts types.StepOptions) error {
	engine := s.targetEngine(ctx)

	raw, source := s.lookupURL(ctx)
	if raw == "" {
		ui.PrintWarning(fmt.Sprintf("%s is not set in %s, skipping database creation", s.key, strings.Join(s.envFiles(), " or ")))
		return nil
	}

	dbOpts, err := ParseDatabaseURL(raw)
	if err != nil {
		return fmt.Errorf("reading %s from %s: %w", s.key, source, err)
	}
	if dbOpts.Engine != engine {
		return fmt.Errorf("%s in %s points at %s, expected %s", s.key, source, dbOpts.Engine, engine)
	}
	if dbOpts.Database == "" {
		dbOpts.Database = SanitizeDatabaseName(ctx.ProjectName)
	}
	dbOpts.MaintenanceDB = s.options.MaintenanceDB
	dbOpts.Timeout = s.options.Timeout

	ui.Logger.Debug("creating database", "url", dbOpts.Redacted(), "source", source)

	timeoutCtx, cancel := context.WithTimeout(context.Background(), s.options.Timeout)
	defer cancel()

	client, err := s.clientFactory(timeoutCtx, dbOpts)
	if err != nil {
		s.warnUnreachable(dbOpts, err)
		return nil
	}
	defer func() { _ = client.Close() }()

	if err := client.Ping(timeoutCtx); err != nil {
		s.warnUnreachable(dbOpts, err)
		return nil
	}

	created, err := client.CreateDatabase(timeoutCtx, dbOpts.Database)
	if err != nil {
		return fmt.Errorf("creating database %q: %w", dbOpts.Database, err)
	}

	ctx.SetVar("DatabaseName", dbOpts.Database)
	if created {
		ui.PrintSuccess(fmt.Sprintf("Created %s database '%s'", engine, dbOpts.Database))
	} else {
		ui.PrintInfo(fmt.Sprintf("Database '%s' already exists", dbOpts.Database))
	}

	return nil
}

// envFiles lists where the URL is looked up, in order.
func (s *DbCreateStep) envFiles() []string {
	if s.file != "" {
		return []string{s.file}
	}
	return []string{DefaultEnvFile, DefaultEnvExample}
}

func (s *DbCreateStep) lookupURL(ctx *types.ProjectContext) (value, source string) {
	for _, name := range s.envFiles() {
		env := utils.ReadEnvFile(s.fs, ctx.ProjectPath, name)
		if v := env[s.key]; v != "" {
			return v, name
		}
	}
	return "", ""
}

func (s *DbCreateStep) warnUnreachable(dbOpts DatabaseOptions, err error) {
	ui.PrintWarning(fmt.Sprintf("Could not connect to %s at %s: %v", dbOpts.Engine, dbOpts.Redacted(), err))
	ui.PrintInfo(fmt.Sprintf("Create database '%s' manually before running the app.", dbOpts.Database))
}

// SanitizeDatabaseName lowercases name and folds anything outside
// [a-z0-9_] into single underscores.
func SanitizeDatabaseName(name string) string {
	name = strings.ToLower(name)
	name = invalidDbNameChars.ReplaceAllString(name, "_")
	name = repeatedUnderscore.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")
	if len(name) > maxDbNameLength {
		name = strings.TrimRight(name[:maxDbNameLength], "_")
	}
	if name == "" {
		name = "app"
	}
	return name
}
