package scaffold

import (
	"fmt"
	"io"
	iofs "io/fs"

	"github.com/charmbracelet/log"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/fs"
	"github.com/artisanexperiences/trestle/internal/scaffold/steps"
	"github.com/artisanexperiences/trestle/internal/scaffold/types"
)

// StepRegistry defines the interface for step creation.
type StepRegistry interface {
	Create(name string, cfg config.StepConfig) (types.ScaffoldStep, error)
	ListRegistered() []string
}

// globalStepRegistryAdapter adapts the package-level step registry.
type globalStepRegistryAdapter struct{}

func (a *globalStepRegistryAdapter) Create(name string, cfg config.StepConfig) (types.ScaffoldStep, error) {
	return steps.Create(name, cfg)
}

func (a *globalStepRegistryAdapter) ListRegistered() []string {
	return steps.ListRegistered()
}

// Request is everything needed to generate one project.
type Request struct {
	Path     string
	Frontend types.Frontend
	Database types.Database
	Steps    []config.StepConfig
}

// Plan is a validated Request with its template resolved.
type Plan struct {
	Request
	ProjectName string
	Template    Identifier
	Source      Source
}

// HasDatabase reports whether the selected template ships database wiring.
func (p *Plan) HasDatabase() bool {
	return p.Database != types.DatabaseNone
}

type Result struct {
	*Plan
	Stats Stats
	Steps []ExecutionResult
}

type GeneratorOptions struct {
	Bundle       iofs.FS
	TemplatesDir string
	Ignore       []string
	FS           fs.FS
	Registry     StepRegistry
	Logger       *log.Logger
}

// Generator ties selection, resolution, materialization and post-create
// steps together.
type Generator struct {
	resolver *Resolver
	ignore   []string
	fs       fs.FS
	registry StepRegistry
	logger   *log.Logger
}

// NewGenerator fills unset options with the embedded bundle, the real file
// system and the global step registry.
func NewGenerator(opts GeneratorOptions) *Generator {
	if opts.Bundle == nil {
		opts.Bundle = DefaultBundle()
	}
	if opts.FS == nil {
		opts.FS = fs.Default
	}
	if opts.Registry == nil {
		opts.Registry = &globalStepRegistryAdapter{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Ignore == nil {
		opts.Ignore = config.DefaultIgnore
	}

	return &Generator{
		resolver: NewResolver(opts.Bundle, opts.TemplatesDir),
		ignore:   opts.Ignore,
		fs:       opts.FS,
		registry: opts.Registry,
		logger:   opts.Logger,
	}
}

func (g *Generator) Resolver() *Resolver {
	return g.resolver
}

// Plan validates the project name, selects the template and resolves its
// source. Nothing is written.
func (g *Generator) Plan(req Request) (*Plan, error) {
	name, err := ProjectName(req.Path)
	if err != nil {
		return nil, err
	}

	id := Select(req.Frontend, req.Database)
	src, err := g.resolver.Resolve(id)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("resolved template", "template", id, "source", src.Kind(), "location", src.Location())

	return &Plan{
		Request:     req,
		ProjectName: name,
		Template:    id,
		Source:      src,
	}, nil
}

// Apply materializes the plan and then runs its post-create steps. Steps are
// built before anything is written so an invalid step config leaves no
// partial project behind.
func (g *Generator) Apply(plan *Plan, opts types.StepOptions) (*Result, error) {
	stepsList, err := g.stepsFromConfig(plan.Steps)
	if err != nil {
		return nil, err
	}

	materializer := NewMaterializer(
		WithFS(g.fs),
		WithLogger(g.logger),
		WithIgnore(g.ignore),
		WithDryRun(opts.DryRun),
	)

	stats, err := materializer.Materialize(plan.Path, plan.ProjectName, plan.Source)
	if err != nil {
		return nil, err
	}

	result := &Result{Plan: plan, Stats: stats}

	ctx := &types.ProjectContext{
		ProjectPath: plan.Path,
		ProjectName: plan.ProjectName,
		Template:    plan.Template.String(),
		Frontend:    plan.Frontend,
		Database:    plan.Database,
		Vars:        make(map[string]string),
	}

	executor := NewStepExecutor(stepsList, ctx, opts, g.logger)
	err = executor.Execute()
	result.Steps = executor.Results()
	if err != nil {
		return result, err
	}

	return result, nil
}

// Generate is Plan followed by Apply.
func (g *Generator) Generate(req Request, opts types.StepOptions) (*Result, error) {
	plan, err := g.Plan(req)
	if err != nil {
		return nil, err
	}
	return g.Apply(plan, opts)
}

func (g *Generator) stepsFromConfig(stepConfigs []config.StepConfig) ([]types.ScaffoldStep, error) {
	stepsList := make([]types.ScaffoldStep, 0, len(stepConfigs))

	for _, cfg := range stepConfigs {
		step, err := g.registry.Create(cfg.Name, cfg)
		if err != nil {
			return nil, fmt.Errorf("creating step %q: %w", cfg.Name, err)
		}
		stepsList = append(stepsList, step)
	}

	return stepsList, nil
}
