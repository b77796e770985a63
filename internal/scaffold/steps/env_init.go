package steps

import (
	"fmt"
	"path/filepath"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/fs"
	"github.com/artisanexperiences/trestle/internal/scaffold/types"
	"github.com/artisanexperiences/trestle/internal/ui"
)

const (
	DefaultEnvExample = ".env.example"
	DefaultEnvFile    = ".env"
)

// EnvInitStep seeds the project's .env from the example shipped with the
// template. An existing .env is never overwritten.
type EnvInitStep struct {
	from    string
	to      string
	enabled *bool
	fs      fs.FS
}

func NewEnvInitStep(cfg config.StepConfig) *EnvInitStep {
	return NewEnvInitStepWithFS(cfg, nil)
}

// NewEnvInitStepWithFS creates the step on a custom file system.
func NewEnvInitStepWithFS(cfg config.StepConfig, filesystem fs.FS) *EnvInitStep {
	if filesystem == nil {
		filesystem = fs.Default
	}
	from, to := cfg.From, cfg.To
	if from == "" {
		from = DefaultEnvExample
	}
	if to == "" {
		to = DefaultEnvFile
	}
	return &EnvInitStep{from: from, to: to, enabled: cfg.Enabled, fs: filesystem}
}

func (s *EnvInitStep) Name() string {
	return StepEnvInit
}

func (s *EnvInitStep) IsEnabled() bool {
	return s.enabled == nil || *s.enabled
}

func (s *EnvInitStep) Condition(ctx *types.ProjectContext) bool {
	return s.fs.Exists(filepath.Join(ctx.ProjectPath, s.from)) &&
		!s.fs.Exists(filepath.Join(ctx.ProjectPath, s.to))
}

func (s *EnvInitStep) Run(ctx *types.ProjectContext, opts types.StepOptions) error {
	fromPath := filepath.Join(ctx.ProjectPath, s.from)
	toPath := filepath.Join(ctx.ProjectPath, s.to)

	ui.Logger.Debug("copying env file", "from", s.from, "to", s.to)

	data, err := s.fs.ReadFile(fromPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", fromPath, err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(toPath), fs.DirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", toPath, err)
	}
	// .env holds credentials
	if err := s.fs.WriteFile(toPath, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", toPath, err)
	}

	ctx.SetVar("EnvFile", s.to)
	if !opts.Quiet {
		ui.PrintSuccess(fmt.Sprintf("Created %s from %s", s.to, s.from))
	}

	return nil
}
