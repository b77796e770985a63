package scaffold

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/artisanexperiences/trestle/internal/scaffold/types"
)

type ExecutionResult struct {
	Step    types.ScaffoldStep
	Error   error
	Skipped bool
}

// StepExecutor runs post-create steps one after another in the order given.
type StepExecutor struct {
	steps   []types.ScaffoldStep
	ctx     *types.ProjectContext
	opts    types.StepOptions
	logger  *log.Logger
	results []ExecutionResult
}

func NewStepExecutor(steps []types.ScaffoldStep, ctx *types.ProjectContext, opts types.StepOptions, logger *log.Logger) *StepExecutor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &StepExecutor{
		steps:  steps,
		ctx:    ctx,
		opts:   opts,
		logger: logger,
	}
}

// Execute stops at the first failing step.
func (e *StepExecutor) Execute() error {
	e.results = make([]ExecutionResult, 0, len(e.steps))

	for _, step := range e.steps {
		if err := e.executeStep(step); err != nil {
			return err
		}
	}

	return nil
}

func (e *StepExecutor) executeStep(step types.ScaffoldStep) error {
	if toggle, ok := step.(interface{ IsEnabled() bool }); ok && !toggle.IsEnabled() {
		e.logger.Debug("skipping step", "step", step.Name(), "reason", "disabled")
		e.results = append(e.results, ExecutionResult{Step: step, Skipped: true})
		return nil
	}

	if !step.Condition(e.ctx) {
		e.logger.Debug("skipping step", "step", step.Name(), "reason", "condition not met")
		e.results = append(e.results, ExecutionResult{Step: step, Skipped: true})
		return nil
	}

	if e.opts.DryRun {
		e.logger.Info("[DRY-RUN] would run step", "step", step.Name())
		e.results = append(e.results, ExecutionResult{Step: step})
		return nil
	}

	e.logger.Debug("running step", "step", step.Name())
	if err := step.Run(e.ctx, e.opts); err != nil {
		e.results = append(e.results, ExecutionResult{Step: step, Error: err})
		return &StepError{Step: step.Name(), Err: err}
	}
	e.results = append(e.results, ExecutionResult{Step: step})

	return nil
}

func (e *StepExecutor) Results() []ExecutionResult {
	return e.results
}
