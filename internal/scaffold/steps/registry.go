package steps

import (
	"fmt"
	"sort"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/scaffold/types"
	"github.com/artisanexperiences/trestle/internal/scaffold/validation"
)

// Built-in step names.
const (
	StepEnvInit  = "env.init"
	StepDbCreate = "db.create"
)

type StepFactory func(cfg config.StepConfig) types.ScaffoldStep

var (
	registry   = make(map[string]StepFactory)
	validators = make(map[string]*validation.Validator)
)

// Register adds a step factory. A nil validator skips config validation.
func Register(name string, factory StepFactory, validator *validation.Validator) {
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("step %q already registered", name))
	}
	registry[name] = factory
	if validator != nil {
		validators[name] = validator
	}
}

// Create validates cfg and builds the named step.
func Create(name string, cfg config.StepConfig) (types.ScaffoldStep, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown step %q (available: %v)", name, ListRegistered())
	}
	if v, ok := validators[name]; ok {
		if err := v.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return factory(cfg), nil
}

func ListRegistered() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register(StepEnvInit, func(cfg config.StepConfig) types.ScaffoldStep {
		return NewEnvInitStep(cfg)
	}, validation.NewEnvInitValidator())
	Register(StepDbCreate, func(cfg config.StepConfig) types.ScaffoldStep {
		return NewDbCreateStep(cfg)
	}, validation.NewDbCreateValidator())
}
