// Package validation checks post-create step configurations before any step
// is built, so a bad trestle.yaml fails before a project is written.
package validation

import (
	"errors"
	"fmt"

	"github.com/artisanexperiences/trestle/internal/config"
)

// Rule defines a single validation rule that can be applied to a StepConfig.
type Rule interface {
	Validate(cfg config.StepConfig) error
}

// Validator aggregates rules for one step and reports every failure at once.
type Validator struct {
	StepName string
	Rules    []Rule
}

func NewValidator(stepName string) *Validator {
	return &Validator{
		StepName: stepName,
		Rules:    make([]Rule, 0),
	}
}

func (v *Validator) AddRule(rule Rule) *Validator {
	v.Rules = append(v.Rules, rule)
	return v
}

// Validate runs all rules and joins their errors.
func (v *Validator) Validate(cfg config.StepConfig) error {
	var errs []error
	for _, rule := range v.Rules {
		if err := rule.Validate(cfg); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validating step %q: %w", v.StepName, errors.Join(errs...))
	}

	return nil
}

func (v *Validator) RuleCount() int {
	return len(v.Rules)
}
