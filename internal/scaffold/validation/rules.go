package validation

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/artisanexperiences/trestle/internal/config"
)

// RequiredField validates that a specific field is not empty.
type RequiredField struct {
	GetValue  func(config.StepConfig) string
	FieldName string
}

func (r RequiredField) Validate(cfg config.StepConfig) error {
	if r.GetValue(cfg) == "" {
		return fmt.Errorf("required field %q is missing", r.FieldName)
	}
	return nil
}

// OneOf validates that a field value is one of the allowed values. Empty
// values pass.
type OneOf struct {
	GetValue  func(config.StepConfig) string
	FieldName string
	Allowed   []string
}

func (o OneOf) Validate(cfg config.StepConfig) error {
	value := o.GetValue(cfg)
	if value == "" {
		return nil
	}

	for _, allowed := range o.Allowed {
		if value == allowed {
			return nil
		}
	}

	return fmt.Errorf("field %q must be one of %v, got %q", o.FieldName, o.Allowed, value)
}

// RelativePath validates that a path field stays inside the project
// directory. Empty values pass.
type RelativePath struct {
	GetValue  func(config.StepConfig) string
	FieldName string
}

func (r RelativePath) Validate(cfg config.StepConfig) error {
	value := r.GetValue(cfg)
	if value == "" {
		return nil
	}
	if filepath.IsAbs(value) {
		return fmt.Errorf("field %q must be relative to the project, got %q", r.FieldName, value)
	}
	cleaned := filepath.Clean(value)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("field %q must not leave the project directory, got %q", r.FieldName, value)
	}
	return nil
}

// CustomRule allows defining a validation rule using a function.
type CustomRule struct {
	Name       string
	ValidateFn func(config.StepConfig) error
}

func (c CustomRule) Validate(cfg config.StepConfig) error {
	return c.ValidateFn(cfg)
}

// DbCreateOptions are the options accepted by the db.create step.
type DbCreateOptions struct {
	Timeout       time.Duration `mapstructure:"timeout"`
	MaintenanceDB string        `mapstructure:"maintenance_db"`
}

// NewEnvInitValidator creates a validator for env.init step.
func NewEnvInitValidator() *Validator {
	return NewValidator("env.init").
		AddRule(RelativePath{GetValue: func(c config.StepConfig) string { return c.From }, FieldName: "from"}).
		AddRule(RelativePath{GetValue: func(c config.StepConfig) string { return c.To }, FieldName: "to"}).
		AddRule(CustomRule{
			Name: "distinct paths",
			ValidateFn: func(c config.StepConfig) error {
				if c.From != "" && c.From == c.To {
					return fmt.Errorf("fields \"from\" and \"to\" must differ, both are %q", c.From)
				}
				return nil
			},
		})
}

// NewDbCreateValidator creates a validator for db.create step.
func NewDbCreateValidator() *Validator {
	return NewValidator("db.create").
		AddRule(OneOf{
			GetValue:  func(c config.StepConfig) string { return c.Type },
			FieldName: "type",
			Allowed:   []string{"postgres", "mysql"},
		}).
		AddRule(RelativePath{GetValue: func(c config.StepConfig) string { return c.File }, FieldName: "file"}).
		AddRule(CustomRule{
			Name: "options",
			ValidateFn: func(c config.StepConfig) error {
				var opts DbCreateOptions
				if err := config.DecodeOptions(c.Options, &opts); err != nil {
					return err
				}
				if opts.Timeout < 0 {
					return fmt.Errorf("option \"timeout\" must not be negative")
				}
				return nil
			},
		})
}
