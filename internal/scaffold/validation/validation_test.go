package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artisanexperiences/trestle/internal/config"
)

func TestValidator(t *testing.T) {
	t.Run("validates with no rules", func(t *testing.T) {
		v := NewValidator("test.step")
		assert.NoError(t, v.Validate(config.StepConfig{}))
		assert.Equal(t, 0, v.RuleCount())
	})

	t.Run("validates single passing rule", func(t *testing.T) {
		v := NewValidator("test.step").
			AddRule(RequiredField{GetValue: func(c config.StepConfig) string { return c.Name }, FieldName: "name"})

		assert.NoError(t, v.Validate(config.StepConfig{Name: "test"}))
	})

	t.Run("collects multiple errors", func(t *testing.T) {
		v := NewValidator("test.step").
			AddRule(RequiredField{GetValue: func(c config.StepConfig) string { return c.From }, FieldName: "from"}).
			AddRule(RequiredField{GetValue: func(c config.StepConfig) string { return c.To }, FieldName: "to"})

		err := v.Validate(config.StepConfig{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), `validating step "test.step"`)
		assert.Contains(t, err.Error(), `"from"`)
		assert.Contains(t, err.Error(), `"to"`)
	})
}

func TestOneOf(t *testing.T) {
	rule := OneOf{
		GetValue:  func(c config.StepConfig) string { return c.Type },
		FieldName: "type",
		Allowed:   []string{"postgres", "mysql"},
	}

	assert.NoError(t, rule.Validate(config.StepConfig{}))
	assert.NoError(t, rule.Validate(config.StepConfig{Type: "mysql"}))
	assert.ErrorContains(t, rule.Validate(config.StepConfig{Type: "sqlite"}), `got "sqlite"`)
}

func TestRelativePath(t *testing.T) {
	rule := RelativePath{GetValue: func(c config.StepConfig) string { return c.From }, FieldName: "from"}

	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: ""},
		{value: ".env.example"},
		{value: "config/.env"},
		{value: "./a/../b"},
		{value: "/etc/passwd", wantErr: true},
		{value: "..", wantErr: true},
		{value: "../outside", wantErr: true},
		{value: "a/../../outside", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := rule.Validate(config.StepConfig{From: tt.value})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCustomRule(t *testing.T) {
	sentinel := errors.New("custom failure")
	rule := CustomRule{Name: "always", ValidateFn: func(config.StepConfig) error { return sentinel }}

	assert.ErrorIs(t, NewValidator("x").AddRule(rule).Validate(config.StepConfig{}), sentinel)
}

func TestStepValidators(t *testing.T) {
	t.Run("env.init defaults pass", func(t *testing.T) {
		assert.NoError(t, NewEnvInitValidator().Validate(config.StepConfig{Name: "env.init"}))
	})

	t.Run("env.init rejects same source and target", func(t *testing.T) {
		err := NewEnvInitValidator().Validate(config.StepConfig{From: ".env", To: ".env"})
		assert.ErrorContains(t, err, "must differ")
	})

	t.Run("env.init rejects escaping target", func(t *testing.T) {
		err := NewEnvInitValidator().Validate(config.StepConfig{To: "../.env"})
		assert.ErrorContains(t, err, "must not leave")
	})

	t.Run("db.create accepts known engine and options", func(t *testing.T) {
		err := NewDbCreateValidator().Validate(config.StepConfig{
			Type:    "postgres",
			Options: map[string]interface{}{"timeout": "2s", "maintenance_db": "template1"},
		})
		assert.NoError(t, err)
	})

	t.Run("db.create rejects unsupported engine", func(t *testing.T) {
		err := NewDbCreateValidator().Validate(config.StepConfig{Type: "mongodb"})
		assert.ErrorContains(t, err, "must be one of")
	})

	t.Run("db.create rejects unknown option", func(t *testing.T) {
		err := NewDbCreateValidator().Validate(config.StepConfig{Options: map[string]interface{}{"retries": 3}})
		assert.ErrorContains(t, err, "retries")
	})

	t.Run("db.create rejects negative timeout", func(t *testing.T) {
		err := NewDbCreateValidator().Validate(config.StepConfig{Options: map[string]interface{}{"timeout": "-1s"}})
		assert.ErrorContains(t, err, "must not be negative")
	})
}
