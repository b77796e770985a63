package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/trestle/internal/scaffold/types"
)

const (
	// Exit codes
	ExitSuccess = iota
	ExitGeneralError
	ExitInvalidArguments
	ExitTemplateNotFound
	ExitTargetExists
	ExitIOFailure
	ExitConfigurationError
	ExitStepFailed
)

const (
	FileName  = "trestle.yaml"
	EnvPrefix = "TRESTLE"

	DefaultTemplatesDir = "templates"
	DefaultLogLevel     = "info"
)

// DefaultIgnore lists paths skipped when copying a template from disk.
// Embedded templates are copied whole.
var DefaultIgnore = []string{"**/.DS_Store", "**/target"}

// Config represents the user configuration
type Config struct {
	Frontend     types.Frontend `mapstructure:"frontend" yaml:"frontend"`
	Database     types.Database `mapstructure:"database" yaml:"database"`
	TemplatesDir string         `mapstructure:"templates_dir" yaml:"templates_dir"`
	Ignore       []string       `mapstructure:"ignore" yaml:"ignore"`
	LogLevel     string         `mapstructure:"log_level" yaml:"log_level"`
	Steps        []StepConfig   `mapstructure:"steps" yaml:"steps,omitempty"`

	// Path is the file the config was read from, empty when only defaults
	// and environment variables applied.
	Path string `mapstructure:"-" yaml:"-"`
}

// StepConfig represents a post-create step configuration
type StepConfig struct {
	Name    string                 `mapstructure:"name" yaml:"name"`
	Enabled *bool                  `mapstructure:"enabled" yaml:"enabled,omitempty"`
	From    string                 `mapstructure:"from" yaml:"from,omitempty"`
	To      string                 `mapstructure:"to" yaml:"to,omitempty"`
	Key     string                 `mapstructure:"key" yaml:"key,omitempty"`
	File    string                 `mapstructure:"file" yaml:"file,omitempty"`
	Type    string                 `mapstructure:"type" yaml:"type,omitempty"`
	Options map[string]interface{} `mapstructure:"options" yaml:"options,omitempty"`
}

// Default returns the configuration used when no file or environment
// overrides are present.
func Default() *Config {
	return &Config{
		Frontend:     types.DefaultFrontend,
		Database:     types.DatabaseNone,
		TemplatesDir: DefaultTemplatesDir,
		Ignore:       append([]string(nil), DefaultIgnore...),
		LogLevel:     DefaultLogLevel,
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("frontend", string(d.Frontend))
	v.SetDefault("database", "none")
	v.SetDefault("templates_dir", d.TemplatesDir)
	v.SetDefault("ignore", d.Ignore)
	v.SetDefault("log_level", d.LogLevel)
}

// Load reads configuration from path, or from trestle.yaml in the global
// config directory when path is empty. A missing global file is not an
// error; a missing explicit file is. TRESTLE_* environment variables
// override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		configDir, err := GetGlobalConfigDir()
		if err != nil {
			return nil, err
		}
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Path = v.ConfigFileUsed()

	if cfg.TemplatesDir == "" {
		cfg.TemplatesDir = DefaultTemplatesDir
	}

	return &cfg, nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		enumHook(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.StringToTimeDurationHookFunc(),
	)
}

// enumHook parses frontend and database names so typos surface as
// configuration errors at load time.
func enumHook() mapstructure.DecodeHookFuncType {
	frontendType := reflect.TypeOf(types.Frontend(""))
	databaseType := reflect.TypeOf(types.Database(""))

	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String {
			return data, nil
		}
		s := reflect.ValueOf(data).String()

		switch to {
		case frontendType:
			return types.ParseFrontend(s)
		case databaseType:
			return types.ParseDatabase(s)
		}
		return data, nil
	}
}

// DecodeOptions decodes a step's free-form options into out, applying the
// same string conversions as the config file.
func DecodeOptions(options map[string]interface{}, out interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       decodeHook(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return fmt.Errorf("creating options decoder: %w", err)
	}
	if err := decoder.Decode(options); err != nil {
		return fmt.Errorf("decoding options: %w", err)
	}
	return nil
}

// Save writes the top-level settings of cfg to path. Keys already in the
// file that trestle does not manage are preserved.
func Save(path string, cfg *Config) error {
	var existing map[string]interface{}
	if content, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(content, &existing); err != nil {
			return fmt.Errorf("parsing existing config: %w", err)
		}
	}

	if existing == nil {
		existing = make(map[string]interface{})
	}

	if cfg.Frontend != "" {
		existing["frontend"] = string(cfg.Frontend)
	}
	existing["database"] = cfg.Database.String()
	if cfg.TemplatesDir != "" {
		existing["templates_dir"] = cfg.TemplatesDir
	}
	if cfg.Ignore != nil {
		existing["ignore"] = cfg.Ignore
	}
	if cfg.LogLevel != "" {
		existing["log_level"] = cfg.LogLevel
	}

	content, err := yaml.Marshal(existing)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// GetGlobalConfigDir returns the global config directory
func GetGlobalConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "trestle"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}

	return filepath.Join(home, ".config", "trestle"), nil
}

// GlobalConfigPath returns the path of the global trestle.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}
