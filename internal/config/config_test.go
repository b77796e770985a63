package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/trestle/internal/scaffold/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsWhenGlobalFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, types.FrontendDioxus, cfg.Frontend)
	assert.Equal(t, types.DatabaseNone, cfg.Database)
	assert.Equal(t, DefaultTemplatesDir, cfg.TemplatesDir)
	assert.Equal(t, DefaultIgnore, cfg.Ignore)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.Empty(t, cfg.Steps)
	assert.Empty(t, cfg.Path)
}

func TestLoad_GlobalFile(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	require.NoError(t, os.MkdirAll(filepath.Join(xdg, "trestle"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(xdg, "trestle", FileName), []byte("frontend: htmx\ndatabase: mysql\n"), 0644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, types.FrontendHTMX, cfg.Frontend)
	assert.Equal(t, types.DatabaseMySQL, cfg.Database)
	assert.Equal(t, filepath.Join(xdg, "trestle", FileName), cfg.Path)
}

func TestLoad_ExplicitFile(t *testing.T) {
	path := writeConfig(t, `frontend: HTMX
database: postgres
templates_dir: /srv/templates
log_level: debug
ignore:
  - "**/*.orig"
steps:
  - name: env.init
  - name: db.create
    key: DATABASE_URL
    options:
      timeout: 3s
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, types.FrontendHTMX, cfg.Frontend)
	assert.Equal(t, types.DatabasePostgres, cfg.Database)
	assert.Equal(t, "/srv/templates", cfg.TemplatesDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"**/*.orig"}, cfg.Ignore)
	require.Len(t, cfg.Steps, 2)
	assert.Equal(t, "env.init", cfg.Steps[0].Name)
	assert.Equal(t, "DATABASE_URL", cfg.Steps[1].Key)
	assert.Equal(t, "3s", cfg.Steps[1].Options["timeout"])
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestLoad_InvalidEnum(t *testing.T) {
	path := writeConfig(t, "database: sqlite\n")

	_, err := Load(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrUnknownDatabase)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	path := writeConfig(t, "frontend: htmx\ndatabase: mysql\n")
	t.Setenv("TRESTLE_DATABASE", "mongodb")
	t.Setenv("TRESTLE_IGNORE", "**/*.tmp,**/.idea")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, types.FrontendHTMX, cfg.Frontend)
	assert.Equal(t, types.DatabaseMongoDB, cfg.Database)
	assert.Equal(t, []string{"**/*.tmp", "**/.idea"}, cfg.Ignore)
}

func TestDecodeOptions(t *testing.T) {
	var out struct {
		Timeout       time.Duration `mapstructure:"timeout"`
		MaintenanceDB string        `mapstructure:"maintenance_db"`
	}

	err := DecodeOptions(map[string]interface{}{
		"timeout":        "250ms",
		"maintenance_db": "template1",
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, out.Timeout)
	assert.Equal(t, "template1", out.MaintenanceDB)
}

func TestDecodeOptions_RejectsUnknownKeys(t *testing.T) {
	var out struct {
		Timeout time.Duration `mapstructure:"timeout"`
	}

	err := DecodeOptions(map[string]interface{}{"timout": "1s"}, &out)

	assert.ErrorContains(t, err, "timout")
}

func TestSave(t *testing.T) {
	t.Run("creates new config", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", FileName)

		cfg := Default()
		cfg.Frontend = types.FrontendHTMX
		cfg.Database = types.DatabasePostgres
		require.NoError(t, Save(path, cfg))

		loaded, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, types.FrontendHTMX, loaded.Frontend)
		assert.Equal(t, types.DatabasePostgres, loaded.Database)
		assert.Equal(t, DefaultIgnore, loaded.Ignore)
	})

	t.Run("preserves unknown keys", func(t *testing.T) {
		path := writeConfig(t, "frontend: dioxus\ncustom_field: custom_value\n")

		cfg := Default()
		cfg.Frontend = types.FrontendHTMX
		require.NoError(t, Save(path, cfg))

		content, err := os.ReadFile(path)
		require.NoError(t, err)

		var raw map[string]interface{}
		require.NoError(t, yaml.Unmarshal(content, &raw))
		assert.Equal(t, "custom_value", raw["custom_field"])
		assert.Equal(t, "htmx", raw["frontend"])
		assert.Equal(t, "none", raw["database"])
	})

	t.Run("rejects malformed existing file", func(t *testing.T) {
		path := writeConfig(t, "frontend: [unclosed\n")

		err := Save(path, Default())
		assert.ErrorContains(t, err, "parsing existing config")
	})
}

func TestGetGlobalConfigDir(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")

	dir, err := GetGlobalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "trestle"), dir)

	path, err := GlobalConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/xdg", "trestle", FileName), path)
}
