package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create or show the global configuration",
	Long: `Manages trestle.yaml. The global file lives in
$XDG_CONFIG_HOME/trestle (or ~/.config/trestle); --config points at
another file. TRESTLE_* environment variables override file values.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configFilePath(cmd)
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil && !mustGetBool(cmd, "force") {
			return &UsageError{Err: fmt.Errorf("config already exists at %s (use --force to overwrite)", path)}
		}

		if mustGetBool(cmd, "dry-run") {
			ui.PrintInfo(fmt.Sprintf("[DRY-RUN] Would write default config to %s", path))
			return nil
		}

		if err := config.Save(path, config.Default()); err != nil {
			return &ConfigError{Err: err}
		}

		ui.PrintSuccess(fmt.Sprintf("Wrote %s", path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshaling config: %w", err)
		}

		if cfg.Path != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", cfg.Path)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "# no config file found, showing defaults and environment overrides")
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func configFilePath(cmd *cobra.Command) (string, error) {
	if path := mustGetString(cmd, "config"); path != "" {
		return path, nil
	}

	path, err := config.GlobalConfigPath()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}
