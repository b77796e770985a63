package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "trestle",
	Short: "Scaffold Rust web projects from templates",
	Long: `Trestle generates a new Rust web project from one of its built-in
templates. Pick a frontend (dioxus or htmx) and optionally a database
(postgres, mysql, mongodb or firebase) and trestle writes a ready-to-run
project with your project name filled in.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return applyOutputFlags(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if noColor || !ui.IsInteractive() {
			return cmd.Help()
		}
		printBanner(cmd.OutOrStdout())
		return nil
	},
}

var noColor bool

var bannerGlyphs = map[rune][]string{
	'T': {
		"████████╗",
		"╚══██╔══╝",
		"   ██║   ",
		"   ██║   ",
		"   ██║   ",
		"   ╚═╝   ",
	},
	'R': {
		"██████╗ ",
		"██╔══██╗",
		"██████╔╝",
		"██╔══██╗",
		"██║  ██║",
		"╚═╝  ╚═╝",
	},
	'E': {
		"███████╗",
		"██╔════╝",
		"█████╗  ",
		"██╔══╝  ",
		"███████╗",
		"╚══════╝",
	},
	'S': {
		"███████╗",
		"██╔════╝",
		"███████╗",
		"╚════██║",
		"███████║",
		"╚══════╝",
	},
	'L': {
		"██╗     ",
		"██║     ",
		"██║     ",
		"██║     ",
		"███████╗",
		"╚══════╝",
	},
}

func printBanner(w io.Writer) {
	word := []rune("TRESTLE")

	// Timber gradient, light to dark
	colors := []lipgloss.Color{
		lipgloss.Color("#FFE0B2"),
		lipgloss.Color("#FFCC80"),
		lipgloss.Color("#FFB74D"),
		lipgloss.Color("#FFA726"),
		lipgloss.Color("#FB8C00"),
		lipgloss.Color("#EF6C00"),
		lipgloss.Color("#E65100"),
	}

	for row := 0; row < 6; row++ {
		var lineParts []string
		for i, letter := range word {
			style := lipgloss.NewStyle().
				Foreground(colors[i%len(colors)]).
				Bold(true)
			lineParts = append(lineParts, style.Render(bannerGlyphs[letter][row]))
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Left, lineParts...))
	}

	versionStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginTop(1)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(ui.ColorMuted).
		MarginBottom(1)

	commandsStyle := lipgloss.NewStyle().
		Foreground(ui.Secondary)

	commands := `
Commands:
  new        Create a new project from a template
  templates  List templates and where they resolve from
  config     Create or show the global configuration
  version    Show trestle version

Run 'trestle <command> --help' for more information.`

	versionLine := fmt.Sprintf("Version %s (commit: %s, built: %s)", Version, Commit, BuildDate)
	fmt.Fprintln(w, versionStyle.Render(versionLine))
	fmt.Fprintln(w, subtitleStyle.Render("Rust Web Project Scaffolder"))
	fmt.Fprintln(w, commandsStyle.Render(commands))
}

// Execute runs the root command. A cancelled prompt is not an error.
func Execute() error {
	rootCmd.Version = Version
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	if err := rootCmd.Execute(); err != nil {
		if ui.IsAbort(err) {
			return nil
		}
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().Bool("dry-run", false, "Preview operations without executing")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Bool("no-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/trestle/trestle.yaml)")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &UsageError{Err: err}
	})
}

// applyOutputFlags wires the persistent output flags into the ui package
// before any command prints.
func applyOutputFlags(cmd *cobra.Command) error {
	quiet := mustGetBool(cmd, "quiet")

	ui.SetQuiet(quiet)
	ui.SetNoInteractive(mustGetBool(cmd, "no-interactive"))
	if noColor {
		ui.DisableColor()
	}

	return ui.ConfigureLogger("", mustGetBool(cmd, "verbose"), quiet)
}

// loadConfig reads the --config file, or the global one, and applies its log
// level. Command-line flags still take precedence over the level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(mustGetString(cmd, "config"))
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	if err := ui.ConfigureLogger(cfg.LogLevel, mustGetBool(cmd, "verbose"), mustGetBool(cmd, "quiet")); err != nil {
		return nil, &ConfigError{Err: err}
	}

	if cfg.Path != "" {
		ui.Logger.Debug("loaded config", "path", cfg.Path)
	}

	return cfg, nil
}

func mustGetString(cmd *cobra.Command, name string) string {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic(fmt.Sprintf("programming error: flag %q not defined: %v", name, err))
	}
	return value
}
