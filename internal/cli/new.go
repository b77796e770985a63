package cli

import (
	"errors"
	"fmt"
	iofs "io/fs"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/trestle/internal/config"
	"github.com/artisanexperiences/trestle/internal/scaffold"
	"github.com/artisanexperiences/trestle/internal/scaffold/steps"
	"github.com/artisanexperiences/trestle/internal/scaffold/types"
	"github.com/artisanexperiences/trestle/internal/ui"
)

var newCmd = &cobra.Command{
	Use:   "new [PATH]",
	Short: "Create a new project from a template",
	Long: `Creates a new project directory from one of the built-in templates.

Arguments:
  PATH  Directory to create. Its final component becomes the project name
        and replaces __PROJECT_NAME__ in every text file of the template.

The template is taken from the binary first and from the templates
directory on disk otherwise. PATH must not exist yet.

Examples:
  trestle new my-app
  trestle new my-app --frontend htmx --db postgres --init-env --create-db`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		opts, err := newOptionsFromFlags(cmd, args, cfg)
		if err != nil {
			return err
		}

		_, err = runNew(opts)
		return err
	},
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().String("frontend", "", "Frontend framework (dioxus, htmx)")
	newCmd.Flags().String("db", "", "Database (none, postgres, mysql, mongodb, firebase)")
	newCmd.Flags().String("templates-dir", "", "Directory searched for templates missing from the binary")
	newCmd.Flags().Bool("init-env", false, "Copy .env.example to .env after creating the project")
	newCmd.Flags().Bool("create-db", false, "Create the database named in DATABASE_URL (postgres, mysql)")
}

type newOptions struct {
	Path         string
	Frontend     types.Frontend
	Database     types.Database
	TemplatesDir string
	Ignore       []string
	Steps        []config.StepConfig
	InitEnv      bool
	CreateDB     bool
	DryRun       bool
	Verbose      bool
	Quiet        bool

	// Bundle replaces the embedded templates when set.
	Bundle iofs.FS
}

// newOptionsFromFlags merges config values, flags and, when attached to a
// terminal, prompt answers. Flags win over config.
func newOptionsFromFlags(cmd *cobra.Command, args []string, cfg *config.Config) (newOptions, error) {
	opts := newOptions{
		Frontend:     cfg.Frontend,
		Database:     cfg.Database,
		TemplatesDir: cfg.TemplatesDir,
		Ignore:       cfg.Ignore,
		Steps:        cfg.Steps,
		InitEnv:      mustGetBool(cmd, "init-env"),
		CreateDB:     mustGetBool(cmd, "create-db"),
		DryRun:       mustGetBool(cmd, "dry-run"),
		Verbose:      mustGetBool(cmd, "verbose"),
		Quiet:        mustGetBool(cmd, "quiet"),
	}
	if opts.Frontend == "" {
		opts.Frontend = types.DefaultFrontend
	}

	frontendSet := cmd.Flags().Changed("frontend")
	if frontendSet {
		frontend, err := types.ParseFrontend(mustGetString(cmd, "frontend"))
		if err != nil {
			return opts, &UsageError{Err: err}
		}
		opts.Frontend = frontend
	}

	databaseSet := cmd.Flags().Changed("db")
	if databaseSet {
		database, err := types.ParseDatabase(mustGetString(cmd, "db"))
		if err != nil {
			return opts, &UsageError{Err: err}
		}
		opts.Database = database
	}

	if dir := mustGetString(cmd, "templates-dir"); dir != "" {
		opts.TemplatesDir = dir
	}

	if len(args) > 0 {
		opts.Path = args[0]
	}

	if ui.IsInteractive() {
		if opts.Path == "" {
			path, err := ui.PromptProjectPath()
			if err != nil {
				return opts, err
			}
			opts.Path = path
		}
		if err := ui.SelectStack(&opts.Frontend, &opts.Database, !frontendSet, !databaseSet); err != nil {
			return opts, err
		}
	}

	if opts.Path == "" {
		return opts, &UsageError{Err: errors.New("project path required (run interactively or provide PATH as argument)")}
	}

	return opts, nil
}

// stepConfigs returns the configured steps plus those turned on by flags.
// env.init always runs before db.create so the new .env is read.
func (o newOptions) stepConfigs() []config.StepConfig {
	cfgs := append([]config.StepConfig(nil), o.Steps...)

	if o.InitEnv {
		cfgs = enableStep(cfgs, steps.StepEnvInit, true)
	}
	if o.CreateDB {
		cfgs = enableStep(cfgs, steps.StepDbCreate, false)
	}

	return cfgs
}

func enableStep(cfgs []config.StepConfig, name string, prepend bool) []config.StepConfig {
	enabled := true
	for i := range cfgs {
		if cfgs[i].Name == name {
			cfgs[i].Enabled = &enabled
			return cfgs
		}
	}

	step := config.StepConfig{Name: name}
	if prepend {
		return append([]config.StepConfig{step}, cfgs...)
	}
	return append(cfgs, step)
}

// runWithSpinner is swapped out in tests.
var runWithSpinner = ui.RunWithSpinner

func runNew(opts newOptions) (*scaffold.Result, error) {
	generator := scaffold.NewGenerator(scaffold.GeneratorOptions{
		Bundle:       opts.Bundle,
		TemplatesDir: opts.TemplatesDir,
		Ignore:       opts.Ignore,
		Logger:       ui.Logger,
	})

	plan, err := generator.Plan(scaffold.Request{
		Path:     opts.Path,
		Frontend: opts.Frontend,
		Database: opts.Database,
		Steps:    opts.stepConfigs(),
	})
	if err != nil {
		return nil, err
	}

	ui.PrintStep(fmt.Sprintf("Initializing new Trestle project '%s'...", plan.ProjectName))
	if opts.Verbose {
		ui.PrintInfo(fmt.Sprintf("Template: %s (%s: %s)", plan.Template, plan.Source.Kind(), plan.Source.Location()))
	}
	if opts.CreateDB && plan.HasDatabase() && !serverDatabase(plan.Database) {
		ui.PrintWarning(fmt.Sprintf("%s creates databases on first use; skipping %s", plan.Database, steps.StepDbCreate))
	}

	stepOpts := types.StepOptions{
		DryRun:  opts.DryRun,
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	var result *scaffold.Result
	err = runWithSpinner(fmt.Sprintf("Writing %s...", plan.Template), func() error {
		var applyErr error
		result, applyErr = generator.Apply(plan, stepOpts)
		return applyErr
	})
	if ui.IsAbort(err) {
		return result, &InterruptedError{Path: plan.Path}
	}
	if err != nil {
		return result, err
	}

	if opts.DryRun {
		ui.PrintInfo(fmt.Sprintf("[DRY-RUN] Would create %d files in %d directories at %s",
			result.Stats.Files(), result.Stats.Dirs, plan.Path))
		return result, nil
	}

	ui.PrintSuccess(fmt.Sprintf("Wrote %d files from %s", result.Stats.Files(), plan.Template))
	ui.PrintDone("Success! Your project is ready.")
	ui.PrintList("Next steps:", nextSteps(result))

	return result, nil
}

func serverDatabase(d types.Database) bool {
	return d == types.DatabasePostgres || d == types.DatabaseMySQL
}

// nextSteps lists what the user still has to do after generation.
func nextSteps(result *scaffold.Result) []string {
	lines := []string{fmt.Sprintf("cd %s", result.Path)}

	if result.HasDatabase() {
		if !stepRan(result, steps.StepEnvInit) {
			lines = append(lines, "cp .env.example .env")
		}
		lines = append(lines, "Update .env with your credentials")
	}
	lines = append(lines, "cargo run")

	for i := range lines {
		lines[i] = fmt.Sprintf("%d. %s", i+1, lines[i])
	}
	return lines
}

func stepRan(result *scaffold.Result, name string) bool {
	for _, r := range result.Steps {
		if r.Step.Name() == name && !r.Skipped && r.Error == nil {
			return true
		}
	}
	return false
}
