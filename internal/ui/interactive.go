package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/artisanexperiences/trestle/internal/scaffold/types"
)

var frontendDescriptions = map[types.Frontend]string{
	types.FrontendDioxus: "Dioxus fullstack (Rust components)",
	types.FrontendHTMX:   "Axum + Askama templates with htmx",
}

var databaseDescriptions = map[types.Database]string{
	types.DatabaseNone:     "No database",
	types.DatabasePostgres: "PostgreSQL via sqlx",
	types.DatabaseMySQL:    "MySQL via sqlx",
	types.DatabaseMongoDB:  "MongoDB",
	types.DatabaseFirebase: "Firebase Realtime Database",
}

func FrontendOptions() []huh.Option[types.Frontend] {
	options := make([]huh.Option[types.Frontend], 0, len(types.Frontends()))
	for _, f := range types.Frontends() {
		options = append(options, huh.NewOption(fmt.Sprintf("%s - %s", f, frontendDescriptions[f]), f))
	}
	return options
}

func DatabaseOptions() []huh.Option[types.Database] {
	all := append([]types.Database{types.DatabaseNone}, types.Databases()...)
	options := make([]huh.Option[types.Database], 0, len(all))
	for _, d := range all {
		options = append(options, huh.NewOption(fmt.Sprintf("%s - %s", d, databaseDescriptions[d]), d))
	}
	return options
}

// SelectStack prompts for the frontend and database the caller asks for. The
// pointed-to values are the preselected defaults and receive the answers.
func SelectStack(frontend *types.Frontend, database *types.Database, askFrontend, askDatabase bool) error {
	var fields []huh.Field

	if askFrontend {
		fields = append(fields, huh.NewSelect[types.Frontend]().
			Title("Frontend").
			Options(FrontendOptions()...).
			Value(frontend))
	}
	if askDatabase {
		fields = append(fields, huh.NewSelect[types.Database]().
			Title("Database").
			Options(DatabaseOptions()...).
			Value(database))
	}
	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin())
	return NormalizeAbort(form.Run())
}

func PromptProjectPath() (string, error) {
	var path string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Placeholder("my-app").
				Value(&path).
				Validate(validateProjectPath),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return "", NormalizeAbort(err)
	}

	return strings.TrimSpace(path), nil
}

func validateProjectPath(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	return nil
}

func Confirm(title string, affirmative string) (bool, error) {
	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithTheme(huh.ThemeCatppuccin())

	if err := form.Run(); err != nil {
		return false, NormalizeAbort(err)
	}

	return confirmed, nil
}
