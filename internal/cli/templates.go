package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/trestle/internal/scaffold"
	"github.com/artisanexperiences/trestle/internal/ui"
)

var templatesCmd = &cobra.Command{
	Use:     "templates",
	Aliases: []string{"list"},
	Short:   "List templates and where they resolve from",
	Long: `Lists every frontend and database combination with its template
identifier and the source it would be read from: the binary (embedded),
the templates directory (disk), or neither (missing).`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		dir := cfg.TemplatesDir
		if flagDir := mustGetString(cmd, "templates-dir"); flagDir != "" {
			dir = flagDir
		}

		resolver := scaffold.NewResolver(scaffold.DefaultBundle(), dir)
		fmt.Fprintln(cmd.OutOrStdout(), ui.RenderTemplateTable(templateRows(resolver)))
		ui.PrintInfo(fmt.Sprintf("Templates directory: %s", resolver.TemplatesDir()))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.Flags().String("templates-dir", "", "Directory searched for templates missing from the binary")
}

func templateRows(resolver *scaffold.Resolver) [][]string {
	catalog := scaffold.Catalog()
	rows := make([][]string, 0, len(catalog))

	for _, info := range catalog {
		source := "missing"
		if kind, ok := resolver.Lookup(info.ID); ok {
			source = string(kind)
		}
		rows = append(rows, []string{info.ID.String(), info.Frontend.String(), info.Database.String(), source})
	}

	return rows
}
