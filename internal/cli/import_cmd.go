package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import blueprints and initiatives from JSON files",
	}
	cmd.AddCommand(newImportBlueprintCmd(app), newImportInitiativesCmd(app))
	return cmd
}

func newImportBlueprintCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "blueprint <file>",
		Short: "Create or replace a blueprint from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := startSpinner(cmd, app, "Importing blueprint")
			res, err := app.Blueprints.ImportBlueprint(context.Background(), args[0])
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlueprintImport(res))
			return nil
		},
	}
}

func newImportInitiativesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "initiatives <file>",
		Short: "Create or update initiatives from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stop := startSpinner(cmd, app, "Importing initiatives")
			res, err := app.Initiatives.ImportInitiatives(context.Background(), args[0])
			stop()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInitiativeImport(res))
			return nil
		},
	}
}

func startSpinner(cmd *cobra.Command, app *App, message string) func() {
	if !app.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}
