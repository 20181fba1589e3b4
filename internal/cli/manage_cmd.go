package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored blueprints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			blueprints, err := app.Blueprints.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBlueprintList(blueprints))
			return nil
		},
	}
}

func newDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a blueprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBlueprintID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Blueprints.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Deleted blueprint"), id)
			return nil
		},
	}
}

func newInitiativesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "initiatives",
		Short: "Inspect and remove initiatives",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List initiatives with their active stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initiatives, err := app.Initiatives.List(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatInitiativeList(initiatives))
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an initiative",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Initiatives.Delete(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Deleted initiative"), args[0])
			return nil
		},
	}

	cmd.AddCommand(list, del)
	return cmd
}
