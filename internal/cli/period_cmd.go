package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPeriodCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "period",
		Short: "Show or set the reporting period",
	}

	get := &cobra.Command{
		Use:   "get",
		Short: "Show the reporting period",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Settings.GetPeriod(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Dim("Reporting period:"), formatter.PeriodLabel(p))
			return nil
		},
	}

	set := &cobra.Command{
		Use:   "set <YYYY-MM>",
		Short: "Set the reporting period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Settings.SetPeriod(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.StyleGreen.Render("✔ Reporting period set to"), formatter.PeriodLabel(p))
			return nil
		},
	}

	cmd.AddCommand(get, set)
	return cmd
}
