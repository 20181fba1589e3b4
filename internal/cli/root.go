package cli

import (
	"github.com/alexanderramin/blueprint/internal/cli/formatter"
	"github.com/alexanderramin/blueprint/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Blueprints  service.BlueprintService
	Initiatives service.InitiativeService
	Settings    service.SettingsService
	Analytics   service.AnalyticsService

	// IsInteractive reports whether stdin is a terminal. Pickers, spinners
	// and the dashboard are only used when it returns true.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "blueprint" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:           "blueprint",
		Short:         "Financial blueprint aggregation and initiative analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				formatter.DisableColor()
			}
		},
	}
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newImportCmd(app),
		newListCmd(app),
		newDeleteCmd(app),
		newInitiativesCmd(app),
		newLinesCmd(app),
		newChartCmd(app),
		newRatiosCmd(app),
		newBreakdownCmd(app),
		newGuardrailsCmd(app),
		newKPIsCmd(app),
		newPeriodCmd(app),
		newDashboardCmd(app),
	)

	return root
}
