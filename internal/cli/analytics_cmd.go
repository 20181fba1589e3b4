package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/cli/formatter"
	"github.com/alexanderramin/blueprint/internal/contract"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/spf13/cobra"
)

func newLinesCmd(app *App) *cobra.Command {
	overlay := newOverlayValue(domain.OverlayBase)
	var monthly, totals, tree bool

	cmd := &cobra.Command{
		Use:   "lines [id|name]",
		Short: "Show resolved line values over the horizon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBlueprintID(ctx, app, optionalArg(args))
			if err != nil {
				return err
			}
			resp, err := app.Analytics.Lines(ctx, contract.LinesRequest{BlueprintID: id, Overlays: overlay.overlays})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if tree {
				fmt.Fprint(out, formatter.FormatLineTree(resp))
				return nil
			}
			showMonths := len(resp.Horizon) <= formatter.MaxMonthColumns
			if cmd.Flags().Changed("monthly") {
				showMonths = monthly
			}
			if totals {
				showMonths = false
			}
			fmt.Fprint(out, formatter.FormatLines(resp, showMonths))
			return nil
		},
	}

	addOverlayFlag(cmd.Flags(), overlay)
	cmd.Flags().BoolVar(&monthly, "monthly", false, "Force month columns on or off (default: on for horizons up to 12 months)")
	cmd.Flags().BoolVar(&totals, "totals", false, "Only show totals and run rates")
	cmd.Flags().BoolVar(&tree, "tree", false, "Show the line hierarchy with totals")
	return cmd
}

func newChartCmd(app *App) *cobra.Command {
	var line string
	overlay := newOverlayValue(domain.OverlayBase, domain.OverlayPlan)
	view := &viewValue{view: calendar.ViewMonths}

	cmd := &cobra.Command{
		Use:   "chart [id|name]",
		Short: "Show one line's stacked series per time bucket",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBlueprintID(ctx, app, optionalArg(args))
			if err != nil {
				return err
			}
			req := contract.NewChartRequest(id, line)
			req.View = view.view
			req.Overlays = overlay.overlays

			resp, err := app.Analytics.Chart(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatChart(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&line, "line", "", "Line code (required)")
	addViewFlag(cmd.Flags(), view, "Bucketing")
	addOverlayFlag(cmd.Flags(), overlay)
	_ = cmd.MarkFlagRequired("line")
	return cmd
}

func newRatiosCmd(app *App) *cobra.Command {
	overlay := newOverlayValue(domain.OverlayBase)

	cmd := &cobra.Command{
		Use:   "ratios [id|name]",
		Short: "Evaluate the blueprint's ratios over the last month, T12M and fiscal year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBlueprintID(ctx, app, optionalArg(args))
			if err != nil {
				return err
			}
			resp, err := app.Analytics.Ratios(ctx, contract.RatiosRequest{BlueprintID: id, Overlays: overlay.overlays})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRatios(resp))
			return nil
		},
	}

	addOverlayFlag(cmd.Flags(), overlay)
	return cmd
}

func newBreakdownCmd(app *App) *cobra.Command {
	var line, bucket, overlay string
	view := &viewValue{view: calendar.ViewMonths}

	cmd := &cobra.Command{
		Use:   "breakdown [id|name]",
		Short: "Attribute one line's bucket value to initiatives",
		Long: "Attribute one line's bucket value to initiatives.\n\n" +
			"When --line or --bucket is omitted in a terminal, an interactive picker is shown.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBlueprintID(ctx, app, optionalArg(args))
			if err != nil {
				return err
			}

			if line == "" || bucket == "" {
				if !app.interactive() {
					return fmt.Errorf("--line and --bucket are required when not running in a terminal")
				}
				sel := breakdownSelection{LineCode: line, BucketKey: bucket, View: view.view}
				if err := pickBreakdownTarget(ctx, app, id, &sel); err != nil {
					return err
				}
				line, bucket = sel.LineCode, sel.BucketKey
			}

			req := contract.NewBreakdownRequest(id, line, bucket)
			req.View = view.view
			req.Overlay = domain.Overlay(overlay)

			resp, err := app.Analytics.Breakdown(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBreakdown(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&line, "line", "", "Line code")
	cmd.Flags().StringVar(&bucket, "bucket", "", "Bucket key, e.g. 2025-03, 2025-Q1, CY2025 or FY2026")
	addViewFlag(cmd.Flags(), view, "Bucketing the key belongs to")
	cmd.Flags().StringVar(&overlay, "overlay", string(domain.OverlayPlan), "Initiative overlay: plan or actual")
	return cmd
}

func newGuardrailsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "guardrails [id|name]",
		Short: "List data-quality warnings for a blueprint and the initiatives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBlueprintID(ctx, app, optionalArg(args))
			if err != nil {
				return err
			}
			resp, err := app.Analytics.Guardrails(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatGuardrails(resp))
			return nil
		},
	}
}

func newKPIsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "kpis [id|name]",
		Short: "Summarize active-stage initiative KPIs over the blueprint horizon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveBlueprintID(ctx, app, optionalArg(args))
			if err != nil {
				return err
			}
			resp, err := app.Analytics.KPIs(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatKPIs(resp))
			return nil
		},
	}
}
