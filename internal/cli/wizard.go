package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/cli/formatter"
	"github.com/alexanderramin/blueprint/internal/contract"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// blueprintHuhTheme styles huh forms with the Gruvbox palette.
func blueprintHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func selectForm(title string, options []huh.Option[string], result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(title).
				Options(options...).
				Value(result),
		),
	).WithTheme(blueprintHuhTheme()).WithShowHelp(false)
}

func blueprintOptions(blueprints []*domain.Blueprint) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(blueprints))
	for _, bp := range blueprints {
		label := fmt.Sprintf("%s  %s (v%d)", bp.DisplayID(), bp.Name, bp.Version)
		options = append(options, huh.NewOption(label, bp.ID))
	}
	return options
}

func pickBlueprint(blueprints []*domain.Blueprint) (string, error) {
	var id string
	if err := selectForm("Which blueprint?", blueprintOptions(blueprints), &id).Run(); err != nil {
		return "", err
	}
	return id, nil
}

type breakdownSelection struct {
	LineCode  string
	BucketKey string
	View      calendar.View
}

// lineOptions lists coded lines with their outline indent.
func lineOptions(lines []contract.LineView) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(lines))
	seen := make(map[string]bool)
	for _, l := range lines {
		if l.Code == "" || seen[l.Code] {
			continue
		}
		seen[l.Code] = true
		label := fmt.Sprintf("%s%s (%s)", strings.Repeat("  ", l.Depth), l.Name, l.Code)
		options = append(options, huh.NewOption(label, l.Code))
	}
	return options
}

func bucketOptions(points []contract.SeriesPoint) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(points))
	for _, p := range points {
		options = append(options, huh.NewOption(p.Bucket.Label, p.Bucket.Key))
	}
	return options
}

// pickBreakdownTarget fills in whichever of line and bucket is still empty.
func pickBreakdownTarget(ctx context.Context, app *App, blueprintID string, sel *breakdownSelection) error {
	if sel.LineCode == "" {
		lines, err := app.Analytics.Lines(ctx, contract.NewLinesRequest(blueprintID))
		if err != nil {
			return err
		}
		options := lineOptions(lines.Lines)
		if len(options) == 0 {
			return fmt.Errorf("blueprint has no coded lines to break down")
		}
		if err := selectForm("Which line?", options, &sel.LineCode).Run(); err != nil {
			return err
		}
	}

	if sel.BucketKey == "" {
		req := contract.NewChartRequest(blueprintID, sel.LineCode)
		if sel.View != "" {
			req.View = sel.View
		}
		chart, err := app.Analytics.Chart(ctx, req)
		if err != nil {
			return err
		}
		options := bucketOptions(chart.Points)
		if len(options) == 0 {
			return fmt.Errorf("blueprint horizon is empty")
		}
		if err := selectForm("Which period?", options, &sel.BucketKey).Run(); err != nil {
			return err
		}
	}
	return nil
}
