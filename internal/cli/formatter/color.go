package formatter

import (
	"strings"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/engine"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// DisableColor switches all rendering to plain text.
func DisableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// OverlayStyle gives each overlay a stable color across tables and charts.
func OverlayStyle(o domain.Overlay) lipgloss.Style {
	switch o {
	case domain.OverlayPlan:
		return StyleBlue
	case domain.OverlayActual:
		return StyleGreen
	default:
		return StyleFg
	}
}

// OverlayBadge renders a selection such as "base+plan" with per-overlay colors.
func OverlayBadge(overlays []domain.Overlay) string {
	parts := make([]string, len(overlays))
	for i, o := range overlays {
		parts[i] = OverlayStyle(o).Render(string(o))
	}
	return strings.Join(parts, Dim("+"))
}

// WarningIndicator returns a colored marker for a guardrail code.
func WarningIndicator(code engine.WarningCode) string {
	switch code {
	case engine.WarnDuplicateCode, engine.WarnUnlinkedEntry:
		return StyleRed.Render("● " + string(code))
	case engine.WarnNonFiniteValue:
		return StylePurple.Render("● " + string(code))
	default:
		return StyleYellowBold.Render("● " + string(code))
	}
}

// ModeBadge marks computed lines; manual lines get no badge.
func ModeBadge(mode domain.ComputationMode) string {
	switch mode {
	case domain.ModeChildren:
		return "Σ children"
	case domain.ModeCumulative:
		return "Σ above"
	default:
		return ""
	}
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
