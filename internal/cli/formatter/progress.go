package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a share bar like [████░░░░] 45.0%. Shares outside 0..1
// are clamped.
func RenderBar(share float64, width int) string {
	bar := RenderCompactBar(share, width, StyleBlue)
	return fmt.Sprintf("[%s] %5.1f%%", bar, clampShare(share)*100)
}

// RenderAttainment colors the bar by progress: green from 90%, yellow from
// 50%, red below.
func RenderAttainment(ratio float64, width int) string {
	style := StyleGreen
	switch {
	case ratio < 0.5:
		style = StyleRed
	case ratio < 0.9:
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", RenderCompactBar(ratio, width, style), ratio*100)
}

// RenderCompactBar renders only the blocks, with no brackets or percentage.
func RenderCompactBar(share float64, width int, style lipgloss.Style) string {
	if width < 2 {
		width = 2
	}
	filled := int(clampShare(share)*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return style.Render(strings.Repeat(filledBlock, filled)) + Dim(strings.Repeat(emptyBlock, width-filled))
}

func clampShare(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
