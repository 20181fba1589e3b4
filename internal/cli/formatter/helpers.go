package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// HumanDateFrom returns "Today", "Yesterday" or a short absolute date.
func HumanDateFrom(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp returns a human-friendly relative timestamp string.
func HumanTimestamp(t time.Time) string {
	return HumanTimestampFrom(t, time.Now())
}

func HumanTimestampFrom(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < 0:
		return HumanDateFrom(t, now)
	case diff < time.Minute:
		return "Just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return HumanDateFrom(t, now)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// MonthLabel renders "2025-03" as "Mar 25".
func MonthLabel(m domain.MonthKey) string {
	if !m.Valid() {
		return string(m)
	}
	return time.Month(m.Month()).String()[:3] + fmt.Sprintf(" %02d", m.Year()%100)
}

// PeriodLabel renders the reporting period, or a dim placeholder when unset.
func PeriodLabel(p *domain.ReportingPeriod) string {
	if p == nil {
		return Dim("not set")
	}
	return MonthLabel(p.MonthKey())
}

// HorizonLabel renders a horizon as "Jan 25 – Dec 25 (12 months)".
func HorizonLabel(months []domain.MonthKey) string {
	if len(months) == 0 {
		return Dim("empty")
	}
	return fmt.Sprintf("%s – %s (%d months)", MonthLabel(months[0]), MonthLabel(months[len(months)-1]), len(months))
}
