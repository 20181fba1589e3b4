package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/blueprint/internal/contract"
	"github.com/alexanderramin/blueprint/internal/domain"
)

// MaxMonthColumns is the widest horizon FormatLines prints month by month.
const MaxMonthColumns = 12

func responseHeader(ref contract.BlueprintRef, overlays []domain.Overlay) string {
	return Bold(ref.Name) + Dim(fmt.Sprintf(" v%d", ref.Version)) + "  " + OverlayBadge(overlays) + "\n"
}

// FormatLines renders resolved lines. With monthly set, every horizon
// month gets a column; otherwise only totals and run rates are shown.
func FormatLines(resp *contract.LinesResponse, monthly bool) string {
	var b strings.Builder
	b.WriteString(responseHeader(resp.Blueprint, resp.Overlays))
	fmt.Fprintf(&b, "%s %s  %s %s\n\n", Dim("Horizon:"), HorizonLabel(resp.Horizon), Dim("Period:"), PeriodLabel(resp.Period))

	headers := []string{"CODE", "LINE"}
	align := []Align{AlignLeft, AlignLeft}
	if monthly {
		for _, m := range resp.Horizon {
			headers = append(headers, strings.ToUpper(MonthLabel(m)))
			align = append(align, AlignRight)
		}
	}
	headers = append(headers, "TOTAL", "RUN RATE")
	align = append(align, AlignRight, AlignRight)

	rows := make([][]string, 0, len(resp.Lines))
	for _, l := range resp.Lines {
		name := strings.Repeat("  ", l.Depth) + l.Name
		if l.Mode != domain.ModeManual {
			name = Bold(name)
		}
		row := []string{Dim(l.Code), name}
		if monthly {
			for _, v := range l.Values {
				row = append(row, SignedAmount(v))
			}
		}
		row = append(row, SignedAmount(l.Total), SignedAmount(l.RunRate))
		rows = append(rows, row)
	}
	b.WriteString(RenderAlignedTable(headers, rows, align))

	if n := len(resp.Warnings); n > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d guardrail warning(s); see `blueprint guardrails %s`", n, resp.Blueprint.ID)))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatLineTree renders the line hierarchy with each line's total.
func FormatLineTree(resp *contract.LinesResponse) string {
	items := make([]TreeItem, len(resp.Lines))
	for i, l := range resp.Lines {
		items[i] = TreeItem{
			Title:  l.Name,
			Code:   l.Code,
			Level:  l.Depth,
			IsLast: lastSibling(resp.Lines, i),
			Badge:  ModeBadge(l.Mode),
			Detail: SignedAmount(l.Total),
		}
	}
	return responseHeader(resp.Blueprint, resp.Overlays) + "\n" + RenderTree(items)
}

// lastSibling reports whether no later line shares the parent of lines[i].
func lastSibling(lines []contract.LineView, i int) bool {
	d := lines[i].Depth
	for _, l := range lines[i+1:] {
		if l.Depth < d {
			return true
		}
		if l.Depth == d {
			return false
		}
	}
	return true
}
