package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/blueprint/internal/contract"
	"github.com/alexanderramin/blueprint/internal/engine"
)

const (
	chartBarWidth     = 20
	breakdownBarWidth = 12
)

// FormatChart renders one row per bucket with a segment column per overlay
// and a bar scaled to the largest absolute total.
func FormatChart(resp *contract.ChartResponse) string {
	var b strings.Builder
	b.WriteString(responseHeader(resp.Blueprint, resp.Overlays))
	fmt.Fprintf(&b, "%s %s %s  %s %s\n\n", Dim("Line:"), Dim(resp.Line.Code), resp.Line.Name, Dim("View:"), resp.View)

	headers := []string{"BUCKET"}
	for _, o := range resp.Overlays {
		headers = append(headers, strings.ToUpper(string(o)))
	}
	headers = append(headers, "TOTAL", "")

	peak := 0.0
	for _, p := range resp.Points {
		peak = math.Max(peak, math.Abs(p.Total))
	}

	align := []Align{AlignLeft}
	rows := make([][]string, 0, len(resp.Points))
	for _, p := range resp.Points {
		row := []string{p.Bucket.Label}
		for _, s := range p.Segments {
			row = append(row, OverlayStyle(s.Overlay).Render(Amount(s.Value)))
		}
		row = append(row, SignedAmount(p.Total), chartBar(p.Total, peak))
		rows = append(rows, row)
	}
	for range resp.Overlays {
		align = append(align, AlignRight)
	}
	align = append(align, AlignRight, AlignLeft)
	b.WriteString(RenderAlignedTable(headers, rows, align))
	return b.String()
}

func chartBar(v, peak float64) string {
	if peak == 0 {
		return ""
	}
	style := StyleGreen
	if v < 0 {
		style = StyleRed
	}
	return RenderCompactBar(math.Abs(v)/peak, chartBarWidth, style)
}

// FormatRatios renders every ratio across its evaluation windows.
func FormatRatios(resp *contract.RatiosResponse) string {
	var b strings.Builder
	b.WriteString(responseHeader(resp.Blueprint, resp.Overlays) + "\n")
	if len(resp.Ratios) == 0 {
		b.WriteString(Dim("This blueprint defines no ratios.") + "\n")
		return b.String()
	}

	headers := []string{"RATIO"}
	for _, w := range resp.Ratios[0].Windows {
		headers = append(headers, w.Label)
	}
	align := []Align{AlignLeft}
	for range resp.Ratios[0].Windows {
		align = append(align, AlignRight)
	}

	rows := make([][]string, 0, len(resp.Ratios))
	for _, r := range resp.Ratios {
		row := []string{Bold(r.Label)}
		for _, w := range r.Windows {
			cell := w.Display
			if !w.Available {
				cell = Dim(cell)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	b.WriteString(RenderAlignedTable(headers, rows, align))
	return b.String()
}

// FormatBreakdown renders initiative contributions to one line and bucket.
func FormatBreakdown(resp *contract.BreakdownResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s %s %s %s\n",
		OverlayStyle(resp.Overlay).Render(strings.ToUpper(string(resp.Overlay))),
		Dim("contributions to"), Bold(resp.Line.Name), Dim("("+resp.Line.Code+")"),
		Dim("in"), resp.Bucket.Label)
	b.WriteString(Dim(fmt.Sprintf("%s v%d", resp.Blueprint.Name, resp.Blueprint.Version)) + "\n\n")

	if len(resp.Result.Rows) == 0 {
		b.WriteString(Dim("No initiative contributions in this bucket.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(resp.Result.Rows))
	for _, r := range resp.Result.Rows {
		name := r.Name
		if r.Others {
			name = Dim(fmt.Sprintf("%s (%d)", engine.OthersLabel, r.Count))
		}
		rows = append(rows, []string{name, SignedAmount(r.Value), RenderBar(r.Share/100, breakdownBarWidth)})
	}
	b.WriteString(RenderAlignedTable(
		[]string{"INITIATIVE", "VALUE", "SHARE"},
		rows,
		[]Align{AlignLeft, AlignRight, AlignLeft},
	))
	fmt.Fprintf(&b, "\n%s %s  %s %s\n", Dim("Net:"), SignedAmount(resp.Result.Net), Dim("Gross:"), Amount(resp.Result.TotalAbs))
	return b.String()
}

// FormatGuardrails lists data-quality warnings, or a clean bill of health.
func FormatGuardrails(resp *contract.GuardrailsResponse) string {
	var b strings.Builder
	b.WriteString(Bold(resp.Blueprint.Name) + Dim(fmt.Sprintf(" v%d", resp.Blueprint.Version)) + "\n\n")
	if len(resp.Warnings) == 0 {
		b.WriteString(StyleGreen.Render("✔ No data-quality warnings") + "\n")
		return b.String()
	}
	for _, w := range resp.Warnings {
		fmt.Fprintf(&b, "%s  %s\n", WarningIndicator(w.Code), w.Message)
	}
	fmt.Fprintf(&b, "\n%s\n", Dim(fmt.Sprintf("%d warning(s). Values are still computed.", len(resp.Warnings))))
	return b.String()
}

// FormatKPIs renders active-stage KPI totals over the horizon.
func FormatKPIs(resp *contract.KPIsResponse) string {
	var b strings.Builder
	b.WriteString(Bold(resp.Blueprint.Name) + "  " + Dim(HorizonLabel(resp.Horizon)) + "\n\n")
	if len(resp.KPIs) == 0 {
		b.WriteString(Dim("No KPIs on active initiative stages.") + "\n")
		return b.String()
	}
	rows := make([][]string, 0, len(resp.KPIs))
	for _, k := range resp.KPIs {
		name := k.Name
		if k.Unit != "" {
			name += Dim(" (" + k.Unit + ")")
		}
		attainment := Dim("--")
		if k.HasAttainment {
			attainment = RenderAttainment(k.Attainment, 10)
		}
		rows = append(rows, []string{k.InitiativeName, name, Amount(k.Baseline), Amount(k.Planned), Amount(k.Actual), attainment})
	}
	b.WriteString(RenderAlignedTable(
		[]string{"INITIATIVE", "KPI", "BASELINE", "PLANNED", "ACTUAL", "ATTAINMENT"},
		rows,
		[]Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	))
	return b.String()
}
