package formatter

import (
	"strings"
	"testing"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/contract"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/alexanderramin/blueprint/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestFormatLines_MonthlyColumns(t *testing.T) {
	resp := goldenLines()
	for i := range resp.Lines {
		resp.Lines[i].Values = []float64{1, 2, 3}
	}
	out := stripANSI(FormatLines(resp, true))
	assert.Contains(t, out, "JAN 25")
	assert.Contains(t, out, "MAR 25")
	assert.Contains(t, out, "RUN RATE")
}

func TestFormatLineTree(t *testing.T) {
	out := stripANSI(FormatLineTree(goldenLines()))
	assert.Contains(t, out, "├─ SUBS Subscriptions")
	assert.Contains(t, out, "└─ SERV Services")
	assert.Contains(t, out, "[ Σ children ]")
	assert.Contains(t, out, "[ Σ above ]")
	assert.Contains(t, out, "-450.50")
}

func TestLastSibling(t *testing.T) {
	lines := goldenLines().Lines
	got := make([]bool, len(lines))
	for i := range lines {
		got[i] = lastSibling(lines, i)
	}
	assert.Equal(t, []bool{false, false, true, false, true}, got)
}

func TestFormatChart(t *testing.T) {
	q1 := calendar.Bucket{Key: "2025-Q1", Label: "Q1 2025"}
	q2 := calendar.Bucket{Key: "2025-Q2", Label: "Q2 2025"}
	resp := &contract.ChartResponse{
		Blueprint: goldenRef,
		Line:      contract.LineView{Code: "REV", Name: "Revenue"},
		View:      calendar.ViewQuarters,
		Overlays:  []domain.Overlay{domain.OverlayBase, domain.OverlayPlan},
		Points: []contract.SeriesPoint{
			{Bucket: q1, Total: 360, Segments: []engine.Segment{{Overlay: domain.OverlayBase, Value: 320}, {Overlay: domain.OverlayPlan, Value: 40}}},
			{Bucket: q2, Total: -90, Segments: []engine.Segment{{Overlay: domain.OverlayBase, Value: -100}, {Overlay: domain.OverlayPlan, Value: 10}}},
		},
	}
	out := stripANSI(FormatChart(resp))
	assert.Contains(t, out, "BUCKET")
	assert.Contains(t, out, "BASE")
	assert.Contains(t, out, "PLAN")
	lines := strings.Split(out, "\n")
	var q1Line, q2Line string
	for _, l := range lines {
		switch {
		case strings.HasPrefix(l, "Q1 2025"):
			q1Line = l
		case strings.HasPrefix(l, "Q2 2025"):
			q2Line = l
		}
	}
	assert.Equal(t, chartBarWidth, strings.Count(q1Line, filledBlock), "peak bucket fills the bar")
	assert.Equal(t, 5, strings.Count(q2Line, filledBlock), "90/360 of the bar")
}

func TestFormatChart_AllZero(t *testing.T) {
	resp := &contract.ChartResponse{
		Blueprint: goldenRef,
		Overlays:  []domain.Overlay{domain.OverlayBase},
		Points:    []contract.SeriesPoint{{Bucket: calendar.Bucket{Label: "Jan 2025"}, Segments: []engine.Segment{{Overlay: domain.OverlayBase}}}},
	}
	assert.NotContains(t, stripANSI(FormatChart(resp)), filledBlock)
}

func TestFormatRatios(t *testing.T) {
	resp := &contract.RatiosResponse{
		Blueprint: goldenRef,
		Overlays:  []domain.Overlay{domain.OverlayBase},
		Ratios: []contract.RatioView{{
			ID:    "gm",
			Label: "Gross margin",
			Windows: []contract.RatioWindowView{
				{Window: engine.WindowLastMonth, Label: "2025-06", Display: "n/a"},
				{Window: engine.WindowTrailing12, Label: "T12M", Available: true, Display: "75.0%"},
				{Window: engine.WindowFiscalYear, Label: "FY2025", Available: true, Display: "75.0%"},
			},
		}},
	}
	out := stripANSI(FormatRatios(resp))
	assert.Contains(t, out, "T12M")
	assert.Contains(t, out, "FY2025")
	assert.Contains(t, out, "Gross margin")
	assert.Contains(t, out, "n/a")

	resp.Ratios = nil
	assert.Contains(t, stripANSI(FormatRatios(resp)), "defines no ratios")
}

func TestFormatBreakdown_Empty(t *testing.T) {
	resp := &contract.BreakdownResponse{
		Blueprint: goldenRef,
		Line:      contract.LineView{Code: "SUBS", Name: "Subscriptions"},
		Bucket:    calendar.Bucket{Label: "Apr 2025"},
		Overlay:   domain.OverlayActual,
	}
	out := stripANSI(FormatBreakdown(resp))
	assert.Contains(t, out, "ACTUAL contributions")
	assert.Contains(t, out, "No initiative contributions")
}

func TestFormatGuardrails_Clean(t *testing.T) {
	out := stripANSI(FormatGuardrails(&contract.GuardrailsResponse{Blueprint: goldenRef}))
	assert.Contains(t, out, "No data-quality warnings")
}

func TestFormatKPIs(t *testing.T) {
	resp := &contract.KPIsResponse{
		Blueprint: goldenRef,
		Horizon:   []domain.MonthKey{"2025-01"},
		KPIs: []contract.KPISummary{
			{InitiativeName: "Upsell", Name: "Seats", Unit: "seats", Planned: 10, Actual: 5, Attainment: 0.5, HasAttainment: true},
			{InitiativeName: "Upsell", Name: "NPS", Baseline: 30},
		},
	}
	out := stripANSI(FormatKPIs(resp))
	assert.Contains(t, out, "Seats (seats)")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "--")

	resp.KPIs = nil
	assert.Contains(t, stripANSI(FormatKPIs(resp)), "No KPIs")
}
