package engine

import (
	"fmt"

	"github.com/alexanderramin/blueprint/internal/calendar"
	"github.com/alexanderramin/blueprint/internal/domain"
	"github.com/shopspring/decimal"
)

type Window string

const (
	WindowLastMonth  Window = "last_month"
	WindowTrailing12 Window = "trailing_12"
	WindowFiscalYear Window = "fiscal_year"
)

// Windows lists ratio windows in display order.
var Windows = []Window{WindowLastMonth, WindowTrailing12, WindowFiscalYear}

const trailingMonths = 12

// RatioValue is a ratio evaluated over one window. When Available is false
// the value must be rendered as unavailable.
type RatioValue struct {
	Window      Window
	Label       string
	Months      []domain.MonthKey
	Numerator   float64
	Denominator float64
	Value       float64
	Available   bool
}

type RatioResult struct {
	Definition domain.RatioDefinition
	Windows    []RatioValue
}

// RatioContext carries what ratio windows need besides the values.
type RatioContext struct {
	Codes   CodeIndex
	Horizon []domain.MonthKey
	Fiscal  domain.FiscalYearConfig
	Period  *domain.ReportingPeriod
}

// EvaluateRatios computes every ratio over the last month, the trailing
// twelve months and the current fiscal year. A missing code or a zero
// denominator makes that window unavailable without affecting the others.
func EvaluateRatios(defs []domain.RatioDefinition, values ValueMap, rc RatioContext) []RatioResult {
	windows := ratioWindows(rc)
	out := make([]RatioResult, 0, len(defs))
	for _, def := range defs {
		num, numOK := rc.Codes[def.NumeratorCode]
		den, denOK := rc.Codes[def.DenominatorCode]
		res := RatioResult{Definition: def}
		for _, w := range Windows {
			months := windows[w].months
			rv := RatioValue{Window: w, Label: windows[w].label, Months: months}
			if numOK && denOK && len(months) > 0 {
				rv.Numerator = values.Sum(num.ID, months)
				rv.Denominator = values.Sum(den.ID, months)
				if rv.Denominator != 0 {
					rv.Value = rv.Numerator / rv.Denominator
					rv.Available = true
				}
			}
			res.Windows = append(res.Windows, rv)
		}
		out = append(out, res)
	}
	return out
}

type window struct {
	label  string
	months []domain.MonthKey
}

func ratioWindows(rc RatioContext) map[Window]window {
	out := make(map[Window]window, len(Windows))
	h := rc.Horizon
	if len(h) == 0 {
		return out
	}
	last := h[len(h)-1]
	out[WindowLastMonth] = window{label: string(last), months: []domain.MonthKey{last}}
	out[WindowTrailing12] = window{label: "T12M", months: TrailingMonths(h, trailingMonths)}

	anchor := last
	if rc.Period != nil {
		anchor = rc.Period.MonthKey()
	}
	fy := calendar.FiscalYear(anchor, rc.Fiscal)
	fyBucket := calendar.FiscalMonths(h, fy, rc.Fiscal)
	out[WindowFiscalYear] = window{label: fiscalLabel(fy), months: fyBucket}
	return out
}

func fiscalLabel(fy int) string {
	return fmt.Sprintf("FY%d", fy)
}

// TrailingMonths returns the last n months of horizon, or all of it when shorter.
func TrailingMonths(horizon []domain.MonthKey, n int) []domain.MonthKey {
	if len(horizon) <= n {
		return horizon
	}
	return horizon[len(horizon)-n:]
}

// RunRate is the trailing twelve-month sum of a line, or the full-horizon
// sum when fewer than twelve months are available. No extrapolation is made.
func RunRate(values ValueMap, lineID string, horizon []domain.MonthKey) float64 {
	return values.Sum(lineID, TrailingMonths(horizon, trailingMonths))
}

// FormatRatio renders a ratio value for display: percentages are scaled by
// 100 with a "%" suffix, multiples keep the raw ratio with an "x" suffix.
func FormatRatio(rv RatioValue, def domain.RatioDefinition) string {
	if !rv.Available {
		return "n/a"
	}
	precision := int32(def.Precision)
	if precision < 0 {
		precision = 0
	}
	if precision > 4 {
		precision = 4
	}
	d := decimal.NewFromFloat(rv.Value)
	if def.Format == domain.FormatMultiple {
		return d.StringFixed(precision) + "x"
	}
	return d.Mul(decimal.NewFromInt(100)).StringFixed(precision) + "%"
}
