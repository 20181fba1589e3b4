// Package engine resolves blueprint line values, initiative overlays,
// ratios and breakdowns. Every function is pure: inputs are never mutated
// and identical inputs produce identical outputs.
package engine

import "github.com/alexanderramin/blueprint/internal/domain"

// MonthValues maps a month to a signed amount.
type MonthValues map[domain.MonthKey]float64

// ValueMap maps a line ID to its monthly values.
type ValueMap map[string]MonthValues

// ManualSource supplies sign-adjusted values for manual-mode lines.
type ManualSource interface {
	ManualValues(lineID string) MonthValues
}

// ManualValues implements ManualSource.
func (v ValueMap) ManualValues(lineID string) MonthValues {
	return v[lineID]
}

// Get returns the value for a line and month, zero when absent.
func (v ValueMap) Get(lineID string, m domain.MonthKey) float64 {
	return v[lineID][m]
}

// Sum totals a line's values over months, iterating in the given order.
func (v ValueMap) Sum(lineID string, months []domain.MonthKey) float64 {
	series := v[lineID]
	var total float64
	for _, m := range months {
		total += series[m]
	}
	return total
}

// Combine adds maps cell by cell into a new map. Operands are not modified.
func Combine(maps ...ValueMap) ValueMap {
	out := make(ValueMap)
	for _, vm := range maps {
		for lineID, series := range vm {
			dst, ok := out[lineID]
			if !ok {
				dst = make(MonthValues, len(series))
				out[lineID] = dst
			}
			for m, val := range series {
				dst[m] += val
			}
		}
	}
	return out
}

// CodeIndex resolves line codes to lines. When codes repeat, the first line
// in document order wins.
type CodeIndex map[string]domain.LineItem

// IndexByCode builds a CodeIndex over lines, skipping empty codes.
func IndexByCode(lines []domain.LineItem) CodeIndex {
	idx := make(CodeIndex, len(lines))
	for _, l := range lines {
		if l.Code == "" {
			continue
		}
		if _, exists := idx[l.Code]; exists {
			continue
		}
		idx[l.Code] = l
	}
	return idx
}

// BaseSource builds the blueprint's own manual source: each manual line's
// stored months multiplied by its sign effect. Non-finite cells become zero
// and are counted in the second return value.
func BaseSource(lines []domain.LineItem, horizon []domain.MonthKey) (ValueMap, int) {
	src := make(ValueMap)
	var nonFinite int
	for _, l := range lines {
		if l.Mode != domain.ModeManual {
			continue
		}
		sign := l.SignEffect()
		series := make(MonthValues, len(horizon))
		for _, m := range horizon {
			raw, ok := l.Months[m]
			if !ok {
				continue
			}
			clean := domain.FiniteOrZero(raw)
			if clean != raw {
				nonFinite++
			}
			series[m] = clean * sign
		}
		src[l.ID] = series
	}
	return src, nonFinite
}
