package engine

import "github.com/alexanderramin/blueprint/internal/domain"

// resolution holds the per-call memo table. Lines are addressed by position
// so duplicate or missing IDs cannot corrupt the walk.
type resolution struct {
	lines      []domain.LineItem
	horizon    []domain.MonthKey
	hierarchy  *Hierarchy
	source     ManualSource
	memo       [][]float64
	inProgress []bool
	cumulative [][]float64
}

// Resolve computes every line's value for every month of horizon.
//
//   - manual lines take their values from source (zero when absent);
//   - children lines sum the resolved values of their direct children;
//   - cumulative lines carry the running total, in document order, of all
//     manual lines up to and including their own position.
//
// The result is a fresh map; lines and source are only read.
func Resolve(lines []domain.LineItem, horizon []domain.MonthKey, h *Hierarchy, source ManualSource) ValueMap {
	if h == nil || len(h.ids) != len(lines) {
		h = BuildHierarchy(lines)
	}
	r := &resolution{
		lines:      lines,
		horizon:    horizon,
		hierarchy:  h,
		source:     source,
		memo:       make([][]float64, len(lines)),
		inProgress: make([]bool, len(lines)),
	}
	r.buildCumulative()

	out := make(ValueMap, len(lines))
	for i, l := range lines {
		vals := r.value(i)
		series := make(MonthValues, len(horizon))
		for k, m := range horizon {
			series[m] = vals[k]
		}
		out[l.ID] = series
	}
	return out
}

// buildCumulative computes the positional running total once so every
// cumulative line is O(months).
func (r *resolution) buildCumulative() {
	r.cumulative = make([][]float64, len(r.lines))
	running := make([]float64, len(r.horizon))
	for i, l := range r.lines {
		switch l.Mode {
		case domain.ModeManual:
			for k, v := range r.value(i) {
				running[k] += v
			}
		case domain.ModeCumulative:
			snapshot := make([]float64, len(running))
			copy(snapshot, running)
			r.cumulative[i] = snapshot
		}
	}
}

func (r *resolution) value(pos int) []float64 {
	if r.memo[pos] != nil {
		return r.memo[pos]
	}
	vals := make([]float64, len(r.horizon))
	// A line reached again while resolving itself contributes zero.
	if r.inProgress[pos] {
		return vals
	}
	r.inProgress[pos] = true
	defer func() { r.inProgress[pos] = false }()

	l := r.lines[pos]
	switch l.Mode {
	case domain.ModeManual:
		var series MonthValues
		if r.source != nil {
			series = r.source.ManualValues(l.ID)
		}
		for k, m := range r.horizon {
			vals[k] = domain.FiniteOrZero(series[m])
		}
	case domain.ModeChildren:
		for _, c := range r.hierarchy.childPositions(pos) {
			for k, v := range r.value(c) {
				vals[k] += v
			}
		}
	case domain.ModeCumulative:
		if r.cumulative[pos] != nil {
			copy(vals, r.cumulative[pos])
		}
	}

	r.memo[pos] = vals
	return vals
}
