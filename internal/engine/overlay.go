package engine

import "github.com/alexanderramin/blueprint/internal/domain"

// Selector picks which monthly amounts of a financial entry feed an overlay.
type Selector func(e domain.FinancialEntry) map[domain.MonthKey]float64

// SelectPlan feeds the plan overlay from planned distributions.
func SelectPlan(e domain.FinancialEntry) map[domain.MonthKey]float64 { return e.Distribution }

// SelectActual feeds the actual overlay from realized amounts.
func SelectActual(e domain.FinancialEntry) map[domain.MonthKey]float64 { return e.Actuals }

// SelectorFor returns the selector backing an initiative overlay.
func SelectorFor(o domain.Overlay) (Selector, bool) {
	switch o {
	case domain.OverlayPlan:
		return SelectPlan, true
	case domain.OverlayActual:
		return SelectActual, true
	default:
		return nil, false
	}
}

// Attribution keeps each initiative's signed contribution per line and month:
// line ID -> month -> initiative ID -> amount.
type Attribution map[string]map[domain.MonthKey]map[string]float64

func (a Attribution) add(lineID string, m domain.MonthKey, initiativeID string, amount float64) {
	byMonth, ok := a[lineID]
	if !ok {
		byMonth = make(map[domain.MonthKey]map[string]float64)
		a[lineID] = byMonth
	}
	byInit, ok := byMonth[m]
	if !ok {
		byInit = make(map[string]float64)
		byMonth[m] = byInit
	}
	byInit[initiativeID] += amount
}

// UnlinkedEntry is a financial entry whose line code matches no blueprint line.
type UnlinkedEntry struct {
	InitiativeID   string
	InitiativeName string
	LineCode       string
}

// OverlayResult is the output of BuildOverlay.
type OverlayResult struct {
	Aggregate   ValueMap
	Attribution Attribution
	Unlinked    []UnlinkedEntry
	NonFinite   int
}

// BuildOverlay accumulates every initiative's active-stage entries into the
// referenced lines, applying each line's sign effect. Only months within
// horizon are counted. Entries with an unknown line code are skipped and
// reported in Unlinked.
func BuildOverlay(initiatives []domain.Initiative, codes CodeIndex, horizon []domain.MonthKey, sel Selector) OverlayResult {
	res := OverlayResult{
		Aggregate:   make(ValueMap),
		Attribution: make(Attribution),
	}
	for i := range initiatives {
		ini := &initiatives[i]
		stage := ini.Active()
		if stage == nil {
			continue
		}
		for _, entry := range stage.Financials {
			line, ok := codes[entry.LineCode]
			if !ok {
				res.Unlinked = append(res.Unlinked, UnlinkedEntry{
					InitiativeID:   ini.ID,
					InitiativeName: ini.Name,
					LineCode:       entry.LineCode,
				})
				continue
			}
			amounts := sel(entry)
			if len(amounts) == 0 {
				continue
			}
			sign := line.SignEffect()
			series, ok := res.Aggregate[line.ID]
			if !ok {
				series = make(MonthValues)
				res.Aggregate[line.ID] = series
			}
			for _, m := range horizon {
				raw, ok := amounts[m]
				if !ok {
					continue
				}
				clean := domain.FiniteOrZero(raw)
				if clean != raw {
					res.NonFinite++
				}
				signed := clean * sign
				series[m] += signed
				res.Attribution.add(line.ID, m, ini.ID, signed)
			}
		}
	}
	return res
}
