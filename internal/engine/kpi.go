package engine

import "github.com/alexanderramin/blueprint/internal/domain"

// KPISummary totals one stage KPI over the horizon.
type KPISummary struct {
	InitiativeID   string
	InitiativeName string
	Name           string
	Unit           string
	Baseline       float64
	Planned        float64
	Actual         float64
	Attainment     float64 // actual / planned
	HasAttainment  bool
}

// SummarizeKPIs reports planned vs actual totals for the active stage KPIs.
func SummarizeKPIs(initiatives []domain.Initiative, horizon []domain.MonthKey) []KPISummary {
	var out []KPISummary
	for i := range initiatives {
		ini := &initiatives[i]
		stage := ini.Active()
		if stage == nil {
			continue
		}
		for _, k := range stage.KPIs {
			s := KPISummary{
				InitiativeID:   ini.ID,
				InitiativeName: ini.Name,
				Name:           k.Name,
				Unit:           k.Unit,
				Baseline:       domain.FiniteOrZero(k.Baseline),
			}
			for _, m := range horizon {
				s.Planned += domain.FiniteOrZero(k.Distribution[m])
				s.Actual += domain.FiniteOrZero(k.Actuals[m])
			}
			if s.Planned != 0 {
				s.Attainment = s.Actual / s.Planned
				s.HasAttainment = true
			}
			out = append(out, s)
		}
	}
	return out
}
