package repository

import (
	"github.com/alexanderramin/blueprint/internal/domain"
)

// Stored document shapes. Identity, name, version and timestamps live in
// their own columns; everything else is one JSON document per row.

type lineDoc struct {
	ID     string                      `json:"id"`
	Code   string                      `json:"code"`
	Name   string                      `json:"name"`
	Indent int                         `json:"indent"`
	Nature string                      `json:"nature"`
	Mode   string                      `json:"mode"`
	Months map[domain.MonthKey]float64 `json:"months,omitempty"`
}

type ratioDoc struct {
	ID              string `json:"id"`
	Label           string `json:"label"`
	NumeratorCode   string `json:"numerator_code"`
	DenominatorCode string `json:"denominator_code"`
	Format          string `json:"format"`
	Precision       int    `json:"precision"`
}

type blueprintDoc struct {
	StartMonth  domain.MonthKey `json:"start_month"`
	MonthCount  int             `json:"month_count"`
	FiscalStart int             `json:"fiscal_start"`
	FiscalNames string          `json:"fiscal_naming,omitempty"`
	Ratios      []ratioDoc      `json:"ratios,omitempty"`
	Lines       []lineDoc       `json:"lines"`
}

type entryDoc struct {
	LineCode     string                      `json:"line_code"`
	Distribution map[domain.MonthKey]float64 `json:"distribution,omitempty"`
	Actuals      map[domain.MonthKey]float64 `json:"actuals,omitempty"`
}

type kpiDoc struct {
	Name         string                      `json:"name"`
	Unit         string                      `json:"unit,omitempty"`
	Baseline     float64                     `json:"baseline"`
	Distribution map[domain.MonthKey]float64 `json:"distribution,omitempty"`
	Actuals      map[domain.MonthKey]float64 `json:"actuals,omitempty"`
}

type stageDoc struct {
	Name       string     `json:"name"`
	Financials []entryDoc `json:"financials,omitempty"`
	KPIs       []kpiDoc   `json:"kpis,omitempty"`
}

type initiativeDoc struct {
	ActiveStage string     `json:"active_stage"`
	Stages      []stageDoc `json:"stages"`
}

// finiteMonths copies m, replacing values JSON cannot carry with zero.
func finiteMonths(m map[domain.MonthKey]float64) map[domain.MonthKey]float64 {
	if m == nil {
		return nil
	}
	out := make(map[domain.MonthKey]float64, len(m))
	for k, v := range m {
		out[k] = domain.FiniteOrZero(v)
	}
	return out
}

func toBlueprintDoc(b *domain.Blueprint) blueprintDoc {
	doc := blueprintDoc{
		StartMonth:  b.StartMonth,
		MonthCount:  b.MonthCount,
		FiscalStart: b.FiscalYear.StartMonth,
		FiscalNames: string(b.FiscalYear.Naming),
		Lines:       make([]lineDoc, 0, len(b.Lines)),
	}
	for _, r := range b.Ratios {
		doc.Ratios = append(doc.Ratios, ratioDoc{
			ID:              r.ID,
			Label:           r.Label,
			NumeratorCode:   r.NumeratorCode,
			DenominatorCode: r.DenominatorCode,
			Format:          string(r.Format),
			Precision:       r.Precision,
		})
	}
	for _, l := range b.Lines {
		doc.Lines = append(doc.Lines, lineDoc{
			ID:     l.ID,
			Code:   l.Code,
			Name:   l.Name,
			Indent: l.Indent,
			Nature: string(l.Nature),
			Mode:   string(l.Mode),
			Months: finiteMonths(l.Months),
		})
	}
	return doc
}

func (d blueprintDoc) apply(b *domain.Blueprint) {
	b.StartMonth = d.StartMonth
	b.MonthCount = d.MonthCount
	b.FiscalYear = domain.FiscalYearConfig{StartMonth: d.FiscalStart, Naming: domain.FiscalNaming(d.FiscalNames)}
	b.Ratios = nil
	for _, r := range d.Ratios {
		b.Ratios = append(b.Ratios, domain.RatioDefinition{
			ID:              r.ID,
			Label:           r.Label,
			NumeratorCode:   r.NumeratorCode,
			DenominatorCode: r.DenominatorCode,
			Format:          domain.RatioFormat(r.Format),
			Precision:       r.Precision,
		})
	}
	b.Lines = make([]domain.LineItem, 0, len(d.Lines))
	for _, l := range d.Lines {
		b.Lines = append(b.Lines, domain.LineItem{
			ID:     l.ID,
			Code:   l.Code,
			Name:   l.Name,
			Indent: l.Indent,
			Nature: domain.Nature(l.Nature),
			Mode:   domain.ComputationMode(l.Mode),
			Months: l.Months,
		})
	}
}

func toInitiativeDoc(i *domain.Initiative) initiativeDoc {
	doc := initiativeDoc{ActiveStage: i.ActiveStage, Stages: make([]stageDoc, 0, len(i.Stages))}
	for _, s := range i.Stages {
		sd := stageDoc{Name: s.Name}
		for _, e := range s.Financials {
			sd.Financials = append(sd.Financials, entryDoc{
				LineCode:     e.LineCode,
				Distribution: finiteMonths(e.Distribution),
				Actuals:      finiteMonths(e.Actuals),
			})
		}
		for _, k := range s.KPIs {
			sd.KPIs = append(sd.KPIs, kpiDoc{
				Name:         k.Name,
				Unit:         k.Unit,
				Baseline:     domain.FiniteOrZero(k.Baseline),
				Distribution: finiteMonths(k.Distribution),
				Actuals:      finiteMonths(k.Actuals),
			})
		}
		doc.Stages = append(doc.Stages, sd)
	}
	return doc
}

func (d initiativeDoc) apply(i *domain.Initiative) {
	i.ActiveStage = d.ActiveStage
	i.Stages = make([]domain.Stage, 0, len(d.Stages))
	for _, sd := range d.Stages {
		s := domain.Stage{Name: sd.Name}
		for _, e := range sd.Financials {
			s.Financials = append(s.Financials, domain.FinancialEntry{
				LineCode:     e.LineCode,
				Distribution: e.Distribution,
				Actuals:      e.Actuals,
			})
		}
		for _, k := range sd.KPIs {
			s.KPIs = append(s.KPIs, domain.KPI{
				Name:         k.Name,
				Unit:         k.Unit,
				Baseline:     k.Baseline,
				Distribution: k.Distribution,
				Actuals:      k.Actuals,
			})
		}
		i.Stages = append(i.Stages, s)
	}
}
