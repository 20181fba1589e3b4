package domain

import "time"

// FinancialEntry is one initiative contribution targeting a blueprint line by code.
// Amounts are business magnitudes; the line's sign is applied at aggregation.
type FinancialEntry struct {
	LineCode     string
	Distribution map[MonthKey]float64
	Actuals      map[MonthKey]float64
}

type KPI struct {
	Name         string
	Unit         string
	Baseline     float64
	Distribution map[MonthKey]float64
	Actuals      map[MonthKey]float64
}

type Stage struct {
	Name       string
	Financials []FinancialEntry
	KPIs       []KPI
}

type Initiative struct {
	ID          string
	Name        string
	Version     int
	ActiveStage string
	Stages      []Stage
	UpdatedAt   time.Time
}

// Active returns the stage named by ActiveStage, falling back to the last
// stage when the name does not match. Returns nil when there are no stages.
func (i *Initiative) Active() *Stage {
	if len(i.Stages) == 0 {
		return nil
	}
	for idx := range i.Stages {
		if i.Stages[idx].Name == i.ActiveStage {
			return &i.Stages[idx]
		}
	}
	return &i.Stages[len(i.Stages)-1]
}
